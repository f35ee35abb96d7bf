package youtube

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/pkg/metrics"
	"ContentTracker/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// videosBatchSize videos 接口单次最多接受的 id 数
const videosBatchSize = 50

// maxPlaylistPages 翻页上限，防止远端 pageToken 不收敛
const maxPlaylistPages = 200

// Client YouTube Data API v3 只读客户端
// 远端返回非 2xx 或空列表时按"未找到"处理，只有网络层错误会返回 error
type Client struct {
	http     *resty.Client
	apiKey   string
	pageSize int
}

func NewClient(cfg config.YouTubeConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > videosBatchSize {
		pageSize = videosBatchSize
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     client,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
	}
}

// HasAPIKey 是否配置了 API Key
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// get 发起请求并解码，ok 为 false 表示远端拒绝或无法解析
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", c.apiKey).
		Get("/" + endpoint)
	if err != nil {
		metrics.YouTubeRequests.WithLabelValues(endpoint, "transport_error").Inc()
		return false, fmt.Errorf("youtube %s: %w", endpoint, err)
	}

	metrics.YouTubeRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode())).Inc()
	if !resp.IsSuccess() {
		log.WarnContext(ctx, "youtube api non-2xx", "endpoint", endpoint, "status", resp.StatusCode())
		return false, nil
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		log.WarnContext(ctx, "youtube api decode failed", "endpoint", endpoint, "err", err)
		return false, nil
	}
	return true, nil
}

// GetChannelByHandle 通过 @handle 查询频道，未找到时返回 nil
func (c *Client) GetChannelByHandle(ctx context.Context, handle string) (*Channel, error) {
	return c.getChannel(ctx, map[string]string{
		"part":      "snippet,statistics",
		"forHandle": strings.TrimPrefix(handle, "@"),
	})
}

// GetChannelByID 通过频道 ID 查询，未找到时返回 nil
func (c *Client) GetChannelByID(ctx context.Context, channelID string) (*Channel, error) {
	return c.getChannel(ctx, map[string]string{
		"part": "snippet,statistics",
		"id":   channelID,
	})
}

func (c *Client) getChannel(ctx context.Context, params map[string]string) (*Channel, error) {
	var data channelListResponse
	ok, err := c.get(ctx, "channels", params, &data)
	if err != nil {
		return nil, err
	}
	if !ok || len(data.Items) == 0 {
		return nil, nil
	}
	return toChannel(&data.Items[0]), nil
}

// GetChannelVideos 返回最近 maxResults 条上传视频
func (c *Client) GetChannelVideos(ctx context.Context, channelID string, maxResults int) ([]*Video, error) {
	uploads, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil || uploads == "" {
		return []*Video{}, err
	}

	var page playlistItemListResponse
	ok, err := c.get(ctx, "playlistItems", map[string]string{
		"part":       "snippet",
		"playlistId": uploads,
		"maxResults": strconv.Itoa(maxResults),
	}, &page)
	if err != nil {
		return []*Video{}, err
	}
	if !ok || len(page.Items) == 0 {
		return []*Video{}, nil
	}

	return c.videosByIDs(ctx, videoIDs(page.Items))
}

// GetAllChannelVideos 翻页拉取全部上传视频，统计信息按 50 条一批查询
// 中途某页失败时停止翻页，使用已拿到的 id
func (c *Client) GetAllChannelVideos(ctx context.Context, channelID string) ([]*Video, error) {
	uploads, err := c.uploadsPlaylist(ctx, channelID)
	if err != nil || uploads == "" {
		return []*Video{}, err
	}

	ids := make([]string, 0)
	pageToken := ""
	seen := map[string]bool{}
	for pages := 0; ; pages++ {
		if pages >= maxPlaylistPages {
			log.WarnContext(ctx, "youtube playlist page limit reached", "channel_id", channelID, "pages", pages)
			break
		}
		params := map[string]string{
			"part":       "snippet",
			"playlistId": uploads,
			"maxResults": strconv.Itoa(c.pageSize),
		}
		if pageToken != "" {
			params["pageToken"] = pageToken
		}

		var page playlistItemListResponse
		ok, err := c.get(ctx, "playlistItems", params, &page)
		if err != nil {
			return []*Video{}, err
		}
		if !ok {
			break
		}
		ids = append(ids, videoIDs(page.Items)...)

		if page.NextPageToken == "" {
			break
		}
		if seen[page.NextPageToken] {
			log.WarnContext(ctx, "youtube playlist page token repeated", "channel_id", channelID, "page_token", page.NextPageToken)
			break
		}
		seen[page.NextPageToken] = true
		pageToken = page.NextPageToken
	}

	videos := make([]*Video, 0, len(ids))
	for start := 0; start < len(ids); start += videosBatchSize {
		end := min(start+videosBatchSize, len(ids))
		batch, err := c.videosByIDs(ctx, ids[start:end])
		if err != nil {
			return []*Video{}, err
		}
		videos = append(videos, batch...)
	}
	return videos, nil
}

func (c *Client) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	var data channelListResponse
	ok, err := c.get(ctx, "channels", map[string]string{
		"part": "contentDetails",
		"id":   channelID,
	}, &data)
	if err != nil || !ok || len(data.Items) == 0 {
		return "", err
	}
	return data.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (c *Client) videosByIDs(ctx context.Context, ids []string) ([]*Video, error) {
	if len(ids) == 0 {
		return []*Video{}, nil
	}

	var data videoListResponse
	ok, err := c.get(ctx, "videos", map[string]string{
		"part": "snippet,statistics",
		"id":   strings.Join(ids, ","),
	}, &data)
	if err != nil {
		return []*Video{}, err
	}
	if !ok {
		return []*Video{}, nil
	}

	videos := make([]*Video, 0, len(data.Items))
	for i := range data.Items {
		videos = append(videos, toVideo(&data.Items[i]))
	}
	return videos, nil
}

func videoIDs(items []playlistItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id := item.Snippet.ResourceID.VideoID; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func toChannel(item *channelItem) *Channel {
	return &Channel{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		CustomURL:    item.Snippet.CustomURL,
		ThumbnailURL: item.Snippet.Thumbnails.best(),
		Stats: ChannelStats{
			SubscriberCount:       util.ParseCount(item.Statistics.SubscriberCount),
			ViewCount:             util.ParseCount(item.Statistics.ViewCount),
			VideoCount:            util.ParseCount(item.Statistics.VideoCount),
			HiddenSubscriberCount: item.Statistics.HiddenSubscriberCount,
		},
	}
}

func toVideo(item *videoItem) *Video {
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	return &Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: item.Snippet.Thumbnails.best(),
		PublishedAt:  publishedAt,
		Stats: VideoStats{
			ViewCount:    util.ParseCount(item.Statistics.ViewCount),
			LikeCount:    util.ParseCount(item.Statistics.LikeCount),
			CommentCount: util.ParseCount(item.Statistics.CommentCount),
		},
	}
}
