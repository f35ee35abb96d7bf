package youtube

import "time"

type ChannelStats struct {
	SubscriberCount       int64
	ViewCount             int64
	VideoCount            int64
	HiddenSubscriberCount bool
}

// Channel 频道基本信息与统计
type Channel struct {
	ID           string
	Title        string
	Description  string
	CustomURL    string
	ThumbnailURL string
	Stats        ChannelStats
}

type VideoStats struct {
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// Video 上传视频，PublishedAt 解析失败时为零值
type Video struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
	Stats        VideoStats
}

// 以下为 Data API v3 的原始响应结构，计数字段均为字符串

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default"`
	Medium  *thumbnail `json:"medium"`
}

func (t thumbnails) best() string {
	if t.Medium != nil && t.Medium.URL != "" {
		return t.Medium.URL
	}
	if t.Default != nil {
		return t.Default.URL
	}
	return ""
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		CustomURL   string     `json:"customUrl"`
		Thumbnails  thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		ViewCount             string `json:"viewCount"`
		VideoCount            string `json:"videoCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type channelListResponse struct {
	Items []channelItem `json:"items"`
}

type playlistItem struct {
	Snippet struct {
		ResourceID struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

type playlistItemListResponse struct {
	NextPageToken string         `json:"nextPageToken"`
	Items         []playlistItem `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		PublishedAt string     `json:"publishedAt"`
		Thumbnails  thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}
