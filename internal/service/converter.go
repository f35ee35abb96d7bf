package service

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/pkg/youtube"
	"time"

	"github.com/jinzhu/copier"
)

func toPostDTOs(posts []*model.Post) ([]*dto.PostDTO, error) {
	out := make([]*dto.PostDTO, 0, len(posts))
	if err := copier.Copy(&out, &posts); err != nil {
		return nil, err
	}
	return out, nil
}

func toSnapshotDTOs(snapshots []*model.FollowerSnapshot) ([]*dto.SnapshotDTO, error) {
	out := make([]*dto.SnapshotDTO, 0, len(snapshots))
	if err := copier.Copy(&out, &snapshots); err != nil {
		return nil, err
	}
	return out, nil
}

func toChannelDTO(ch *youtube.Channel) (*dto.ChannelDTO, error) {
	out := &dto.ChannelDTO{}
	if err := copier.Copy(out, ch); err != nil {
		return nil, err
	}
	// 统计字段嵌套在 Stats 中，需手动展开
	out.SubscriberCount = ch.Stats.SubscriberCount
	out.ViewCount = ch.Stats.ViewCount
	out.VideoCount = ch.Stats.VideoCount
	out.HiddenSubscriberCount = ch.Stats.HiddenSubscriberCount
	return out, nil
}

func toVideoDTOs(videos []*youtube.Video) ([]*dto.VideoDTO, error) {
	out := make([]*dto.VideoDTO, 0, len(videos))
	for _, v := range videos {
		item := &dto.VideoDTO{}
		if err := copier.Copy(item, v); err != nil {
			return nil, err
		}
		item.ViewCount = v.Stats.ViewCount
		item.LikeCount = v.Stats.LikeCount
		item.CommentCount = v.Stats.CommentCount
		out = append(out, item)
	}
	return out, nil
}

// newPostFromVideo posted_at 取视频发布时间，之后不再修改
func newPostFromVideo(accountID uint64, v *youtube.Video, fetchedAt time.Time) *model.Post {
	return &model.Post{
		AccountID:      accountID,
		PlatformPostID: v.ID,
		Title:          util.PtrString(v.Title),
		ThumbnailURL:   util.PtrString(v.ThumbnailURL),
		PostedAt:       v.PublishedAt,
		Likes:          v.Stats.LikeCount,
		Comments:       v.Stats.CommentCount,
		Views:          util.PtrInt64(v.Stats.ViewCount),
		FetchedAt:      fetchedAt,
	}
}
