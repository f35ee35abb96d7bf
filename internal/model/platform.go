package model

// Platform 账号所属的外部平台
type Platform = string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

// Platforms 全部支持登记的平台
var Platforms = []Platform{
	PlatformYouTube,
	PlatformInstagram,
	PlatformTikTok,
	PlatformTwitter,
	PlatformLinkedIn,
}

// IsSyncable 当前仅 YouTube 可以从远端拉取数据
func IsSyncable(p Platform) bool {
	return p == PlatformYouTube
}
