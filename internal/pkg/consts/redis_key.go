package consts

const (
	YouTubeChannelHandleKey = "youtube:channel:handle:"
	SyncRateLimitKey        = "rl:account:sync:"
	SyncBatchLastReportKey  = "sync:youtube:batch:last"
)
