package consts

const (
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
	SyncStatusSkipped = "skipped"
)

const (
	SyncTriggerManual = "manual"
	SyncTriggerBatch  = "batch"
)

const (
	DefaultRecentPostLimit = 10
	MaxRecentPostLimit     = 100
	DefaultHistoryDays     = 30
)
