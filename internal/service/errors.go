package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	PreconditionFailed  = 412
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrAccountNotFound      = errors.New("账号不存在")
	ErrAccountExists        = errors.New("该平台下账号已存在")
	ErrPlatformNotSupported = errors.New("该平台暂不支持同步")
	ErrYouTubeKeyMissing    = errors.New("未配置 YouTube API Key")
	ErrPlatformIDMissing    = errors.New("账号缺少平台 ID")
	ErrCronSecretMissing    = errors.New("未配置定时任务密钥")
	ErrChannelNotFound      = errors.New("频道不存在")
	ErrBatchReportNotFound  = errors.New("暂无批量同步记录")
	ErrSyncFailed           = errors.New("同步失败，请稍后重试")
	ErrTooManyRequests      = errors.New("请求过于频繁")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrAccountNotFound:      NotFound,
	ErrAccountExists:        BadRequest,
	ErrPlatformNotSupported: BadRequest,
	ErrYouTubeKeyMissing:    PreconditionFailed,
	ErrPlatformIDMissing:    PreconditionFailed,
	ErrCronSecretMissing:    PreconditionFailed,
	ErrChannelNotFound:      NotFound,
	ErrBatchReportNotFound:  NotFound,
	ErrSyncFailed:           InternalServerError,
	ErrTooManyRequests:      429,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

// CodeOf 返回 err 链上已登记的业务码与对应错误，未登记时 known 为 nil
func CodeOf(err error) (code int, known error) {
	if code, ok := ErrorMap[err]; ok {
		return code, err
	}
	for e, c := range ErrorMap {
		if errors.Is(err, e) {
			return c, e
		}
	}
	return InternalServerError, nil
}
