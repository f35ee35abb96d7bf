package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// accessEntry gin 访问日志，字段与 slog JSON 输出保持一致
type accessEntry struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	ClientIP string `json:"client_ip"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	Error    string `json:"error,omitempty"`
}

// SetupGin 注册访问日志与 Recovery，skipPaths 中的路径不记录
func SetupGin(r *gin.Engine, skipPaths ...string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: skipPaths,
		Formatter: formatAccess,
	}))
	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	entry := accessEntry{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		TraceID:  accessTraceID(p),
		Method:   p.Method,
		Path:     p.Path,
		ClientIP: p.ClientIP,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		Error:    p.ErrorMessage,
	}
	if p.StatusCode >= 500 {
		entry.Level = "ERROR"
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

func accessTraceID(p gin.LogFormatterParams) string {
	if id, ok := p.Keys[string(TraceIDKey)].(string); ok && id != "" {
		return id
	}
	if p.Request != nil {
		return TraceID(p.Request.Context())
	}
	return ""
}
