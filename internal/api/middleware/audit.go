package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

// auditBodyLimit 请求体与响应体各自最多记录的字节数
const auditBodyLimit = 16 << 10

// capturingWriter 复制写出的响应体，超出 limit 的部分丢弃
type capturingWriter struct {
	gin.ResponseWriter
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	if room := w.limit - w.buf.Len(); room > 0 {
		if len(b) > room {
			w.buf.Write(b[:room])
			w.truncated = true
		} else {
			w.buf.Write(b)
		}
	} else if len(b) > 0 {
		w.truncated = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应体，skipPaths 内的路径直接放行
// Authorization 只记录是否携带，不记录内容
func AuditMiddleware(skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(skipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		reqBody, reqTruncated := readBody(c.Request)
		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("route", c.FullPath()),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodeQuery(c.Request.URL.RawQuery)),
			log.String("req_body", reqBody),
			log.Bool("req_truncated", reqTruncated),
			log.Bool("has_auth", c.GetHeader("Authorization") != ""),
		)

		w := &capturingWriter{ResponseWriter: c.Writer, limit: auditBodyLimit}
		c.Writer = w
		start := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", w.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", w.buf.String()),
			log.Bool("res_truncated", w.truncated),
		)
	}
}

// readBody 读出请求体后放回，供后续 handler 绑定
func readBody(r *http.Request) (string, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false
	}
	data, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(data))
	if len(data) > auditBodyLimit {
		return string(data[:auditBodyLimit]), true
	}
	return string(data), false
}

func decodeQuery(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
