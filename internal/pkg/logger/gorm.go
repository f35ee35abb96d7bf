package logger

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// SlogGormLogger 将 gorm 日志输出到 slog，trace_id 由 ContextHandler 从 ctx 中补上
// 查询不存在的记录不视为错误，仓储层统一返回 nil, nil
type SlogGormLogger struct {
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(slow time.Duration) *SlogGormLogger {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &SlogGormLogger{LogLevel: logger.Warn, SlowThreshold: slow}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &SlogGormLogger{LogLevel: level, SlowThreshold: l.SlowThreshold}
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Info {
		log.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Warn {
		log.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Error {
		log.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, logger.ErrRecordNotFound)
	slow := elapsed > l.SlowThreshold
	if !failed && !slow && l.LogLevel < logger.Info {
		return
	}

	sql, rows := fc()
	msg := "SQL " + sqlOperation(sql)
	attrs := []any{
		log.String("sql", sql),
		log.Duration("latency", elapsed),
		log.Int64("rows", rows),
	}

	switch {
	case failed && l.LogLevel >= logger.Error:
		log.ErrorContext(ctx, msg+" Error", append(attrs, log.Any("err", err))...)
	case slow && l.LogLevel >= logger.Warn:
		log.WarnContext(ctx, msg+" Slow", attrs...)
	case l.LogLevel >= logger.Info:
		log.DebugContext(ctx, msg, attrs...)
	}
}

// sqlOperation 取 SQL 的首个关键字，如 SELECT / INSERT
func sqlOperation(sql string) string {
	op, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	if op == "" {
		return "Query"
	}
	return strings.ToUpper(op)
}
