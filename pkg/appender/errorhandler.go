package appender

import (
	"go.uber.org/zap"

	"github.com/livp123/mongolog/internal/utils/logger"
)

// ErrorHandler receives the failures the appender swallows. It is the only
// way delivery problems surface; Append never returns them to the caller.
// ErrorHandler 接收 appender 吞掉的失败。这是投递问题暴露的唯一途径，Append 从不向调用方返回错误。
type ErrorHandler interface {
	Error(msg string, err error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(msg string, err error)

// Error calls f(msg, err).
func (f ErrorHandlerFunc) Error(msg string, err error) {
	f(msg, err)
}

// LoggerErrorHandler reports through a zap logger. A nil logger means the
// process logger at report time.
// LoggerErrorHandler 通过 zap logger 报告错误。nil 表示报告时的进程日志记录器。
type LoggerErrorHandler struct {
	Logger *zap.SugaredLogger
}

// Error logs msg at error level with err attached.
// Error 以 error 级别记录 msg 并附带 err。
func (h LoggerErrorHandler) Error(msg string, err error) {
	l := h.Logger
	if l == nil {
		l = logger.Get(nil)
	}
	l.Errorw(msg, zap.Error(err))
}
