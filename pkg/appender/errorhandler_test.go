package appender

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLoggerErrorHandler tests reports are written at error level with the cause
// TestLoggerErrorHandler 测试错误报告以 error 级别写入并附带原因
func TestLoggerErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := LoggerErrorHandler{Logger: zap.New(core).Sugar()}

	h.Error(msgInsertFailed, errors.New("connection refused"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, msgInsertFailed, entries[0].Message)
	assert.Equal(t, "connection refused", entries[0].ContextMap()["error"])
}

// TestErrorHandlerFunc tests the function adapter
// TestErrorHandlerFunc 测试函数适配器
func TestErrorHandlerFunc(t *testing.T) {
	var gotMsg string
	var gotErr error
	h := ErrorHandlerFunc(func(msg string, err error) {
		gotMsg, gotErr = msg, err
	})

	cause := errors.New("x")
	h.Error("m", cause)
	assert.Equal(t, "m", gotMsg)
	assert.Same(t, cause, gotErr)
}
