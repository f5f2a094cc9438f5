package event

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// LogEvent is a single structured record produced by the host logging framework.
// LogEvent 是宿主日志框架产生的单条结构化记录。
type LogEvent struct {
	Time    time.Time
	Level   zapcore.Level
	Thread  string
	User    string
	Message string
	Logger  string

	// Location is nil when the caller did not capture source information.
	// Location 在调用方未捕获源码位置信息时为 nil。
	Location *LocationInfo

	// Exception is the outermost error of the causal chain, if any.
	// Exception 是因果链中最外层的错误（如果存在）。
	Exception *Exception
}

// LocationInfo describes where the log call was made.
// LocationInfo 描述日志调用发生的位置。
type LocationInfo struct {
	File   string
	Method string
	Class  string
	Line   int
}

// Exception is one link of a causal error chain. Cause points to the error
// that caused this one and is nil for the innermost link.
// Exception 是因果错误链中的一环。Cause 指向导致该错误的错误，最内层为 nil。
type Exception struct {
	Message    string
	Source     string
	StackTrace string
	Cause      *Exception
}

// Depth returns the number of links in the chain starting at e.
// Depth 返回从 e 开始的链长度。
func (e *Exception) Depth() int {
	n := 0
	for cur := e; cur != nil; cur = cur.Cause {
		n++
	}
	return n
}
