// Package mongocore plugs the MongoDB appender into zap as a zapcore.Core.
//
//	app, _ := appender.New(appender.DefaultConfig())
//	_ = app.Activate(ctx)
//	defer app.Close(ctx)
//	log := zap.New(zapcore.NewTee(consoleCore, mongocore.New(app, zapcore.InfoLevel)), zap.AddCaller())
package mongocore

import (
	"bytes"
	"context"
	"os"
	"os/user"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/livp123/mongolog/pkg/event"
)

// Sink receives translated events. *appender.Appender implements it.
// Sink 接收转换后的事件。*appender.Appender 实现了该接口。
type Sink interface {
	Append(ctx context.Context, ev event.LogEvent)
}

// Core is a zapcore.Core delivering entries to a Sink.
// Core 是将日志条目投递到 Sink 的 zapcore.Core。
type Core struct {
	zapcore.LevelEnabler
	sink   Sink
	user   string
	thread func() string
	fields []zapcore.Field
}

// Option customizes a Core.
type Option func(*Core)

// WithUser overrides the user name recorded on every event.
func WithUser(name string) Option {
	return func(c *Core) { c.user = name }
}

// WithThread overrides how the thread identifier is obtained.
func WithThread(fn func() string) Option {
	return func(c *Core) { c.thread = fn }
}

// New returns a core forwarding enabled entries to sink. The OS user is
// resolved once here.
// New 返回将已启用条目转发到 sink 的 core。操作系统用户在此解析一次。
func New(sink Sink, enab zapcore.LevelEnabler, opts ...Option) *Core {
	c := &Core{
		LevelEnabler: enab,
		sink:         sink,
		user:         CurrentUser(),
		thread:       goroutineID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With returns a copy carrying additional context fields.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(c.fields[:len(c.fields):len(c.fields)], fields...)
	return &clone
}

// Check adds the core to ce when the level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry and hands it to the sink. Delivery errors are
// handled by the sink, so Write always returns nil.
// Write 转换条目并交给 sink。投递错误由 sink 处理，因此 Write 总是返回 nil。
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	c.sink.Append(context.Background(), c.toEvent(ent, fields))
	return nil
}

// Sync is a no-op; every Write is synchronous.
func (c *Core) Sync() error {
	return nil
}

func (c *Core) toEvent(ent zapcore.Entry, fields []zapcore.Field) event.LogEvent {
	ev := event.LogEvent{
		Time:    ent.Time,
		Level:   ent.Level,
		Thread:  c.thread(),
		User:    c.user,
		Message: ent.Message,
		Logger:  ent.LoggerName,
	}

	if ent.Caller.Defined {
		ev.Location = location(ent.Caller)
	}

	err := firstError(fields)
	if err == nil {
		err = firstError(c.fields)
	}
	ev.Exception = event.FromError(err)

	if ent.Stack != "" {
		switch {
		case ev.Exception == nil:
			ev.Exception = &event.Exception{StackTrace: ent.Stack}
		case ev.Exception.StackTrace == "":
			ev.Exception.StackTrace = ent.Stack
		}
	}
	return ev
}

func firstError(fields []zapcore.Field) error {
	for _, f := range fields {
		if f.Type != zapcore.ErrorType {
			continue
		}
		if err, ok := f.Interface.(error); ok && err != nil {
			return err
		}
	}
	return nil
}

// location splits the caller function "pkg/path.(*Type).Method" into
// class "pkg/path.(*Type)" and method "Method".
func location(caller zapcore.EntryCaller) *event.LocationInfo {
	loc := &event.LocationInfo{
		File: caller.File,
		Line: caller.Line,
	}
	fn := caller.Function
	slash := strings.LastIndex(fn, "/")
	if dot := strings.LastIndex(fn, "."); dot > slash {
		loc.Class = fn[:dot]
		loc.Method = fn[dot+1:]
	} else {
		loc.Method = fn
	}
	return loc
}

// goroutineID parses the id from the "goroutine N [running]:" stack header.
func goroutineID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return ""
	}
	return string(fields[1])
}

// CurrentUser returns the account name of the running process, or empty.
// CurrentUser 返回当前进程的账户名，获取不到时返回空。
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

var _ zapcore.Core = (*Core)(nil)

