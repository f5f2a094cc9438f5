package appender

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/livp123/mongolog/pkg/errors"
	"github.com/livp123/mongolog/pkg/event"
)

// FilterEnv is the environment a filter expression is evaluated against.
// FilterEnv 是过滤表达式求值时的环境。
type FilterEnv struct {
	Level        string // Capitalized level name, e.g. "ERROR"
	Logger       string
	Message      string
	Thread       string
	User         string
	File         string
	Line         int
	HasException bool
	Exception    string // Outermost exception message
}

// Filter decides which events reach the sink: a level threshold followed by
// an optional boolean expr-lang expression.
// Filter 决定哪些事件到达 sink：先按级别阈值，再按可选的 expr-lang 布尔表达式。
type Filter struct {
	threshold zapcore.Level
	source    string
	program   *vm.Program
}

// NewFilter compiles expression. An empty expression accepts every event
// at or above threshold.
// NewFilter 编译表达式。空表达式接受所有达到阈值的事件。
func NewFilter(threshold zapcore.Level, expression string) (*Filter, error) {
	f := &Filter{threshold: threshold, source: expression}
	if expression == "" {
		return f, nil
	}

	program, err := expr.Compile(expression, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, apperrors.NewFilterError(expression, err)
	}
	f.program = program
	return f, nil
}

// Accept reports whether ev should be appended. Evaluation errors accept the
// event so that a bad expression never silently drops logs.
// Accept 报告 ev 是否应被追加。求值错误时接受该事件，避免错误的表达式悄悄丢弃日志。
func (f *Filter) Accept(ev event.LogEvent) bool {
	if ev.Level < f.threshold {
		return false
	}
	if f.program == nil {
		return true
	}

	out, err := expr.Run(f.program, newFilterEnv(ev))
	if err != nil {
		return true
	}
	ok, isBool := out.(bool)
	return !isBool || ok
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.source
}

func newFilterEnv(ev event.LogEvent) FilterEnv {
	env := FilterEnv{
		Level:   ev.Level.CapitalString(),
		Logger:  ev.Logger,
		Message: ev.Message,
		Thread:  ev.Thread,
		User:    ev.User,
	}
	if ev.Location != nil {
		env.File = ev.Location.File
		env.Line = ev.Location.Line
	}
	if ev.Exception != nil {
		env.HasException = true
		env.Exception = ev.Exception.Message
	}
	return env
}
