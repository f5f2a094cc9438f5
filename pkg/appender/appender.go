package appender

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/livp123/mongolog/internal/metrics"
	"github.com/livp123/mongolog/pkg/document"
	apperrors "github.com/livp123/mongolog/pkg/errors"
	"github.com/livp123/mongolog/pkg/event"
	"github.com/livp123/mongolog/pkg/storage"
)

// DefaultErrorDelay is the default cool-down window after a failed insert.
// DefaultErrorDelay 是插入失败后的默认冷却窗口。
const DefaultErrorDelay = 30 * time.Second

const (
	msgActivateFailed = "Exception while initializing MongoDB appender"
	msgInsertFailed   = "An error occurred while inserting to MongoDB"
)

// State is the delivery state of the appender.
// State 是 appender 的投递状态。
type State int

const (
	// StateNormal inserts every accepted event.
	// StateNormal 插入每个被接受的事件。
	StateNormal State = iota
	// StateSuppressed drops events until the cool-down window has elapsed.
	// StateSuppressed 在冷却窗口结束前丢弃事件。
	StateSuppressed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateSuppressed:
		return "suppressed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds the appender settings.
// Config 保存 appender 设置。
type Config struct {
	Storage     storage.Options
	ErrorDelay  time.Duration // Cool-down window; 0 retries on the next event
	MachineName string        // Empty resolves to the hostname
	Threshold   zapcore.Level
	Filter      string // Optional expr-lang boolean expression
}

// DefaultConfig returns the stock settings.
// DefaultConfig 返回默认设置。
func DefaultConfig() Config {
	return Config{
		Storage:    storage.DefaultOptions(),
		ErrorDelay: DefaultErrorDelay,
		Threshold:  zapcore.DebugLevel,
	}
}

// Stats is a snapshot of the appender counters.
// Stats 是 appender 计数器的快照。
type Stats struct {
	State       State
	LastFailure time.Time
	Appended    uint64
	Failed      uint64
	Suppressed  uint64
	Filtered    uint64
}

// Appender delivers log events to a collection, one best-effort insert per
// event. After a failure it drops events for ErrorDelay, then lets exactly
// one event probe the store. It is safe for concurrent use.
// Appender 将日志事件投递到集合，每个事件尽力插入一次。失败后在 ErrorDelay 内丢弃事件，
// 之后只允许一个事件探测存储。可安全并发使用。
type Appender struct {
	cfg        Config
	translator *document.Translator
	filter     *Filter
	open       storage.Opener
	handler    ErrorHandler
	now        func() time.Time
	label      string

	mu          sync.Mutex
	store       storage.Store
	coll        storage.Collection
	state       State
	lastFailure time.Time
	probing     bool

	appended   atomic.Uint64
	failed     atomic.Uint64
	suppressed atomic.Uint64
	filtered   atomic.Uint64
}

// Option customizes an Appender.
type Option func(*Appender)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Appender) { a.now = now }
}

// WithErrorHandler sets where failures are reported.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Appender) { a.handler = h }
}

// WithOpener replaces storage.Open.
func WithOpener(open storage.Opener) Option {
	return func(a *Appender) { a.open = open }
}

// WithTranslator replaces the translator built from Config.MachineName.
func WithTranslator(t *document.Translator) Option {
	return func(a *Appender) { a.translator = t }
}

// New creates an appender. It does not connect; call Activate.
// New 创建 appender，但不建立连接；请调用 Activate。
func New(cfg Config, opts ...Option) (*Appender, error) {
	if cfg.ErrorDelay < 0 {
		return nil, apperrors.NewConfigError("error_delay", cfg.ErrorDelay)
	}
	filter, err := NewFilter(cfg.Threshold, cfg.Filter)
	if err != nil {
		return nil, err
	}

	a := &Appender{
		cfg:     cfg,
		filter:  filter,
		open:    storage.Open,
		handler: LoggerErrorHandler{},
		now:     time.Now,
		label:   cfg.Storage.Collection,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.translator == nil {
		a.translator = document.NewTranslator(cfg.MachineName)
	}
	return a, nil
}

// Activate opens the store and resolves the collection. A failure is
// reported to the error handler and leaves the appender inactive; appends
// then fail through the normal suppression path.
// Activate 打开存储并解析集合。失败会报告给错误处理器并使 appender 保持未激活状态；
// 之后的追加将通过正常的抑制路径失败。
func (a *Appender) Activate(ctx context.Context) error {
	store, err := a.open(ctx, a.cfg.Storage)
	if err != nil {
		a.handler.Error(msgActivateFailed, err)
		return err
	}

	a.mu.Lock()
	old := a.store
	a.store = store
	a.coll = store.Collection()
	a.state = StateNormal
	a.probing = false
	a.mu.Unlock()
	metrics.SetSuppressed(a.label, false)

	if old != nil {
		_ = old.Close(ctx)
	}
	return nil
}

// Append delivers ev with at most one insert attempt. It never returns or
// panics; failures go to the error handler.
// Append 以最多一次插入尝试投递 ev。它从不返回错误或 panic；失败交由错误处理器处理。
func (a *Appender) Append(ctx context.Context, ev event.LogEvent) {
	if !a.filter.Accept(ev) {
		a.filtered.Add(1)
		metrics.EventsFiltered.WithLabelValues(a.label).Inc()
		return
	}

	coll, probe, ok := a.acquire()
	if !ok {
		a.suppressed.Add(1)
		metrics.EventsSuppressed.WithLabelValues(a.label).Inc()
		return
	}

	a.release(probe, a.insert(ctx, coll, ev))
}

// acquire decides under the lock whether this event may be inserted.
// probe is true when this event is the single retry after the cool-down.
func (a *Appender) acquire() (coll storage.Collection, probe bool, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateSuppressed {
		if a.probing || a.now().Sub(a.lastFailure) < a.cfg.ErrorDelay {
			return nil, false, false
		}
		a.probing = true
		return a.coll, true, true
	}
	return a.coll, false, true
}

func (a *Appender) insert(ctx context.Context, coll storage.Collection, ev event.LogEvent) (err error) {
	if coll == nil {
		return apperrors.ErrNotActivated
	}
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewInsertError(coll.Name(), fmt.Errorf("panic: %v", r))
		}
	}()
	return coll.Insert(ctx, a.translator.Translate(ev))
}

// release records the outcome. Only the Normal->Suppressed edge and failed
// probes are reported; a late failure of an insert that started before the
// transition just refreshes the timestamp.
func (a *Appender) release(probe bool, err error) {
	a.mu.Lock()
	if probe {
		a.probing = false
	}
	if err == nil {
		if probe {
			a.state = StateNormal
		}
		a.mu.Unlock()
		a.appended.Add(1)
		metrics.EventsAppended.WithLabelValues(a.label).Inc()
		if probe {
			metrics.SetSuppressed(a.label, false)
		}
		return
	}

	report := probe || a.state == StateNormal
	a.state = StateSuppressed
	a.lastFailure = a.now()
	a.mu.Unlock()

	a.failed.Add(1)
	metrics.EventsFailed.WithLabelValues(a.label).Inc()
	metrics.SetSuppressed(a.label, true)
	if report {
		a.handler.Error(msgInsertFailed, err)
	}
}

// Close releases the collection handle and closes the connection.
// Close 释放集合句柄并关闭连接。
func (a *Appender) Close(ctx context.Context) error {
	a.mu.Lock()
	store := a.store
	a.store = nil
	a.coll = nil
	a.mu.Unlock()

	if store == nil {
		return nil
	}
	return store.Close(ctx)
}

// State returns the current delivery state.
// State 返回当前投递状态。
func (a *Appender) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Active reports whether Activate succeeded and Close has not been called.
func (a *Appender) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.coll != nil
}

// MachineName returns the machine name stamped on documents.
func (a *Appender) MachineName() string {
	return a.translator.MachineName()
}

// Stats returns a snapshot of the counters.
// Stats 返回计数器快照。
func (a *Appender) Stats() Stats {
	a.mu.Lock()
	state, last := a.state, a.lastFailure
	a.mu.Unlock()

	return Stats{
		State:       state,
		LastFailure: last,
		Appended:    a.appended.Load(),
		Failed:      a.failed.Load(),
		Suppressed:  a.suppressed.Load(),
		Filtered:    a.filtered.Load(),
	}
}
