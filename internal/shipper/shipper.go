// Package shipper forwards lines of plain log files into an appender.
// Package shipper 将普通日志文件的行转发到 appender。
package shipper

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/nxadm/tail"

	"github.com/livp123/mongolog/internal/config"
	"github.com/livp123/mongolog/internal/utils/logger"
	"github.com/livp123/mongolog/pkg/event"
	"github.com/livp123/mongolog/pkg/mongocore"
)

// Thread is the thread name recorded on shipped events.
const Thread = "shipper"

// Sink receives shipped events. *appender.Appender satisfies it.
// Sink 接收转发的事件。*appender.Appender 实现了该接口。
type Sink interface {
	Append(ctx context.Context, ev event.LogEvent)
}

// Shipper tails the configured files and appends one event per line.
// Shipper 跟踪配置的文件，每行追加一个事件。
type Shipper struct {
	sink  Sink
	files []config.ShipFile
	user  string

	mu      sync.Mutex
	wg      sync.WaitGroup
	tails   []*tail.Tail
	cancel  context.CancelFunc
	started bool
}

// New creates a shipper for files. Nothing is read until Start.
// New 为 files 创建 shipper。调用 Start 之前不会读取任何内容。
func New(sink Sink, files []config.ShipFile) *Shipper {
	return &Shipper{
		sink:  sink,
		files: files,
		user:  mongocore.CurrentUser(),
	}
}

// Start begins tailing every file. Files that cannot be opened are logged and skipped.
// Start 开始跟踪每个文件。无法打开的文件会被记录并跳过。
func (s *Shipper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	log := logger.Get(ctx)

	for _, f := range s.files {
		cfg := tail.Config{
			Follow:    true,
			ReOpen:    true, // Handle log rotation
			MustExist: false,
			Poll:      true,
			Logger:    tail.DiscardingLogger,
		}
		if !f.FromStart {
			cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
		}

		t, err := tail.TailFile(f.Path, cfg)
		if err != nil {
			log.Errorw("Failed to tail file", "path", f.Path, "error", err)
			continue
		}
		s.tails = append(s.tails, t)

		s.wg.Add(1)
		go s.forward(ctx, t, f)
	}
}

func (s *Shipper) forward(ctx context.Context, t *tail.Tail, f config.ShipFile) {
	defer s.wg.Done()

	name := f.Logger
	if name == "" {
		name = filepath.Base(f.Path)
	}
	level := logger.ParseLevel(f.Level)

	// Line numbers count from where tailing began.
	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				logger.Get(ctx).Warnw("Error reading file", "path", f.Path, "error", line.Err)
				continue
			}
			lineNo++
			s.sink.Append(ctx, event.LogEvent{
				Time:    line.Time,
				Level:   level,
				Thread:  Thread,
				User:    s.user,
				Message: line.Text,
				Logger:  name,
				Location: &event.LocationInfo{
					File: f.Path,
					Line: lineNo,
				},
			})
		}
	}
}

// Stop stops all tailers and waits for in-flight appends.
// Stop 停止所有跟踪器并等待进行中的追加完成。
func (s *Shipper) Stop() {
	s.mu.Lock()
	tails := s.tails
	s.tails = nil
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, t := range tails {
		_ = t.Stop()
	}
	s.wg.Wait()
}
