package document

import (
	"os"

	"github.com/livp123/mongolog/pkg/event"
)

// MaxExceptionDepth bounds the number of linked exception records per document.
// MaxExceptionDepth 限制每个文档中链接的异常记录数量。
const MaxExceptionDepth = 64

const unknownMachine = "unknown"

// Translator maps log events to documents. It is safe for concurrent use.
// Translator 将日志事件映射为文档，可安全并发使用。
type Translator struct {
	machineName string
}

// NewTranslator returns a translator stamping machineName on every document.
// An empty machineName resolves to the hostname once, here.
// NewTranslator 返回一个在每个文档上标记 machineName 的转换器。
// 空的 machineName 会在此处解析一次主机名。
func NewTranslator(machineName string) *Translator {
	if machineName == "" {
		machineName = ResolveMachineName()
	}
	return &Translator{machineName: machineName}
}

// ResolveMachineName returns the hostname of the current machine.
// ResolveMachineName 返回当前机器的主机名。
func ResolveMachineName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return unknownMachine
	}
	return host
}

// MachineName returns the name attached to every document.
func (t *Translator) MachineName() string {
	return t.machineName
}

// Translate converts ev into a fresh document.
// Translate 将 ev 转换为新的文档。
func (t *Translator) Translate(ev event.LogEvent) *LogDocument {
	doc := &LogDocument{
		Timestamp:   ev.Time,
		MachineName: t.machineName,
		Level:       ev.Level.CapitalString(),
		Thread:      ev.Thread,
		User:        ev.User,
		Message:     ev.Message,
		LoggerName:  ev.Logger,
	}

	if loc := ev.Location; loc != nil {
		doc.FileName = loc.File
		doc.Method = loc.Method
		doc.LineNumber = loc.Line
		doc.ClassName = loc.Class
	}

	doc.Exception = translateException(ev.Exception)
	return doc
}

// translateException walks the cause chain iteratively, outermost first.
func translateException(ex *event.Exception) *ExceptionRecord {
	var head, tail *ExceptionRecord
	for depth := 0; ex != nil && depth < MaxExceptionDepth; depth++ {
		rec := &ExceptionRecord{
			Message:    ex.Message,
			Source:     ex.Source,
			StackTrace: ex.StackTrace,
		}
		if head == nil {
			head = rec
		} else {
			tail.InnerException = rec
		}
		tail = rec
		ex = ex.Cause
	}
	return head
}
