package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/livp123/mongolog/pkg/document"
	apperrors "github.com/livp123/mongolog/pkg/errors"
)

// FileStore implements Store and Collection by appending documents as JSON
// lines to a size-rotated local file. It serves as an offline target.
// FileStore 通过将文档以 JSON 行追加到按大小轮转的本地文件来实现 Store 和 Collection，用作离线目标。
type FileStore struct {
	mu     sync.Mutex
	name   string
	writer *lumberjack.Logger
}

// NewFileStore creates a store writing to path, rotated at maxSizeMB.
// NewFileStore 创建一个写入 path 的存储，在 maxSizeMB 时轮转。
func NewFileStore(path string, maxSizeMB int) (*FileStore, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	if err := os.MkdirAll(filepath.Dir(safePath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrCollectionUnavailable, safePath, err)
	}
	return &FileStore{
		name: strings.TrimSuffix(filepath.Base(safePath), filepath.Ext(safePath)),
		writer: &lumberjack.Logger{
			Filename: safePath,
			MaxSize:  maxSizeMB,
		},
	}, nil
}

// OpenFile returns an Opener writing to dir/<collection>.jsonl, ignoring the
// network settings in opts.
// OpenFile 返回一个写入 dir/<collection>.jsonl 的 Opener，忽略 opts 中的网络设置。
func OpenFile(dir string) Opener {
	return func(_ context.Context, opts Options) (Store, error) {
		return NewFileStore(filepath.Join(dir, opts.Collection+".jsonl"), 0)
	}
}

// Collection returns the store itself.
func (s *FileStore) Collection() Collection {
	return s
}

// Name returns the collection name derived from the file name.
func (s *FileStore) Name() string {
	return s.name
}

// Insert assigns an ObjectID and appends doc as one JSON line.
// Insert 分配 ObjectID 并将 doc 追加为一行 JSON。
func (s *FileStore) Insert(_ context.Context, doc *document.LogDocument) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	line, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewInsertError(s.name, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.writer.Write(line); err != nil {
		return apperrors.NewInsertError(s.name, err)
	}
	return nil
}

// Close closes the underlying file.
// Close 关闭底层文件。
func (s *FileStore) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Close()
}
