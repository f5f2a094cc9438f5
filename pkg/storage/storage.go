package storage

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/livp123/mongolog/pkg/document"
)

const (
	DefaultHost       = "localhost"
	DefaultPort       = 27017
	DefaultDatabase   = "log4net_mongodb"
	DefaultCollection = "logs"
	DefaultTimeout    = 5 * time.Second
)

// Options holds the connection settings for the target collection.
// Options 保存目标集合的连接设置。
type Options struct {
	Host       string        `yaml:"host" json:"host"`
	Port       int           `yaml:"port" json:"port"`
	Database   string        `yaml:"database" json:"database"`
	Collection string        `yaml:"collection" json:"collection"`
	Username   string        `yaml:"username" json:"username"`
	Password   string        `yaml:"password" json:"-"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultOptions returns options pointing at a local server.
// DefaultOptions 返回指向本地服务器的选项。
func DefaultOptions() Options {
	return Options{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Database:   DefaultDatabase,
		Collection: DefaultCollection,
		Timeout:    DefaultTimeout,
	}
}

// Collection is the insert-only view of a log collection the appender needs.
// Collection 是 appender 所需的日志集合的只插入视图。
type Collection interface {
	// Insert stores doc and fills doc.ID when the store assigns one.
	// Insert 存储 doc，并在存储分配 ID 时填充 doc.ID。
	Insert(ctx context.Context, doc *document.LogDocument) error
	// Name returns the collection name, used for error reports and metrics.
	// Name 返回集合名称，用于错误报告和指标。
	Name() string
}

// Store is an opened connection exposing one collection.
// Store 是一个已打开的连接，暴露一个集合。
type Store interface {
	Collection() Collection
	Close(ctx context.Context) error
}

// Opener opens a Store. Open is the MongoDB implementation.
// Opener 打开一个 Store。Open 是 MongoDB 实现。
type Opener func(ctx context.Context, opts Options) (Store, error)

// ConnectionString builds a mongodb:// URI. Credentials are included only
// when both username and password are set.
// ConnectionString 构建 mongodb:// URI。仅当用户名和密码都已设置时才包含凭据。
func ConnectionString(opts Options) string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
	}
	if opts.Username != "" && opts.Password != "" {
		u.User = url.UserPassword(opts.Username, opts.Password)
	}
	return u.String()
}
