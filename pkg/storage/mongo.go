package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/livp123/mongolog/pkg/document"
	apperrors "github.com/livp123/mongolog/pkg/errors"
)

// MongoStore implements Store and Collection on top of the MongoDB driver.
// The driver client is safe for concurrent use.
// MongoStore 基于 MongoDB 驱动实现 Store 和 Collection。驱动客户端可安全并发使用。
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to the server described by opts, verifies it with a ping and
// resolves the target collection. MongoDB creates the collection on first insert.
// Open 连接到 opts 描述的服务器，通过 ping 验证并解析目标集合。MongoDB 会在首次插入时创建集合。
func Open(ctx context.Context, opts Options) (Store, error) {
	clientOpts := options.Client().ApplyURI(ConnectionString(opts))
	if opts.Timeout > 0 {
		clientOpts.SetTimeout(opts.Timeout)
		clientOpts.SetServerSelectionTimeout(opts.Timeout)
		clientOpts.SetConnectTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, apperrors.NewConnectError(opts.Host, opts.Port, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.NewConnectError(opts.Host, opts.Port, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Collection returns the store itself.
func (s *MongoStore) Collection() Collection {
	return s
}

// Name returns the collection name.
func (s *MongoStore) Name() string {
	return s.coll.Name()
}

// Insert writes doc with a single InsertOne call.
// Insert 使用一次 InsertOne 调用写入 doc。
func (s *MongoStore) Insert(ctx context.Context, doc *document.LogDocument) error {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.NewInsertError(s.coll.Name(), err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return nil
}

// Close disconnects the client.
// Close 断开客户端连接。
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
