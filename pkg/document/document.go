package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogDocument is the BSON representation of one log event.
// Optional fields are omitted rather than stored as null or empty.
// LogDocument 是单条日志事件的 BSON 表示。可选字段缺失时直接省略，而不是存储为 null 或空值。
type LogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	MachineName string             `bson:"machineName" json:"machineName"`
	Level       string             `bson:"level" json:"level"`
	Thread      string             `bson:"thread" json:"thread"`
	User        string             `bson:"user" json:"user"`
	Message     string             `bson:"message" json:"message"`
	LoggerName  string             `bson:"loggerName" json:"loggerName"`

	FileName   string `bson:"fileName,omitempty" json:"fileName,omitempty"`
	Method     string `bson:"method,omitempty" json:"method,omitempty"`
	LineNumber int    `bson:"lineNumber,omitempty" json:"lineNumber,omitempty"`
	ClassName  string `bson:"className,omitempty" json:"className,omitempty"`

	Exception *ExceptionRecord `bson:"exception,omitempty" json:"exception,omitempty"`
}

// ExceptionRecord is a simplified error with an optional link to its cause.
// ExceptionRecord 是简化后的错误，带有指向其原因的可选链接。
type ExceptionRecord struct {
	Message        string           `bson:"message,omitempty" json:"message,omitempty"`
	Source         string           `bson:"source,omitempty" json:"source,omitempty"`
	StackTrace     string           `bson:"stackTrace,omitempty" json:"stackTrace,omitempty"`
	InnerException *ExceptionRecord `bson:"innerException,omitempty" json:"innerException,omitempty"`
}
