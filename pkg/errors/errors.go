package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound        = errors.New("config not found")
	ErrConfigInvalid         = errors.New("invalid configuration")
	ErrConnectFailed         = errors.New("mongodb connection failed")
	ErrCollectionUnavailable = errors.New("mongodb collection unavailable")
	ErrNotActivated          = errors.New("appender not activated")
	ErrInsertFailed          = errors.New("mongodb insert failed")
	ErrFilterInvalid         = errors.New("invalid filter expression")
	ErrTimeout               = errors.New("operation timeout")
	ErrCanceled              = errors.New("operation canceled")
)

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewConnectError(host string, port int, err error) error {
	return fmt.Errorf("%w: %s:%d: %v", ErrConnectFailed, host, port, err)
}

func NewInsertError(collection string, err error) error {
	return fmt.Errorf("%w: collection=%s: %v", ErrInsertFailed, collection, err)
}

func NewFilterError(expression string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrFilterInvalid, expression, err)
}
