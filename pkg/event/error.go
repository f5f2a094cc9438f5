package event

import (
	"errors"
	"fmt"
	"strings"
)

// MaxChainDepth bounds how many wrapped errors are followed.
// MaxChainDepth 限制跟随的包装错误层数。
const MaxChainDepth = 64

// FromError converts a Go error chain (as exposed by errors.Unwrap) into an
// Exception chain, outermost first. It returns nil for a nil error.
// FromError 将 Go 错误链（errors.Unwrap）转换为 Exception 链，最外层在前。
func FromError(err error) *Exception {
	if err == nil {
		return nil
	}

	var head, tail *Exception
	for depth := 0; err != nil && depth < MaxChainDepth; depth++ {
		cause := errors.Unwrap(err)
		link := &Exception{
			Message:    ownMessage(err, cause),
			Source:     fmt.Sprintf("%T", err),
			StackTrace: stackTrace(err),
		}
		if head == nil {
			head = link
		} else {
			tail.Cause = link
		}
		tail = link
		err = cause
	}
	return head
}

// ownMessage strips the cause's text that fmt.Errorf("...: %w") appends,
// so each link only carries its own message.
func ownMessage(err, cause error) string {
	msg := err.Error()
	if cause == nil {
		return msg
	}
	if trimmed, ok := strings.CutSuffix(msg, ": "+cause.Error()); ok {
		return trimmed
	}
	return msg
}

// stackTrace returns the verbose rendering of errors that implement
// fmt.Formatter (pkg/errors style), or "" when it adds nothing.
func stackTrace(err error) string {
	if _, ok := err.(fmt.Formatter); !ok {
		return ""
	}
	verbose := fmt.Sprintf("%+v", err)
	if verbose == err.Error() {
		return ""
	}
	return verbose
}
