package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别，HTTP 边界据此映射状态码
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindDepthExceeded
	KindInternal
)

// Error 带类别的业务错误
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(msg string) *Error      { return New(KindValidation, msg) }
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return New(KindForbidden, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func DepthExceeded(msg string) *Error   { return New(KindDepthExceeded, msg) }
func Internal(err error) *Error         { return Wrap(KindInternal, "internal error", err) }

// KindOf 取出错误类别，非 *Error 一律视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 取出对外安全的错误信息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
