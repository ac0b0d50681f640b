package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the core unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain failure carrying a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrEmailTaken         = &Error{Kind: ErrConflict, Message: "이미 사용 중인 이메일입니다."}
	ErrRequestInProgress  = &Error{Kind: ErrConflict, Message: "같은 Idempotency-Key 요청이 처리 중입니다."}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Message: "이메일 또는 비밀번호가 올바르지 않습니다."}

	ErrTitleRequired   = &Error{Kind: ErrValidation, Message: "제목은 필수입니다"}
	ErrContentRequired = &Error{Kind: ErrValidation, Message: "내용은 필수입니다"}
	ErrAuthorRequired  = &Error{Kind: ErrValidation, Message: "작성자는 필수입니다"}

	ErrNameRequired     = &Error{Kind: ErrValidation, Message: "이름은 필수입니다"}
	ErrEmailRequired    = &Error{Kind: ErrValidation, Message: "이메일은 필수입니다"}
	ErrPasswordRequired = &Error{Kind: ErrValidation, Message: "비밀번호는 필수입니다"}
)

// PostNotFound reports that no post exists with the given id.
func PostNotFound(id int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("게시글을 찾을 수 없습니다. id: %d", id)}
}

// UserNotFound reports that no user exists with the given id.
func UserNotFound(id int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("사용자를 찾을 수 없습니다. id: %d", id)}
}

// UserEmailNotFound reports that no user is registered under email.
func UserEmailNotFound(email string) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("사용자를 찾을 수 없습니다. email: %s", email)}
}
