package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewPost_TruncatesToDate(t *testing.T) {
	at := time.Date(2026, 3, 4, 23, 59, 1, 5, time.UTC)

	p, err := NewPost("t", "c", "a", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !p.CreatedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, p.CreatedAt)
	}
	if p.ID != 0 {
		t.Errorf("new post must be unsaved, got id %d", p.ID)
	}
}

func TestPost_UpdateKeepsIdentity(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &Post{ID: 9, Title: "a", Content: "b", Author: "c", CreatedAt: created}

	if err := p.Update("x", "y", "z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 9 || !p.CreatedAt.Equal(created) {
		t.Errorf("identity changed: %+v", p)
	}

	if err := p.Update("", "y", "z"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if p.Title != "x" {
		t.Errorf("failed update must leave the post untouched, got %q", p.Title)
	}
}

func TestError_UnwrapsToKind(t *testing.T) {
	err := PostNotFound(12)
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("PostNotFound must unwrap to ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("PostNotFound must not match another kind")
	}
	if err.Error() != "게시글을 찾을 수 없습니다. id: 12" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var de *Error
	if !errors.As(ErrEmailTaken, &de) || de.Kind != ErrConflict {
		t.Errorf("ErrEmailTaken must be a conflict, got %+v", de)
	}
}

func TestNewUser_RequiresFields(t *testing.T) {
	now := time.Now()
	if _, err := NewUser(" ", "e@x.io", "p", now); err != ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if _, err := NewUser("n", "", "p", now); err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
	if _, err := NewUser("n", "e@x.io", "", now); err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
	u, err := NewUser("n", "e@x.io", "p", now)
	if err != nil || !u.CreatedAt.Equal(now) {
		t.Fatalf("unexpected result %+v, %v", u, err)
	}
}
