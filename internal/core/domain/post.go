package domain

import (
	"strings"
	"time"
)

// Post is a blog entry.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time // calendar date, time of day is always zero
}

// NewPost builds an unsaved post dated on the calendar day of createdAt.
func NewPost(title, content, author string, createdAt time.Time) (*Post, error) {
	if err := validatePostFields(title, content, author); err != nil {
		return nil, err
	}
	return &Post{
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: DateOf(createdAt),
	}, nil
}

// Update overwrites the editable fields. ID and CreatedAt never change.
func (p *Post) Update(title, content, author string) error {
	if err := validatePostFields(title, content, author); err != nil {
		return err
	}
	p.Title = title
	p.Content = content
	p.Author = author
	return nil
}

func validatePostFields(title, content, author string) error {
	switch {
	case isBlank(title):
		return ErrTitleRequired
	case isBlank(content):
		return ErrContentRequired
	case isBlank(author):
		return ErrAuthorRequired
	}
	return nil
}

// DateOf truncates t to midnight of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
