package entities

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "bloglist-service/internal/domain/errors"
)

type Blog struct {
	Id        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Author    string
	Url       string
	Likes     int
	UserId    uuid.UUID
	User      *User
}

// NewBlog builds a blog owned by userId. A nil likes value defaults to zero.
func NewBlog(title, author, rawURL string, likes *int, userId uuid.UUID) *Blog {
	now := time.Now()
	b := &Blog{
		Id:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Url:       strings.TrimSpace(rawURL),
		UserId:    userId,
	}
	if likes != nil {
		b.Likes = *likes
	}
	return b
}

func (b *Blog) LikeCount() int {
	return b.Likes
}

func (b *Blog) validate() error {
	if b.Title == "" {
		return domainerrors.NewValidationError("title", "is required")
	}
	if b.Url == "" {
		return domainerrors.NewValidationError("url", "is required")
	}
	if !isWebURL(b.Url) {
		return domainerrors.NewValidationError("url", "must be an absolute http or https URL")
	}
	if b.Likes < 0 {
		return domainerrors.NewValidationError("likes", "must not be negative")
	}
	if b.UserId == uuid.Nil {
		return domainerrors.NewValidationError("user", "owner is required")
	}
	return nil
}

// UpdateDetails replaces the editable fields. The owner is never touched.
func (b *Blog) UpdateDetails(title, author, rawURL string, likes *int) error {
	b.Title = strings.TrimSpace(title)
	b.Author = strings.TrimSpace(author)
	b.Url = strings.TrimSpace(rawURL)
	if likes != nil {
		b.Likes = *likes
	}
	b.UpdatedAt = time.Now()
	return b.validate()
}

func isWebURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
