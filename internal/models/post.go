package models

import (
	"strings"
	"time"
)

const (
	MaxPageSize     = 50
	DefaultPageSize = 10
	SnippetLen      = 50
	LimitMaxTitle   = 300
)

type Post struct {
	ID        int       `json:"id"`
	CreatorID int       `db:"creator_id" json:"creatorId"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Points    int       `json:"points"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TextSnippet returns the first SnippetLen characters of the text.
func (p *Post) TextSnippet() string {
	runes := []rune(p.Text)
	if len(runes) <= SnippetLen {
		return p.Text
	}
	return string(runes[:SnippetLen])
}

type PostInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (in PostInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Invalid("title can't be empty")
	}
	if len([]rune(title)) > LimitMaxTitle {
		return Invalid("title is longer than %d characters", LimitMaxTitle)
	}
	return nil
}

type PaginatedPosts struct {
	Posts   []Post `json:"posts"`
	HasMore bool   `json:"hasMore"`
}

// ClampLimit bounds a requested page size to MaxPageSize.
func ClampLimit(limit int) (int, error) {
	if limit <= 0 {
		return 0, Invalid("limit must be positive, got %d", limit)
	}
	if limit > MaxPageSize {
		return MaxPageSize, nil
	}
	return limit, nil
}

// NewPage builds a page out of rows fetched with limit+1, dropping the
// extra row used to detect a following page.
func NewPage(rows []Post, limit int) *PaginatedPosts {
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	return &PaginatedPosts{Posts: rows, HasMore: hasMore}
}
