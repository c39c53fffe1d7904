// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package models

import "time"

// BlogCategory classifies a blog post.
type BlogCategory string

const (
	BlogCategoryTrending BlogCategory = "trending"
	BlogCategoryNews     BlogCategory = "news"
)

// ValidBlogCategory reports whether c is a known category.
func ValidBlogCategory(c string) bool {
	switch BlogCategory(c) {
	case BlogCategoryTrending, BlogCategoryNews:
		return true
	}
	return false
}

// Blog is a rich-text article. At most one blog carries MarkAsHero at a
// time; the store enforces this transactionally.
type Blog struct {
	ID         int64        `json:"-"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	CoverPhoto *string      `json:"-"`
	Category   BlogCategory `json:"category"`
	Content    string       `json:"content"`
	Tags       []string     `json:"tags"`
	Headings   []string     `json:"headings"`
	MarkAsHero bool         `json:"mark_as_hero"`
	IsActive   bool         `json:"is_active"`
	CreatedBy  int64        `json:"-"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// Populated by store methods.
	Author *User     `json:"-"`
	FAQs   []BlogFAQ `json:"-"`
}

// BlogFAQ is a question/answer pair owned by a blog, ordered by Order.
type BlogFAQ struct {
	ID        int64     `json:"-"`
	BlogID    int64     `json:"-"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
