// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"nexusapi/internal/models"
)

// BlogStore handles all blog and blog-FAQ database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// BlogFilters narrows List results. Zero values mean "no filter".
type BlogFilters struct {
	Category string
	Active   *bool
	Search   string
}

const blogColumns = `id, title, slug, cover_photo, category, content, tags, headings,
	mark_as_hero, is_active, created_by, created_at, updated_at`

func scanBlog(row interface{ Scan(...any) error }) (*models.Blog, error) {
	b := &models.Blog{}
	var tags string
	var headings []byte
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.CoverPhoto, &b.Category, &b.Content,
		&tags, &headings, &b.MarkAsHero, &b.IsActive, &b.CreatedBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Tags = splitTags(tags)
	if err := scanStrings(headings, &b.Headings); err != nil {
		return nil, fmt.Errorf("scan blog headings: %w", err)
	}
	return b, nil
}

// List returns blogs matching the filters, newest first.
func (s *BlogStore) List(f BlogFilters) ([]models.Blog, error) {
	var where []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR tags ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + blogColumns + ` FROM blogs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

// FindByID retrieves a blog with its FAQs and author. Returns nil if not found.
func (s *BlogStore) FindByID(id int64) (*models.Blog, error) {
	b, err := scanBlog(s.db.QueryRow(`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return s.hydrate(b)
}

// FindBySlug retrieves an active blog by slug for the public site,
// FAQs and author included. Returns nil if not found or inactive.
func (s *BlogStore) FindBySlug(slug string) (*models.Blog, error) {
	return s.findBySlug(slug, true)
}

// FindBySlugAny retrieves a blog by slug regardless of active status, for
// the admin API.
func (s *BlogStore) FindBySlugAny(slug string) (*models.Blog, error) {
	return s.findBySlug(slug, false)
}

func (s *BlogStore) findBySlug(slug string, activeOnly bool) (*models.Blog, error) {
	q := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	b, err := scanBlog(s.db.QueryRow(q, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return s.hydrate(b)
}

func (s *BlogStore) hydrate(b *models.Blog) (*models.Blog, error) {
	faqs, err := s.ListFAQs(b.ID)
	if err != nil {
		return nil, err
	}
	b.FAQs = faqs

	author := &models.User{}
	err = s.db.QueryRow(`SELECT id, name, email FROM users WHERE id = $1`, b.CreatedBy).
		Scan(&author.ID, &author.Name, &author.Email)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load blog author: %w", err)
	}
	if err == nil {
		b.Author = author
	}
	return b, nil
}

// Create inserts a new blog and returns it with the generated ID.
// Returns ErrDuplicate if the slug is taken.
func (s *BlogStore) Create(b *models.Blog) (*models.Blog, error) {
	headings, err := jsonStrings(b.Headings)
	if err != nil {
		return nil, fmt.Errorf("encode headings: %w", err)
	}
	created, err := scanBlog(s.db.QueryRow(`
		INSERT INTO blogs (title, slug, cover_photo, category, content, tags, headings,
		                   mark_as_hero, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)
		RETURNING `+blogColumns,
		b.Title, b.Slug, b.CoverPhoto, b.Category, b.Content,
		joinTags(b.Tags), headings, b.IsActive, b.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create blog %q: %w", b.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Update modifies an existing blog. The hero flag is managed only
// through MarkAsHero and is left untouched here.
func (s *BlogStore) Update(b *models.Blog) error {
	headings, err := jsonStrings(b.Headings)
	if err != nil {
		return fmt.Errorf("encode headings: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE blogs SET title = $1, slug = $2, cover_photo = $3, category = $4,
		                 content = $5, tags = $6, headings = $7, is_active = $8,
		                 updated_at = NOW()
		WHERE id = $9
	`, b.Title, b.Slug, b.CoverPhoto, b.Category, b.Content,
		joinTags(b.Tags), headings, b.IsActive, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update blog %q: %w", b.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

// Delete removes a blog by ID. FAQs cascade.
func (s *BlogStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// BulkDelete removes the given blogs, recording failures and continuing.
func (s *BlogStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete blog %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Blog %d not found", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// BulkUpdateCategory moves the given blogs to a new category, recording
// failures and continuing.
func (s *BlogStore) BulkUpdateCategory(ids []int64, category models.BlogCategory) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`
			UPDATE blogs SET category = $1, updated_at = NOW() WHERE id = $2
		`, category, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to update blog %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Blog %d not found", id))
			continue
		}
		res.UpdatedCount++
	}
	return res, nil
}

// MarkAsHero makes the given blog the single hero post. The previous
// hero is cleared and the new one set in one transaction, so the
// one-hero rule holds even when the second step fails.
func (s *BlogStore) MarkAsHero(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("mark hero: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE blogs SET mark_as_hero = FALSE, updated_at = NOW() WHERE mark_as_hero`); err != nil {
		return fmt.Errorf("clear hero: %w", err)
	}
	result, err := tx.Exec(`UPDATE blogs SET mark_as_hero = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set hero: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// Hero returns the active hero blog, or nil if none is set.
func (s *BlogStore) Hero() (*models.Blog, error) {
	b, err := scanBlog(s.db.QueryRow(`
		SELECT ` + blogColumns + ` FROM blogs WHERE mark_as_hero AND is_active = TRUE LIMIT 1
	`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find hero blog: %w", err)
	}
	return b, nil
}

// Recent returns the newest active blogs, up to limit.
func (s *BlogStore) Recent(limit int) ([]models.Blog, error) {
	rows, err := s.db.Query(`
		SELECT `+blogColumns+` FROM blogs WHERE is_active = TRUE
		ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

// Related returns active blogs sharing the given blog's category,
// excluding the blog itself, newest first.
func (s *BlogStore) Related(b *models.Blog, limit int) ([]models.Blog, error) {
	rows, err := s.db.Query(`
		SELECT `+blogColumns+` FROM blogs
		WHERE is_active = TRUE AND category = $1 AND id <> $2
		ORDER BY created_at DESC LIMIT $3
	`, b.Category, b.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("related blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		related, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *related)
	}
	return blogs, rows.Err()
}

// CategoryCount pairs a category with its active-post count.
type CategoryCount struct {
	Category models.BlogCategory `json:"category"`
	Count    int                 `json:"count"`
}

// CategoriesWithCounts returns active-post counts per category.
func (s *BlogStore) CategoriesWithCounts() ([]CategoryCount, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*) FROM blogs WHERE is_active = TRUE
		GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("blog categories: %w", err)
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// BlogStatistics summarizes the blog table for the admin dashboard.
type BlogStatistics struct {
	Total    int  `json:"total"`
	Active   int  `json:"active"`
	Inactive int  `json:"inactive"`
	Trending int  `json:"trending"`
	News     int  `json:"news"`
	HeroSet  bool `json:"hero_set"`
}

// Statistics computes dashboard counters in a single query.
func (s *BlogStore) Statistics() (*BlogStatistics, error) {
	st := &BlogStatistics{}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE NOT is_active),
		       COUNT(*) FILTER (WHERE category = 'trending'),
		       COUNT(*) FILTER (WHERE category = 'news'),
		       COUNT(*) FILTER (WHERE mark_as_hero) > 0
		FROM blogs
	`).Scan(&st.Total, &st.Active, &st.Inactive, &st.Trending, &st.News, &st.HeroSet)
	if err != nil {
		return nil, fmt.Errorf("blog statistics: %w", err)
	}
	return st, nil
}

// ListFAQs returns a blog's FAQs ordered by their position.
func (s *BlogStore) ListFAQs(blogID int64) ([]models.BlogFAQ, error) {
	rows, err := s.db.Query(`
		SELECT id, blog_id, question, answer, "order", created_at, updated_at
		FROM blog_faqs WHERE blog_id = $1 ORDER BY "order" ASC, id ASC
	`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list blog faqs: %w", err)
	}
	defer rows.Close()

	faqs := []models.BlogFAQ{}
	for rows.Next() {
		var f models.BlogFAQ
		if err := rows.Scan(&f.ID, &f.BlogID, &f.Question, &f.Answer, &f.Order,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// FindFAQ retrieves a FAQ scoped to its owning blog. Returns nil when
// the FAQ does not exist or belongs to a different blog.
func (s *BlogStore) FindFAQ(blogID, faqID int64) (*models.BlogFAQ, error) {
	f := &models.BlogFAQ{}
	err := s.db.QueryRow(`
		SELECT id, blog_id, question, answer, "order", created_at, updated_at
		FROM blog_faqs WHERE id = $1 AND blog_id = $2
	`, faqID, blogID).Scan(&f.ID, &f.BlogID, &f.Question, &f.Answer, &f.Order,
		&f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog faq: %w", err)
	}
	return f, nil
}

// CreateFAQ appends a FAQ to a blog.
func (s *BlogStore) CreateFAQ(f *models.BlogFAQ) (*models.BlogFAQ, error) {
	created := &models.BlogFAQ{}
	err := s.db.QueryRow(`
		INSERT INTO blog_faqs (blog_id, question, answer, "order")
		VALUES ($1, $2, $3, $4)
		RETURNING id, blog_id, question, answer, "order", created_at, updated_at
	`, f.BlogID, f.Question, f.Answer, f.Order).Scan(
		&created.ID, &created.BlogID, &created.Question, &created.Answer,
		&created.Order, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create blog faq: %w", err)
	}
	return created, nil
}

// UpdateFAQ modifies a FAQ in place.
func (s *BlogStore) UpdateFAQ(f *models.BlogFAQ) error {
	_, err := s.db.Exec(`
		UPDATE blog_faqs SET question = $1, answer = $2, "order" = $3, updated_at = NOW()
		WHERE id = $4 AND blog_id = $5
	`, f.Question, f.Answer, f.Order, f.ID, f.BlogID)
	if err != nil {
		return fmt.Errorf("update blog faq: %w", err)
	}
	return nil
}

// DeleteFAQ removes a FAQ scoped to its owning blog.
func (s *BlogStore) DeleteFAQ(blogID, faqID int64) error {
	_, err := s.db.Exec(`DELETE FROM blog_faqs WHERE id = $1 AND blog_id = $2`, faqID, blogID)
	if err != nil {
		return fmt.Errorf("delete blog faq: %w", err)
	}
	return nil
}

// SetActive toggles publication of a blog.
func (s *BlogStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "blogs", id, active)
}

// BulkSetActive toggles publication of the given blogs, recording
// failures and continuing.
func (s *BlogStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "blogs", "Blog", ids, active)
}
