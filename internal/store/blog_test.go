package store

import (
	"database/sql"
	"errors"
	"testing"

	"nexusapi/internal/models"
)

func seedTestBlog(t *testing.T, db *sql.DB, blogs *BlogStore, owner int64, slug string) *models.Blog {
	t.Helper()
	b, err := blogs.Create(&models.Blog{
		Title:     "Test Post",
		Slug:      slug,
		Category:  models.BlogCategoryNews,
		Content:   "<p>body</p>",
		Tags:      []string{"go", "infra"},
		Headings:  []string{"Intro"},
		IsActive:  true,
		CreatedBy: owner,
	})
	if err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	return b
}

func TestBlogStore_CreateAndFind(t *testing.T) {
	db := testDB(t)
	blogs := NewBlogStore(db)
	owner := seedTestUser(t, db, "blog-create@store-test.local")

	slug := uniqueSlug("create")
	t.Cleanup(func() { cleanBlogs(t, db, slug) })

	created := seedTestBlog(t, db, blogs, owner.ID, slug)
	if created.MarkAsHero {
		t.Error("new blog must not be hero")
	}

	found, err := blogs.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("blog not found")
	}
	if len(found.Tags) != 2 || found.Tags[0] != "go" {
		t.Errorf("tags = %v", found.Tags)
	}
	if found.Author == nil || found.Author.ID != owner.ID {
		t.Error("author not loaded")
	}

	public, err := blogs.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if public == nil {
		t.Fatal("active blog should be visible by slug")
	}

	// Deactivate and confirm the public lookup no longer sees it.
	found.IsActive = false
	if err := blogs.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	hidden, err := blogs.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug inactive: %v", err)
	}
	if hidden != nil {
		t.Error("inactive blog leaked through public slug lookup")
	}
}

func TestBlogStore_DuplicateSlug(t *testing.T) {
	db := testDB(t)
	blogs := NewBlogStore(db)
	owner := seedTestUser(t, db, "blog-dup@store-test.local")

	slug := uniqueSlug("dup")
	t.Cleanup(func() { cleanBlogs(t, db, slug) })

	seedTestBlog(t, db, blogs, owner.ID, slug)
	_, err := blogs.Create(&models.Blog{
		Title: "Second", Slug: slug, Category: models.BlogCategoryNews,
		Content: "x", IsActive: true, CreatedBy: owner.ID,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate slug err = %v, want ErrDuplicate", err)
	}
}

func TestBlogStore_MarkAsHero_SingleHero(t *testing.T) {
	db := testDB(t)
	blogs := NewBlogStore(db)
	owner := seedTestUser(t, db, "blog-hero@store-test.local")

	slugA, slugB := uniqueSlug("hero-a"), uniqueSlug("hero-b")
	t.Cleanup(func() { cleanBlogs(t, db, slugA, slugB) })

	a := seedTestBlog(t, db, blogs, owner.ID, slugA)
	b := seedTestBlog(t, db, blogs, owner.ID, slugB)

	if err := blogs.MarkAsHero(a.ID); err != nil {
		t.Fatalf("MarkAsHero a: %v", err)
	}
	if err := blogs.MarkAsHero(b.ID); err != nil {
		t.Fatalf("MarkAsHero b: %v", err)
	}

	var heroes int
	if err := db.QueryRow(`SELECT COUNT(*) FROM blogs WHERE mark_as_hero`).Scan(&heroes); err != nil {
		t.Fatalf("count heroes: %v", err)
	}
	if heroes != 1 {
		t.Fatalf("hero count = %d, want exactly 1", heroes)
	}

	hero, err := blogs.Hero()
	if err != nil {
		t.Fatalf("Hero: %v", err)
	}
	if hero == nil || hero.ID != b.ID {
		t.Error("latest marked blog must be the hero")
	}
}

func TestBlogStore_BulkUpdateCategory(t *testing.T) {
	db := testDB(t)
	blogs := NewBlogStore(db)
	owner := seedTestUser(t, db, "blog-bulkcat@store-test.local")

	slug := uniqueSlug("bulkcat")
	t.Cleanup(func() { cleanBlogs(t, db, slug) })

	b := seedTestBlog(t, db, blogs, owner.ID, slug)

	res, err := blogs.BulkUpdateCategory([]int64{b.ID, 999999999}, models.BlogCategoryTrending)
	if err != nil {
		t.Fatalf("BulkUpdateCategory: %v", err)
	}
	if res.UpdatedCount != 1 {
		t.Errorf("UpdatedCount = %d, want 1", res.UpdatedCount)
	}
	if len(res.Errors) != 1 {
		t.Errorf("Errors = %v, want one entry for the missing blog", res.Errors)
	}

	found, _ := blogs.FindByID(b.ID)
	if found.Category != models.BlogCategoryTrending {
		t.Errorf("category = %s, want trending", found.Category)
	}
}

func TestBlogStore_FAQOwnership(t *testing.T) {
	db := testDB(t)
	blogs := NewBlogStore(db)
	owner := seedTestUser(t, db, "blog-faq@store-test.local")

	slugA, slugB := uniqueSlug("faq-a"), uniqueSlug("faq-b")
	t.Cleanup(func() { cleanBlogs(t, db, slugA, slugB) })

	a := seedTestBlog(t, db, blogs, owner.ID, slugA)
	b := seedTestBlog(t, db, blogs, owner.ID, slugB)

	faq, err := blogs.CreateFAQ(&models.BlogFAQ{BlogID: a.ID, Question: "Q?", Answer: "A.", Order: 1})
	if err != nil {
		t.Fatalf("CreateFAQ: %v", err)
	}

	// A lookup through the wrong parent must not see the FAQ.
	wrong, err := blogs.FindFAQ(b.ID, faq.ID)
	if err != nil {
		t.Fatalf("FindFAQ wrong parent: %v", err)
	}
	if wrong != nil {
		t.Error("FAQ visible through a blog that does not own it")
	}

	right, err := blogs.FindFAQ(a.ID, faq.ID)
	if err != nil {
		t.Fatalf("FindFAQ: %v", err)
	}
	if right == nil {
		t.Fatal("FAQ not found through its owner")
	}

	if err := blogs.DeleteFAQ(b.ID, faq.ID); err != nil {
		t.Fatalf("DeleteFAQ wrong parent: %v", err)
	}
	if still, _ := blogs.FindFAQ(a.ID, faq.ID); still == nil {
		t.Error("delete through wrong parent must be a no-op")
	}
}
