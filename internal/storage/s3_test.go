package storage

import (
	"strings"
	"testing"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("blogs", "Hero Image.PNG")
	if !strings.HasPrefix(key, "blogs/") {
		t.Errorf("key %q missing prefix", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("key %q should keep a lowercased extension", key)
	}
	if key == ObjectKey("blogs", "Hero Image.PNG") {
		t.Error("keys should be unique per call")
	}
}

func TestObjectKey_NoExtension(t *testing.T) {
	key := ObjectKey("resumes", "resume")
	if strings.Contains(key, ".") {
		t.Errorf("key %q should have no extension", key)
	}
}

func TestFileURL(t *testing.T) {
	c := &Client{endpoint: "https://s3.test", publicBucket: "nexus-public"}
	if got := c.FileURL("blogs/a.png"); got != "https://s3.test/nexus-public/blogs/a.png" {
		t.Errorf("FileURL = %q", got)
	}

	c.publicURL = "https://cdn.test"
	if got := c.FileURL("blogs/a.png"); got != "https://cdn.test/blogs/a.png" {
		t.Errorf("FileURL with publicURL = %q", got)
	}
}

func TestExtractKey(t *testing.T) {
	c := &Client{endpoint: "https://s3.test", publicBucket: "nexus-public", publicURL: "https://cdn.test"}

	tests := []struct {
		url  string
		key  string
		ok   bool
	}{
		{"https://cdn.test/blogs/a.png", "blogs/a.png", true},
		{"https://s3.test/nexus-public/blogs/a.png", "blogs/a.png", true},
		{"https://elsewhere.test/blogs/a.png", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		key, ok := c.ExtractKey(tt.url)
		if key != tt.key || ok != tt.ok {
			t.Errorf("ExtractKey(%q) = (%q, %v), want (%q, %v)", tt.url, key, ok, tt.key, tt.ok)
		}
	}
}
