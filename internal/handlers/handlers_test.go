// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"nexusapi/internal/models"
	"nexusapi/internal/secureid"
	"nexusapi/internal/store"
)

func TestDecodeIDList(t *testing.T) {
	ids := secureid.New("handlers-test-secret")

	tokens := []string{ids.Encode(7), "garbage", ids.Encode(42)}
	decoded, bad := decodeIDList(ids, tokens)

	if want := []int64{7, 42}; !reflect.DeepEqual(decoded, want) {
		t.Errorf("decoded: got %v, want %v", decoded, want)
	}
	if len(bad) != 1 || bad[0] != "Invalid identifier: garbage" {
		t.Errorf("bad tokens: got %v", bad)
	}
}

func TestMergeBulkErrors(t *testing.T) {
	res := &store.BulkResult{DeletedCount: 2, Errors: []string{"Blog 9 not found"}}
	merged := mergeBulkErrors(res, []string{"Invalid identifier: xx"})

	want := []string{"Invalid identifier: xx", "Blog 9 not found"}
	if !reflect.DeepEqual(merged.Errors, want) {
		t.Errorf("errors: got %v, want %v", merged.Errors, want)
	}
	if merged.DeletedCount != 2 {
		t.Errorf("deleted count: got %d, want 2", merged.DeletedCount)
	}

	// A nil store result still reports the decode failures.
	merged = mergeBulkErrors(nil, []string{"Invalid identifier: yy"})
	if len(merged.Errors) != 1 {
		t.Errorf("nil result errors: got %v", merged.Errors)
	}
}

func TestFormHelpers(t *testing.T) {
	for _, v := range []string{"1", "true", "on", "YES"} {
		if !formBool(v) {
			t.Errorf("formBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off"} {
		if formBool(v) {
			t.Errorf("formBool(%q) = true, want false", v)
		}
	}

	if got := formIntPtr("  12 "); got == nil || *got != 12 {
		t.Errorf("formIntPtr: got %v, want 12", got)
	}
	if got := formIntPtr("abc"); got != nil {
		t.Errorf("formIntPtr on garbage: got %v, want nil", got)
	}
	if got := formFloatPtr("2500.50"); got == nil || *got != 2500.50 {
		t.Errorf("formFloatPtr: got %v, want 2500.50", got)
	}
	if got := formStrPtr("   "); got != nil {
		t.Errorf("formStrPtr on blanks: got %v, want nil", got)
	}
}

func TestFormLines(t *testing.T) {
	got := formLines("[\"Ship features\", \"Review code\"]")
	if want := []string{"Ship features", "Review code"}; !reflect.DeepEqual(got, want) {
		t.Errorf("json array: got %v, want %v", got, want)
	}

	got = formLines("first line\n\n  second line  \n")
	if want := []string{"first line", "second line"}; !reflect.DeepEqual(got, want) {
		t.Errorf("newline text: got %v, want %v", got, want)
	}

	if got = formLines(""); len(got) != 0 {
		t.Errorf("empty input: got %v, want empty", got)
	}
}

func TestAssetURLs(t *testing.T) {
	cover := "https://cdn.test/services/cover.png"
	img := "https://cdn.test/services/s1.png"
	blank := ""
	sections := []models.Section{{Image: &img}, {Image: nil}, {Image: &blank}}

	got := assetURLs(&cover, sections)
	if want := []string{cover, img}; !reflect.DeepEqual(got, want) {
		t.Errorf("assetURLs: got %v, want %v", got, want)
	}
	if got := assetURLs(nil, nil); got != nil {
		t.Errorf("assetURLs on nothing: got %v, want nil", got)
	}
}

func TestRemovedFileURLs(t *testing.T) {
	previous := []string{
		"https://cdn.test/services/old-cover.png",
		"https://cdn.test/services/kept.png",
		"https://cdn.test/services/dropped.png",
	}
	current := []string{
		"https://cdn.test/services/new-cover.png",
		"https://cdn.test/services/kept.png",
	}

	got := removedFileURLs(previous, current)
	want := []string{"https://cdn.test/services/old-cover.png", "https://cdn.test/services/dropped.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("removedFileURLs: got %v, want %v", got, want)
	}

	if got := removedFileURLs(previous, previous); got != nil {
		t.Errorf("unchanged assets: got %v, want nil", got)
	}
	// A delete passes the full previous set against nothing.
	if got := removedFileURLs(previous, nil); !reflect.DeepEqual(got, previous) {
		t.Errorf("delete diff: got %v, want all of previous", got)
	}
}

func TestActiveFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/blogs?active=true", nil)
	if v := activeFilter(r); v == nil || !*v {
		t.Errorf("active=true: got %v", v)
	}
	r = httptest.NewRequest("GET", "/admin/blogs?active=0", nil)
	if v := activeFilter(r); v == nil || *v {
		t.Errorf("active=0: got %v", v)
	}
	r = httptest.NewRequest("GET", "/admin/blogs", nil)
	if v := activeFilter(r); v != nil {
		t.Errorf("no filter: got %v, want nil", v)
	}
}
