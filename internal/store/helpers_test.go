package store

import (
	"reflect"
	"testing"
)

func TestSplitJoinTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go, infra , cloud", []string{"go", "infra", "cloud"}},
		{",,go,", []string{"go"}},
	}
	for _, tt := range tests {
		if got := splitTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if got := joinTags([]string{" go ", "", "infra"}); got != "go,infra" {
		t.Errorf("joinTags = %q", got)
	}
}

func TestJSONStrings(t *testing.T) {
	raw, err := jsonStrings(nil)
	if err != nil {
		t.Fatalf("jsonStrings(nil): %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("nil slice encoded as %s, want []", raw)
	}

	var out []string
	if err := scanStrings(nil, &out); err != nil {
		t.Fatalf("scanStrings(nil): %v", err)
	}
	if len(out) != 0 {
		t.Errorf("scanStrings(nil) = %v, want empty", out)
	}

	if err := scanStrings([]byte(`["a","b"]`), &out); err != nil {
		t.Fatalf("scanStrings: %v", err)
	}
	if !reflect.DeepEqual(out, []string{"a", "b"}) {
		t.Errorf("scanStrings = %v", out)
	}
}
