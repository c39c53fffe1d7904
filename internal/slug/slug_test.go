package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello, World! 2026", "hello-world-2026"},
		{"  Cloud  Infrastructure  ", "cloud-infrastructure"},
		{"Already-a-slug", "already-a-slug"},
		{"Senior Go Engineer (Remote)", "senior-go-engineer-remote"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Generate(tt.in); got != tt.want {
			t.Errorf("Generate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{"hello-world", "a", "blog-2026"} {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "-leading", "trailing-", "Upper-Case", "double--hyphen", "spa ce"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
