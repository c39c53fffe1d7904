// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "dev+tag@nexusengineering.com", "first.last@sub.domain.org"}
	for _, e := range valid {
		if !validEmail(e) {
			t.Errorf("validEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "plain", "no@tld", "two@@at.com", "spa ce@x.com", "a@" + strings.Repeat("x", 260) + ".com"}
	for _, e := range invalid {
		if validEmail(e) {
			t.Errorf("validEmail(%q) = true, want false", e)
		}
	}
}

func TestValidateBlog(t *testing.T) {
	if msg := validateBlog("Title", "trending", "<p>body</p>"); msg != "" {
		t.Errorf("valid blog rejected: %q", msg)
	}
	if msg := validateBlog("", "trending", "x"); msg == "" {
		t.Error("empty title accepted")
	}
	if msg := validateBlog("Title", "opinion", "x"); msg == "" {
		t.Error("unknown category accepted")
	}
	if msg := validateBlog("Title", "news", ""); msg == "" {
		t.Error("empty content accepted")
	}
	if msg := validateBlog(strings.Repeat("t", 301), "news", "x"); msg == "" {
		t.Error("overlong title accepted")
	}
}

func TestValidateUser(t *testing.T) {
	if msg := validateUser("Dana", "dana@nexus.dev", "longenough"); msg != "" {
		t.Errorf("valid user rejected: %q", msg)
	}
	if msg := validateUser("Dana", "dana@nexus.dev", "short"); msg == "" {
		t.Error("short password accepted")
	}
	if msg := validateUser("Dana", "not-an-email", "longenough"); msg == "" {
		t.Error("bad email accepted")
	}
}

func TestValidateJob(t *testing.T) {
	if msg := validateJob("Engineer", "Bucharest", "full-time"); msg != "" {
		t.Errorf("valid job rejected: %q", msg)
	}
	if msg := validateJob("Engineer", "Bucharest", "freelance"); msg == "" {
		t.Error("unknown job type accepted")
	}
	if msg := validateJob("Engineer", "", "remote"); msg == "" {
		t.Error("empty location accepted")
	}
}

func TestCheckImage(t *testing.T) {
	valid := []string{"cover.jpg", "photo.JPEG", "diagram.svg", "banner.webp", "icon.png"}
	for _, name := range valid {
		if msg := checkImage(name, 1024); msg != "" {
			t.Errorf("checkImage(%q) = %q, want accepted", name, msg)
		}
	}
	invalid := []string{"resume.pdf", "script.exe", "archive.tar.gz", "noextension"}
	for _, name := range invalid {
		if msg := checkImage(name, 1024); msg == "" {
			t.Errorf("checkImage(%q) accepted, want rejected", name)
		}
	}
	if msg := checkImage("huge.png", maxImageBytes+1); msg == "" {
		t.Error("oversized image accepted")
	}
	if msg := checkImage("exact.png", maxImageBytes); msg != "" {
		t.Errorf("image at the size limit rejected: %q", msg)
	}
}

func TestValidateApplication(t *testing.T) {
	if msg := validateApplication("Ana", "Pop", "ana@x.com", "+40711111111", "I would like to apply.", "immediate"); msg != "" {
		t.Errorf("valid application rejected: %q", msg)
	}
	if msg := validateApplication("", "Pop", "ana@x.com", "1", "letter", "immediate"); msg == "" {
		t.Error("missing first name accepted")
	}
	if msg := validateApplication("Ana", "Pop", "ana@x.com", "1", "letter", "whenever"); msg == "" {
		t.Error("unknown availability accepted")
	}
	if msg := validateApplication("Ana", "Pop", "ana@x.com", "1", strings.Repeat("x", 10_001), "immediate"); msg == "" {
		t.Error("overlong cover letter accepted")
	}
}
