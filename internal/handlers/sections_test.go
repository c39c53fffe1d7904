// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func urlencodedRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", "/admin/services", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for field, filename := range files {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create file %s: %v", field, err)
		}
		part.Write([]byte("file-bytes"))
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/admin/services", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req
}

func TestParseSectionForm_FoldsNumberedSlots(t *testing.T) {
	form := url.Values{}
	form.Set("content1", "<p>first</p>")
	form.Set("caption1", "one")
	form.Set("content3", "<p>third</p>") // slot 2 left empty

	sections, msg, err := parseSectionForm(urlencodedRequest(t, form), nil, "services", nil)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2 (empty slots skipped)", len(sections))
	}
	if sections[0].Content == nil || *sections[0].Content != "<p>first</p>" {
		t.Errorf("section 0 content = %v", sections[0].Content)
	}
	if sections[0].Caption == nil || *sections[0].Caption != "one" {
		t.Errorf("section 0 caption = %v", sections[0].Caption)
	}
	if sections[1].Content == nil || *sections[1].Content != "<p>third</p>" {
		t.Errorf("section 1 content = %v", sections[1].Content)
	}
}

func TestParseSectionForm_StructuredList(t *testing.T) {
	req := multipartRequest(t, map[string]string{
		"sections": `[{"content":"<p>hello</p>","caption":"cap"},{"content":"<p>second</p>"}]`,
	}, nil)

	sections, msg, err := parseSectionForm(req, nil, "services", nil)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Content == nil || *sections[0].Content != "<p>hello</p>" {
		t.Errorf("section 0 content = %v", sections[0].Content)
	}
	if sections[0].Caption == nil || *sections[0].Caption != "cap" {
		t.Errorf("section 0 caption = %v", sections[0].Caption)
	}
	if sections[1].Caption != nil {
		t.Errorf("section 1 caption = %v, want nil", sections[1].Caption)
	}
}

func TestParseSectionForm_StructuredListWinsOverNumbered(t *testing.T) {
	form := url.Values{}
	form.Set("sections", `[{"content":"<p>structured</p>"}]`)
	form.Set("content1", "<p>numbered</p>")

	sections, msg, err := parseSectionForm(urlencodedRequest(t, form), nil, "services", nil)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(sections))
	}
	if *sections[0].Content != "<p>structured</p>" {
		t.Errorf("content = %q, want the structured entry", *sections[0].Content)
	}
}

func TestParseSectionForm_StructuredListKeepsStoredImage(t *testing.T) {
	form := url.Values{}
	form.Set("sections", `[{"content":"<p>x</p>","image":"https://cdn.test/services/a.png"},{"content":"<p>cleared</p>"}]`)

	sections, msg, err := parseSectionForm(urlencodedRequest(t, form), nil, "services", nil)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Image == nil || *sections[0].Image != "https://cdn.test/services/a.png" {
		t.Errorf("section 0 image = %v, want the stored URL kept", sections[0].Image)
	}
	if sections[1].Image != nil {
		t.Error("an entry that names no image must keep none")
	}
}

func TestParseSectionForm_RejectsMalformedStructuredList(t *testing.T) {
	form := url.Values{}
	form.Set("sections", `not-json`)

	_, msg, err := parseSectionForm(urlencodedRequest(t, form), nil, "services", nil)
	if err != nil {
		t.Fatalf("parseSectionForm: %v", err)
	}
	if msg == "" {
		t.Error("malformed sections field accepted")
	}
}

func TestParseSectionForm_RejectsBadImageFile(t *testing.T) {
	req := multipartRequest(t,
		map[string]string{"sections": `[{"content":"<p>x</p>"}]`},
		map[string]string{"sections[0][image]": "notes.exe"})

	_, msg, err := parseSectionForm(req, nil, "services", nil)
	if err != nil {
		t.Fatalf("parseSectionForm: %v", err)
	}
	if msg == "" {
		t.Error("non-image section upload accepted")
	}

	req = multipartRequest(t,
		map[string]string{"content1": "<p>x</p>"},
		map[string]string{"image1": "payload.bin"})
	_, msg, err = parseSectionForm(req, nil, "services", nil)
	if err != nil {
		t.Fatalf("parseSectionForm: %v", err)
	}
	if msg == "" {
		t.Error("non-image numbered upload accepted")
	}
}

func TestParseSectionForm_PreservesExistingImages(t *testing.T) {
	form := url.Values{}
	form.Set("content1", "<p>kept</p>")
	form.Set("content2", "<p>image only slot</p>")

	existing := map[int]string{
		0: "https://cdn.test/services/a.png",
		1: "https://cdn.test/services/b.png",
	}
	sections, msg, err := parseSectionForm(urlencodedRequest(t, form), nil, "services", existing)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(sections))
	}
	if sections[0].Image == nil || *sections[0].Image != existing[0] {
		t.Error("slot 1 must keep its stored image when no file is sent")
	}
	if sections[1].Image == nil || *sections[1].Image != existing[1] {
		t.Error("slot 2 must keep its stored image when no file is sent")
	}
}

func TestParseSectionForm_ExistingImageAloneKeepsSlot(t *testing.T) {
	req := urlencodedRequest(t, url.Values{})

	existing := map[int]string{0: "https://cdn.test/services/only.png"}
	sections, msg, err := parseSectionForm(req, nil, "services", existing)
	if err != nil || msg != "" {
		t.Fatalf("parseSectionForm: msg=%q err=%v", msg, err)
	}
	if len(sections) != 1 {
		t.Fatalf("sections = %d, want 1 (image-only slot survives)", len(sections))
	}
	if sections[0].Content != nil {
		t.Error("image-only slot should have no content")
	}
}

func TestSectionFormPresent(t *testing.T) {
	if sectionFormPresent(urlencodedRequest(t, url.Values{})) {
		t.Error("empty form reported as carrying sections")
	}
	if sectionFormPresent(urlencodedRequest(t, url.Values{"title": {"New title"}})) {
		t.Error("title-only form reported as carrying sections")
	}

	form := url.Values{}
	form.Set("content3", "<p>x</p>")
	if !sectionFormPresent(urlencodedRequest(t, form)) {
		t.Error("numbered content field not detected")
	}

	form = url.Values{}
	form.Set("caption2", "cap")
	if !sectionFormPresent(urlencodedRequest(t, form)) {
		t.Error("numbered caption field not detected")
	}

	form = url.Values{}
	form.Set("sections", "[]")
	if !sectionFormPresent(urlencodedRequest(t, form)) {
		t.Error("structured sections field not detected")
	}

	req := multipartRequest(t, nil, map[string]string{"image1": "a.png"})
	if !sectionFormPresent(req) {
		t.Error("numbered image file not detected")
	}
}
