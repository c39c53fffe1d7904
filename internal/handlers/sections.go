// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nexusapi/internal/models"
	"nexusapi/internal/storage"
)

// maxLegacySections is how many numbered section slots the admin form
// may send (content1..content20, image1..image20, caption1..caption20).
const maxLegacySections = 20

// sectionPayload is one entry of the structured sections field. Image
// carries an already-stored URL to keep; a new file for entry N rides
// along as the multipart field sections[N][image].
type sectionPayload struct {
	Content string `json:"content"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	Order   *int   `json:"order"`
}

// sectionFormPresent reports whether the request carries any section
// input at all, structured or numbered. Updates that send none leave
// the stored sections untouched.
func sectionFormPresent(r *http.Request) bool {
	if _, ok := r.Form["sections"]; ok {
		return true
	}
	for n := 1; n <= maxLegacySections; n++ {
		if _, ok := r.Form[fmt.Sprintf("content%d", n)]; ok {
			return true
		}
		if _, ok := r.Form[fmt.Sprintf("caption%d", n)]; ok {
			return true
		}
		if formFile(r, fmt.Sprintf("image%d", n)) != nil {
			return true
		}
	}
	return false
}

// parseSectionForm reads the section list from either accepted shape.
// The structured sections field (a JSON array) wins when present; the
// numbered content{N}/image{N}/caption{N} fields are folded into the
// same list otherwise. New image files are validated and uploaded under
// the given key prefix. Returns the sections, a validation message for
// rejected input, or an upload error.
func parseSectionForm(r *http.Request, uploads *storage.Client, prefix string, existing map[int]string) ([]models.Section, string, error) {
	if raw := strings.TrimSpace(r.FormValue("sections")); raw != "" {
		return parseStructuredSections(r, uploads, prefix, raw)
	}
	return parseNumberedSections(r, uploads, prefix, existing)
}

// parseStructuredSections decodes the JSON sections field. An entry
// that names no image keeps none, so a client can clear one explicitly.
func parseStructuredSections(r *http.Request, uploads *storage.Client, prefix, raw string) ([]models.Section, string, error) {
	var payload []sectionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, "Sections must be a JSON array.", nil
	}

	sections := []models.Section{}
	for i, p := range payload {
		sec := models.Section{
			Content: formStrPtr(p.Content),
			Caption: formStrPtr(p.Caption),
		}
		if fh := formFile(r, fmt.Sprintf("sections[%d][image]", i)); fh != nil {
			if msg := checkImage(fh.Filename, fh.Size); msg != "" {
				return nil, "Section image " + msg, nil
			}
			if uploads != nil {
				url, err := uploads.UploadFormImage(r.Context(), prefix, fh)
				if err != nil {
					return nil, "", fmt.Errorf("upload section image %d: %w", i+1, err)
				}
				sec.Image = &url
			}
		} else if p.Image != "" {
			img := p.Image
			sec.Image = &img
		}
		if sec.Content == nil && sec.Caption == nil && sec.Image == nil {
			continue
		}
		if p.Order != nil {
			sec.Order = *p.Order
		} else {
			sec.Order = len(sections)
		}
		sections = append(sections, sec)
	}
	return sections, "", nil
}

// parseNumberedSections folds the numbered form fields into an ordered
// section list. A slot is kept when it has content, a caption, a new
// image file, or an image preserved from its previous position; slots
// that send no file keep the existing image at the same position, so an
// update without re-uploads never loses images.
func parseNumberedSections(r *http.Request, uploads *storage.Client, prefix string, existing map[int]string) ([]models.Section, string, error) {
	sections := []models.Section{}
	for n := 1; n <= maxLegacySections; n++ {
		content := strings.TrimSpace(r.FormValue(fmt.Sprintf("content%d", n)))
		caption := strings.TrimSpace(r.FormValue(fmt.Sprintf("caption%d", n)))

		var image *string
		if fh := formFile(r, fmt.Sprintf("image%d", n)); fh != nil {
			if msg := checkImage(fh.Filename, fh.Size); msg != "" {
				return nil, "Section image " + msg, nil
			}
			if uploads != nil {
				url, err := uploads.UploadFormImage(r.Context(), prefix, fh)
				if err != nil {
					return nil, "", fmt.Errorf("upload section image %d: %w", n, err)
				}
				image = &url
			}
		}
		if image == nil {
			if url, ok := existing[n-1]; ok {
				image = &url
			}
		}

		if content == "" && caption == "" && image == nil {
			continue
		}
		sec := models.Section{Caption: formStrPtr(caption), Image: image, Order: len(sections)}
		if content != "" {
			sec.Content = &content
		}
		sections = append(sections, sec)
	}
	return sections, "", nil
}
