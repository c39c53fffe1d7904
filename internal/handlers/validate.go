// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"nexusapi/internal/models"
)

// Validation limits for request fields.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxContentLen     = 200_000
	maxNameLen        = 150
	maxEmailLen       = 254
	minPasswordLen    = 8
	maxMessageLen     = 5_000
	maxCoverLetterLen = 10_000
	maxNotesLen       = 5_000
	maxLocationLen    = 150
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// maxImageBytes caps uploaded images at 4 MiB.
const maxImageBytes = 4 << 20

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".svg":  true,
	".webp": true,
}

// checkImage validates an uploaded image's extension and size. Returns
// the tail of an error message, or "".
func checkImage(filename string, size int64) string {
	if !imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return "must be a JPEG, PNG, GIF, BMP, SVG, or WebP image."
	}
	if size > maxImageBytes {
		return "exceeds the maximum file size."
	}
	return ""
}

// validEmail checks the practical shape of an email address.
func validEmail(email string) bool {
	return utf8.RuneCountInString(email) <= maxEmailLen && emailPattern.MatchString(email)
}

// validateTitle checks a required title field and returns the first
// error found, or "".
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateBlog checks blog create/update inputs.
func validateBlog(title, category, content string) string {
	if msg := validateTitle(title); msg != "" {
		return msg
	}
	if !models.ValidBlogCategory(category) {
		return "Category must be either trending or news."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 200,000 characters)."
	}
	return ""
}

// validateUser checks admin-user create inputs.
func validateUser(name, email, password string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 150 characters)."
	}
	if !validEmail(email) {
		return "A valid email address is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}

// validateJob checks job create/update inputs.
func validateJob(title, location, jobType string) string {
	if msg := validateTitle(title); msg != "" {
		return msg
	}
	if strings.TrimSpace(location) == "" {
		return "Location is required."
	}
	if utf8.RuneCountInString(location) > maxLocationLen {
		return "Location is too long (max 150 characters)."
	}
	if !models.ValidJobType(jobType) {
		return "Job type is invalid."
	}
	return ""
}

// validateFeedback checks feedback create/update inputs.
func validateFeedback(name, title, message string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(message) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validateApplication checks the public apply form.
func validateApplication(firstName, lastName, email, phone, coverLetter, availability string) string {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return "First and last name are required."
	}
	if !validEmail(email) {
		return "A valid email address is required."
	}
	if strings.TrimSpace(phone) == "" {
		return "Phone number is required."
	}
	if strings.TrimSpace(coverLetter) == "" {
		return "Cover letter is required."
	}
	if utf8.RuneCountInString(coverLetter) > maxCoverLetterLen {
		return "Cover letter is too long (max 10,000 characters)."
	}
	if !models.ValidAvailability(availability) {
		return "Availability is invalid."
	}
	return ""
}
