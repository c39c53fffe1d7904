// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"regexp"
	"strconv"
	"time"
)

// dynamicDatePattern matches the year inside editor-inserted
// <span class="dynamic-date">YYYY</span> markers. Attribute order and
// extra classes are tolerated as long as dynamic-date is present.
var dynamicDatePattern = regexp.MustCompile(
	`(<span[^>]*class="[^"]*\bdynamic-date\b[^"]*"[^>]*>)\s*\d{4}\s*(</span>)`)

// renderDynamicDates rewrites dynamic-date markers in rich-text content
// so the displayed year is always current. Years outside the marker are
// left alone.
func renderDynamicDates(html string, now time.Time) string {
	year := strconv.Itoa(now.Year())
	return dynamicDatePattern.ReplaceAllString(html, "${1}"+year+"${2}")
}
