package handlers

import (
	"testing"
	"time"
)

func TestRenderDynamicDates(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"basic marker",
			`<p>Since <span class="dynamic-date">2019</span>.</p>`,
			`<p>Since <span class="dynamic-date">2026</span>.</p>`,
		},
		{
			"marker with extra classes and attributes",
			`<span data-x="1" class="note dynamic-date em">2020</span>`,
			`<span data-x="1" class="note dynamic-date em">2026</span>`,
		},
		{
			"plain year untouched",
			`<p>Founded in 2019, still going.</p>`,
			`<p>Founded in 2019, still going.</p>`,
		},
		{
			"year in other span untouched",
			`<span class="static-date">2019</span>`,
			`<span class="static-date">2019</span>`,
		},
		{
			"multiple markers",
			`<span class="dynamic-date">2001</span> and <span class="dynamic-date">1999</span>`,
			`<span class="dynamic-date">2026</span> and <span class="dynamic-date">2026</span>`,
		},
	}
	for _, tt := range tests {
		if got := renderDynamicDates(tt.in, now); got != tt.want {
			t.Errorf("%s:\n got %q\nwant %q", tt.name, got, tt.want)
		}
	}
}
