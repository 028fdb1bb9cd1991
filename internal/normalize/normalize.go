// Package normalize provides pure cleanup functions for raw text extracted
// from scholarship pages. All functions fail soft: absent or unusable input
// yields an empty string, never an error.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

// amountStrip matches every character that is not part of a monetary token.
var amountStrip = regexp.MustCompile(`[^0-9,$.\-]`)

// deadlineLayouts is tried in order; the first layout that parses wins.
// Calendar validation is strict, so month 13 or Feb 29 on a non-leap year
// fails every layout and the input falls through unchanged.
var deadlineLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Text collapses all whitespace runs (including newlines and tabs) to
// single spaces and trims the result. Markup tags and HTML entities are
// left alone; stripping those is an upstream concern.
func Text(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Amount strips every character outside {digit, comma, $, ., -}.
// Ranges like "$1,000 to $5,000" collapse to "$1,000$5,000" with no
// separator inserted between the tokens. Downstream consumers depend on
// that exact output, so it must not be "fixed" here.
func Amount(raw string) string {
	if raw == "" {
		return ""
	}
	return amountStrip.ReplaceAllString(raw, "")
}

// Deadline cleans the input and tries to parse it against the supported
// date layouts, returning canonical YYYY-MM-DD on success. If no layout
// parses, the cleaned input is returned unchanged; the normalizer never
// guesses at ambiguous or invalid dates.
func Deadline(raw string) string {
	cleaned := Text(raw)
	if cleaned == "" {
		return ""
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return cleaned
}
