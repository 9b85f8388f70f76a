// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metatag encodes auxiliary event metadata into a free-text notes
// string and recovers it again.
//
// The system-calendar backend has no custom columns, so the owner id and the
// display color ride inside the notes field as bracket tags:
//
//	[color:#AABBCC]
//	[uid:u-42]
//
// Each tag appears at most once. Encode and Decode are pure functions; the
// storage layer calls Encode right before a write and Decode right after a
// read, so the rest of the application only ever sees clean notes.
package metatag

import (
	"regexp"
	"strings"
)

// Tags is the set of metadata values the codec knows how to embed.
// Zero-valued fields are skipped on encode and reported empty on decode.
type Tags struct {
	// Color is a hex color in "#RRGGBB" form.
	Color string

	// OwnerID is the id of the user the event belongs to.
	OwnerID string
}

var (
	colorTagRegexp = regexp.MustCompile(`\[color:(#[0-9a-fA-F]{6})\]`)
	uidTagRegexp   = regexp.MustCompile(`\[uid:([^\[\]]+)\]`)
)

// Encode appends the present tags to notes and returns the result.
//
// Tags already present in notes are not duplicated. Each appended tag is
// separated from the preceding text by a newline when that text is non-empty,
// matching the persisted format of existing calendar entries.
func Encode(notes string, tags Tags) string {
	out := notes

	if tags.Color != "" && !colorTagRegexp.MatchString(out) {
		out = appendTag(out, "[color:"+tags.Color+"]")
	}
	if tags.OwnerID != "" && !uidTagRegexp.MatchString(out) {
		out = appendTag(out, "[uid:"+tags.OwnerID+"]")
	}

	return out
}

// Decode extracts the known tags from raw notes and returns them together
// with the notes cleaned of all recognized tags and trimmed of surrounding
// whitespace.
//
// Decoding is idempotent: running Decode over already-cleaned notes yields
// the same notes and empty tag values. Bracketed substrings that are not a
// recognized tag are left untouched.
func Decode(raw string) (Tags, string) {
	var tags Tags

	if m := colorTagRegexp.FindStringSubmatch(raw); m != nil {
		tags.Color = m[1]
	}
	if m := uidTagRegexp.FindStringSubmatch(raw); m != nil {
		tags.OwnerID = m[1]
	}

	cleaned := colorTagRegexp.ReplaceAllString(raw, "")
	cleaned = uidTagRegexp.ReplaceAllString(cleaned, "")

	return tags, strings.TrimSpace(cleaned)
}

func appendTag(notes, tag string) string {
	if notes == "" {
		return tag
	}
	return notes + "\n" + tag
}
