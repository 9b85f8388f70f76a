package metatag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncode_AppendsBothTags verifies that color and owner tags are appended
// newline-separated after existing text.
func TestEncode_AppendsBothTags(t *testing.T) {
	got := Encode("pick up keys", Tags{Color: "#ff0000", OwnerID: "u1"})
	assert.Equal(t, "pick up keys\n[color:#ff0000]\n[uid:u1]", got)
}

// TestEncode_EmptyNotes verifies that no leading newline is produced when the
// notes are empty.
func TestEncode_EmptyNotes(t *testing.T) {
	got := Encode("", Tags{Color: "#00ff00"})
	assert.Equal(t, "[color:#00ff00]", got)
}

// TestEncode_SkipsZeroValues verifies that absent tags leave the notes
// untouched.
func TestEncode_SkipsZeroValues(t *testing.T) {
	assert.Equal(t, "plain", Encode("plain", Tags{}))
}

// TestEncode_DoesNotDuplicateExistingTag verifies that a tag already present
// in the raw notes is not appended a second time.
func TestEncode_DoesNotDuplicateExistingTag(t *testing.T) {
	raw := "notes\n[color:#123abc]"
	got := Encode(raw, Tags{Color: "#123abc", OwnerID: "u9"})
	assert.Equal(t, "notes\n[color:#123abc]\n[uid:u9]", got)
}

// TestDecode_RoundTrip verifies the round-trip property: decode(encode(n, t))
// recovers both the tags and the original notes for tag-free input.
func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		tags  Tags
	}{
		{name: "text with both tags", notes: "bring slides", tags: Tags{Color: "#aB12cD", OwnerID: "user-17"}},
		{name: "empty notes", notes: "", tags: Tags{Color: "#000000", OwnerID: "u1"}},
		{name: "color only", notes: "call mom", tags: Tags{Color: "#ffffff"}},
		{name: "uid only", notes: "dentist", tags: Tags{OwnerID: "a@b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.notes, tt.tags)
			gotTags, cleaned := Decode(encoded)

			assert.Equal(t, tt.tags, gotTags)
			assert.Equal(t, tt.notes, cleaned)
		})
	}
}

// TestDecode_Idempotent verifies that decoding already-cleaned notes returns
// the same notes with empty tags.
func TestDecode_Idempotent(t *testing.T) {
	_, cleaned := Decode("meeting with [uid:u3] tag\n[color:#0a0b0c]")
	require.NotContains(t, cleaned, "[color:")

	tags, again := Decode(cleaned)
	assert.Equal(t, Tags{}, tags)
	assert.Equal(t, cleaned, again)
}

// TestDecode_UnknownBracketsUntouched verifies that bracket-like substrings
// that are not a recognized tag survive decoding.
func TestDecode_UnknownBracketsUntouched(t *testing.T) {
	tags, cleaned := Decode("see [room:14b] for details [color:#112233]")
	assert.Equal(t, "#112233", tags.Color)
	assert.Equal(t, "see [room:14b] for details", cleaned)
}

// TestDecode_MalformedColorIgnored verifies that a color tag with a short hex
// value is not recognized and stays in the notes.
func TestDecode_MalformedColorIgnored(t *testing.T) {
	tags, cleaned := Decode("x [color:#fff] y")
	assert.Empty(t, tags.Color)
	assert.Equal(t, "x [color:#fff] y", cleaned)
}
