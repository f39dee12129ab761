// Package tag provides an implementation of a nostr tag list, an array of
// strings with a usually single letter first "key" field, including methods to
// compare, marshal and access elements with their proper semantics.
package tag

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/exp/constraints"

	"nts.lol/text"
)

// The tag position meanings, so they are clear when reading.
const (
	Key = iota
	Value
)

// BS is an abstract data type that can process strings and byte slices as byte slices.
type BS[Z []byte | string] []byte

// T is a list of strings with a literal ordering.
//
// Not a set, there can be repeating elements.
type T struct {
	field []BS[[]byte]
}

// New creates a new tag.T from a variadic parameter that can be either string or byte slice.
func New[V string | []byte](fields ...V) (t *T) {
	t = &T{field: make([]BS[[]byte], len(fields))}
	for i, field := range fields {
		t.field[i] = []byte(field)
	}
	return
}

// NewWithCap creates a new empty tag.T with a pre-allocated capacity for some number of fields.
func NewWithCap[V constraints.Integer](c V) *T { return &T{make([]BS[[]byte], 0, c)} }

// S returns a field of a tag.T as a string.
func (t *T) S(i int) (s string) {
	if t == nil || t.Len() <= i {
		return
	}
	return string(t.field[i])
}

// B returns a field of a tag.T as a byte slice.
func (t *T) B(i int) (b []byte) {
	if t == nil || t.Len() <= i {
		return
	}
	return t.field[i]
}

// Len returns the number of elements in a tag.T.
func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.field)
}

// Append byte slices to a tag.T.
func (t *T) Append(b ...[]byte) (tt *T) {
	tt = t
	if t == nil {
		tt = &T{}
	}
	for _, bb := range b {
		tt.field = append(tt.field, bb)
	}
	return
}

// Clone makes a new tag.T with the same members.
func (t *T) Clone() (c *T) {
	if t == nil {
		return nil
	}
	c = &T{field: make([]BS[[]byte], 0, len(t.field))}
	for _, f := range t.field {
		b := make([]byte, len(f))
		copy(b, f)
		c.field = append(c.field, b)
	}
	return
}

// Key returns the first element of the tag.
func (t *T) Key() []byte { return t.B(Key) }

// Value returns the second element of the tag.
func (t *T) Value() []byte { return t.B(Value) }

// HasKey reports whether the first element equals k.
func (t *T) HasKey(k []byte) bool { return t.Len() > Key && bytes.Equal(t.field[Key], k) }

// Equal reports whether both tags have the same fields in the same order.
func (t *T) Equal(t2 *T) bool {
	if t.Len() != t2.Len() {
		return false
	}
	for i := range t.Len() {
		if !bytes.Equal(t.field[i], t2.field[i]) {
			return false
		}
	}
	return true
}

// ValidUTF8 reports whether every field is valid UTF-8, which is required for the
// field to have a single canonical JSON form.
func (t *T) ValidUTF8() bool {
	for i := range t.Len() {
		if !utf8.Valid(t.field[i]) {
			return false
		}
	}
	return true
}

// ToStringSlice converts a tag.T to a slice of strings.
func (t *T) ToStringSlice() (b []string) {
	b = make([]string, 0, t.Len())
	for i := range t.Len() {
		b = append(b, string(t.field[i]))
	}
	return
}

// Marshal encodes a tag.T as standard minified JSON array of strings.
func (t *T) Marshal(dst []byte) (b []byte) {
	dst = append(dst, '[')
	for i := range t.Len() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = text.AppendQuote(dst, t.field[i], text.NostrEscape)
	}
	dst = append(dst, ']')
	return dst
}
