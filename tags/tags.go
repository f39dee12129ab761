// Package tags is the ordered list of tag.T carried by an event.
package tags

import (
	"nts.lol/tag"
)

// T is a list of T - which are lists of string elements with ordering and no
// uniqueness constraint (not a set).
type T struct {
	t []*tag.T
}

func New(fields ...*tag.T) (t *T) {
	t = &T{}
	for _, field := range fields {
		t.t = append(t.t, field)
	}
	return
}

func NewWithCap(c int) (t *T) { return &T{t: make([]*tag.T, 0, c)} }

// FromStrings builds tags from the [][]string form used by JSON decoders.
func FromStrings(s ...[]string) (t *T) {
	t = NewWithCap(len(s))
	for _, f := range s {
		t.t = append(t.t, tag.New(f...))
	}
	return
}

func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.t)
}

// N returns the tag at position i, or nil.
func (t *T) N(i int) *tag.T {
	if t == nil || i >= len(t.t) {
		return nil
	}
	return t.t[i]
}

// F returns the underlying slice of tags.
func (t *T) F() []*tag.T {
	if t == nil {
		return nil
	}
	return t.t
}

// AppendTags adds tags to the end of the list.
func (t *T) AppendTags(tgs ...*tag.T) (tt *T) {
	tt = t
	if t == nil {
		tt = &T{}
	}
	tt.t = append(tt.t, tgs...)
	return
}

// GetFirst returns the first tag whose key matches, or nil.
func (t *T) GetFirst(key []byte) *tag.T {
	for _, tg := range t.F() {
		if tg.HasKey(key) {
			return tg
		}
	}
	return nil
}

// ValidUTF8 reports whether every field of every tag is valid UTF-8.
func (t *T) ValidUTF8() bool {
	for _, tg := range t.F() {
		if !tg.ValidUTF8() {
			return false
		}
	}
	return true
}

func (t *T) Equal(t2 *T) bool {
	if t.Len() != t2.Len() {
		return false
	}
	for i := range t.Len() {
		if !t.t[i].Equal(t2.t[i]) {
			return false
		}
	}
	return true
}

func (t *T) ToStringSlice() (s [][]string) {
	s = make([][]string, 0, t.Len())
	for _, tg := range t.F() {
		s = append(s, tg.ToStringSlice())
	}
	return
}

// Marshal encodes the tags as a minified JSON array of arrays. Nil and empty
// tags both render as [].
func (t *T) Marshal(dst []byte) (b []byte) {
	b = append(dst, '[')
	for i, tg := range t.F() {
		if i > 0 {
			b = append(b, ',')
		}
		b = tg.Marshal(b)
	}
	b = append(b, ']')
	return
}
