// Package kind includes a type for convenient handling of event kinds, and the
// kinds this application reads and writes.
package kind

import (
	"strconv"
	"sync"

	"nts.lol/errorf"
)

// T - which will be externally referenced as kind.T is the event type in the
// nostr protocol, the use of the capital T signifying type, consistent with Go
// idiom, the Go standard library, and much, conformant, existing code.
type T struct {
	K uint16
}

func New[V uint16 | uint32 | int32 | no](k V) (ki *T) { return &T{uint16(k)} }

func (k *T) ToInt() no {
	if k == nil {
		return 0
	}
	return no(k.K)
}

func (k *T) ToU16() uint16 {
	if k == nil {
		return 0
	}
	return k.K
}

func (k *T) ToU64() uint64 {
	if k == nil {
		return 0
	}
	return uint64(k.K)
}

func (k *T) Name() st { return GetString(k) }

func (k *T) Equal(k2 *T) bo {
	if k == nil || k2 == nil {
		return k == k2
	}
	return k.K == k2.K
}

// String renders the kind as its decimal number, the form used in `k` tags and
// addresses.
func (k *T) String() string { return strconv.FormatUint(k.ToU64(), 10) }

// Marshal appends the decimal form of the kind.
func (k *T) Marshal(dst by) (b by) { return strconv.AppendUint(dst, k.ToU64(), 10) }

// Unmarshal reads a decimal kind from the front of b and returns the remainder.
func (k *T) Unmarshal(b by) (r by, err er) {
	var i no
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == 0 {
		err = errorf.E("no digits found for kind in '%s'", b)
		return
	}
	var n uint64
	if n, err = strconv.ParseUint(st(b[:i]), 10, 16); err != nil {
		err = errorf.E("kind out of range: %s", b[:i])
		return
	}
	k.K = uint16(n)
	r = b[i:]
	return
}

// IsReplaceable returns true if the event kind is a replaceable kind - that is,
// if the newest version is the one that is in force.
func (k *T) IsReplaceable() bo {
	return k.K == ProfileMetadata.K || k.K == FollowList.K ||
		(k.K >= ReplaceableStart.K && k.K < ReplaceableEnd.K)
}

// IsParameterizedReplaceable is a kind of event that is one of a group of
// events that replaces based on matching criteria, the author, kind and `d` tag.
func (k *T) IsParameterizedReplaceable() bo {
	return k.K >= ParameterizedReplaceableStart.K &&
		k.K < ParameterizedReplaceableEnd.K
}

var (
	ProfileMetadata = &T{0}
	// TextNote is the short text note, the inner record of a wrapped note.
	TextNote   = &T{1}
	FollowList = &T{3}
	// NoteToSelf is the flat legacy note, content and title tag each encrypted to
	// the author's own key.
	NoteToSelf = &T{1990}

	ReplaceableStart = &T{10000}
	ReplaceableEnd   = &T{20000}
	// HTTPAuth is the ephemeral event signed to authenticate an HTTP request.
	HTTPAuth = &T{27235}

	ParameterizedReplaceableStart = &T{30000}
	// DraftWrap is the parameterized replaceable wrapper whose content is an
	// encrypted, signed inner event, addressed by its `d` tag.
	DraftWrap                   = &T{31234}
	ParameterizedReplaceableEnd = &T{40000}
)

var MapMx sync.Mutex
var Map = map[uint16]string{
	ProfileMetadata.K: "ProfileMetadata",
	TextNote.K:        "TextNote",
	FollowList.K:      "FollowList",
	NoteToSelf.K:      "NoteToSelf",
	HTTPAuth.K:        "HTTPAuth",
	DraftWrap.K:       "DraftWrap",
}

// GetString returns a human readable identifier for a kind.T.
func GetString(t *T) string {
	if t == nil {
		return ""
	}
	MapMx.Lock()
	defer MapMx.Unlock()
	return Map[t.K]
}
