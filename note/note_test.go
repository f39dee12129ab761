package note

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nts.lol/encryption"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/keys"
	"nts.lol/kind"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

func identity(t *testing.T) *keys.Identity {
	t.Helper()
	id, err := keys.Generate()
	require.NoError(t, err)
	return id
}

func TestEndToEnd(t *testing.T) {
	id := identity(t)
	outer, err := Create("Buy milk", "", id, nil)
	require.NoError(t, err)
	require.Equal(t, kind.DraftWrap.K, outer.Kind.K)
	require.Equal(t, id.PubBytes(), outer.Pubkey)
	require.Equal(t, 2, outer.Tags.Len())
	d := outer.Tags.GetFirst(DKey)
	require.NotNil(t, d)
	require.Len(t, d.S(tag.Value), 32)
	k := outer.Tags.GetFirst(KKey)
	require.NotNil(t, k)
	require.Equal(t, "23", k.S(tag.Value))
	require.NotContains(t, outer.ContentString(), "Buy milk")
	valid, err := outer.Verify()
	require.NoError(t, err)
	require.True(t, valid)

	n, err := Open(outer, id)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", n.Content)
	require.Equal(t, "Buy milk", n.Title)
	require.Equal(t, "31234:"+id.PubHex()+":"+d.S(tag.Value), n.Address)
	require.Len(t, n.ID, 32)
}

func TestExplicitTitleAndTime(t *testing.T) {
	id := identity(t)
	ts := timestamp.FromUnix(1700000000)
	outer, err := Create("line one\nline two", "Shopping", id, ts)
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), outer.CreatedAt.I64())
	n, err := Open(outer, id)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two", n.Content)
	require.Equal(t, "Shopping", n.Title)
	require.Equal(t, int64(1700000000), n.CreatedAt.I64())
}

func TestFreshIdentifiers(t *testing.T) {
	id := identity(t)
	a, err := Create("same", "", id, nil)
	require.NoError(t, err)
	b, err := Create("same", "", id, nil)
	require.NoError(t, err)
	require.NotEqual(t, a.Tags.GetFirst(DKey).S(tag.Value), b.Tags.GetFirst(DKey).S(tag.Value))
	require.NotEqual(t, a.ContentString(), b.ContentString())
}

func TestSurvivesJSONTransport(t *testing.T) {
	id := identity(t)
	outer, err := Create("Buy milk", "", id, nil)
	require.NoError(t, err)
	received := event.New()
	require.NoError(t, received.Unmarshal(outer.Serialize()))
	n, err := Open(received, id)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", n.Content)
}

func TestTamperedContent(t *testing.T) {
	id := identity(t)
	outer, err := Create("Buy milk", "", id, nil)
	require.NoError(t, err)
	c := []byte(outer.ContentString())
	for _, i := range []int{10, 50, 100, len(c) - 10} {
		mod := *outer
		b := make([]byte, len(c))
		copy(b, c)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		mod.Content = b
		n, err := Open(&mod, id)
		if !errors.Is(err, errorf.ErrAuthenticationFailed) {
			t.Fatalf("byte %d: got %v", i, err)
		}
		require.Nil(t, n)
	}
}

func TestWrongIdentity(t *testing.T) {
	outer, err := Create("Buy milk", "", identity(t), nil)
	require.NoError(t, err)
	_, err = Open(outer, identity(t))
	require.ErrorIs(t, err, errorf.ErrAuthenticationFailed)
}

func TestEmptyContentRejected(t *testing.T) {
	id := identity(t)
	for _, c := range []st{"", "   ", "\n\t"} {
		_, err := Create(c, "", id, nil)
		require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
		_, err = CreateLegacy(c, "", id, nil)
		require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	}
}

func TestInvalidUTF8Rejected(t *testing.T) {
	_, err := Create("bad \xff", "", identity(t), nil)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
}

// wrap encrypts arbitrary inner bytes into a correctly signed wrapper.
func wrap(t *testing.T, id *keys.Identity, inner []byte) *event.T {
	t.Helper()
	ck, err := encryption.SelfKey(id.Sec[:])
	require.NoError(t, err)
	payload, err := encryption.Encrypt(inner, ck)
	require.NoError(t, err)
	s, err := id.Signer()
	require.NoError(t, err)
	ev, err := event.Build(kind.DraftWrap, nil, tags.New(tag.New("d", NewIdentifier()),
		tag.New("k", "23")), []byte(payload), s)
	require.NoError(t, err)
	return ev
}

func TestInvalidInnerRecord(t *testing.T) {
	id := identity(t)
	_, err := Open(wrap(t, id, []byte("not json")), id)
	require.ErrorIs(t, err, errorf.ErrInvalidInnerRecord)

	s, err := identity(t).Signer()
	require.NoError(t, err)
	foreign, err := event.Build(kind.TextNote, nil, nil, []byte("hi"), s)
	require.NoError(t, err)
	_, err = Open(wrap(t, id, foreign.Serialize()), id)
	require.ErrorIs(t, err, errorf.ErrInvalidInnerRecord)

	own, err := id.Signer()
	require.NoError(t, err)
	inner, err := event.Build(kind.TextNote, nil, nil, []byte("hi"), own)
	require.NoError(t, err)
	inner.Content = []byte("changed")
	_, err = Open(wrap(t, id, inner.Serialize()), id)
	require.ErrorIs(t, err, errorf.ErrInvalidInnerRecord)
}

func TestOuterChecks(t *testing.T) {
	id := identity(t)
	outer, err := Create("Buy milk", "", id, nil)
	require.NoError(t, err)
	bad := *outer
	bad.Sig = append([]byte{}, outer.Sig...)
	bad.Sig[5] ^= 1
	_, err = Open(&bad, id)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	wrongKind := *outer
	wrongKind.Kind = kind.TextNote
	_, err = Open(&wrongKind, id)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	_, err = Address(&wrongKind)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
}

func TestGarbageContent(t *testing.T) {
	id := identity(t)
	outer, err := Create("Buy milk", "", id, nil)
	require.NoError(t, err)
	short := *outer
	short.Content = []byte("AgAA")
	_, err = Open(&short, id)
	require.ErrorIs(t, err, errorf.ErrMalformedPayload)
	notB64 := *outer
	notB64.Content = []byte(strings.Repeat("*", 200))
	_, err = Open(&notB64, id)
	require.ErrorIs(t, err, errorf.ErrInvalidEncoding)
}

func TestLegacyRoundTrip(t *testing.T) {
	id := identity(t)
	ev, err := CreateLegacy("Call the bank tomorrow about the mortgage", "", id, nil)
	require.NoError(t, err)
	require.Equal(t, kind.NoteToSelf.K, ev.Kind.K)
	require.NotContains(t, ev.ContentString(), "bank")
	n, err := OpenLegacy(ev, id)
	require.NoError(t, err)
	require.Equal(t, "Call the bank tomorrow about the mortgage", n.Content)
	require.Equal(t, "Call the bank tomorrow about the mortgage", n.Title)
	_, err = OpenLegacy(ev, identity(t))
	require.ErrorIs(t, err, errorf.ErrAuthenticationFailed)
	_, err = Open(ev, id)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
}
