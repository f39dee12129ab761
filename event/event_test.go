package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nts.lol/errorf"
	"nts.lol/hex"
	"nts.lol/kind"
	"nts.lol/p256k"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

func testSigner(t *testing.T) *p256k.Signer {
	t.Helper()
	s := &p256k.Signer{}
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToCanonical(t *testing.T) {
	pub, _ := hex.Dec("f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9")
	ev := &T{
		Kind:      kind.TextNote,
		CreatedAt: timestamp.FromUnix(1700000000),
		Tags:      tags.New(tag.New("title", "Buy milk")),
		Content:   by("Buy milk\n\"2%\" \\ \t\x01"),
		Pubkey:    pub,
	}
	want := `[0,"f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",` +
		`1700000000,1,[["title","Buy milk"]],"Buy milk\n\"2%\" \\ \t\u0001"]`
	if got := st(ev.ToCanonical(nil)); got != want {
		t.Fatalf("canonical form\ngot  %s\nwant %s", got, want)
	}
	empty := &T{Kind: kind.New(0), CreatedAt: timestamp.FromUnix(0), Pubkey: pub}
	want = `[0,"f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",0,0,[],""]`
	if got := st(empty.ToCanonical(nil)); got != want {
		t.Fatalf("canonical form\ngot  %s\nwant %s", got, want)
	}
}

func TestBuildSignVerify(t *testing.T) {
	s := testSigner(t)
	ev, err := Build(kind.TextNote, timestamp.FromUnix(1700000000),
		tags.New(tag.New("title", "Buy milk")), by("Buy milk"), s)
	require.NoError(t, err)
	require.Equal(t, s.Pub(), ev.Pubkey)
	require.Equal(t, ev.GetIDBytes(), ev.ID)
	require.Len(t, ev.Sig, p256k.SignatureLen)
	valid, err := ev.Verify()
	require.NoError(t, err)
	require.True(t, valid)

	ev.Content = by("Buy bread")
	_, err = ev.Verify()
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	ev.Content = by("Buy milk")

	ev.Sig[0] ^= 1
	valid, _ = ev.Verify()
	require.False(t, valid)
	ev.Sig[0] ^= 1

	other := testSigner(t)
	ev.Pubkey = other.Pub()
	ev.ID = ev.GetIDBytes()
	valid, _ = ev.Verify()
	require.False(t, valid)
}

func TestBuildRejectsInvalidUTF8(t *testing.T) {
	s := testSigner(t)
	_, err := Build(kind.TextNote, nil, nil, by{0xff, 0xfe}, s)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	_, err = Build(kind.TextNote, nil, tags.New(tag.New(by("title"), by{0xc3})), by("ok"), s)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
	_, err = Build(nil, nil, nil, by("ok"), s)
	require.ErrorIs(t, err, errorf.ErrInvalidRecordField)
}

func TestMarshalFieldOrder(t *testing.T) {
	s := testSigner(t)
	ev, err := Build(kind.DraftWrap, timestamp.FromUnix(1), tags.New(tag.New("d", "x"),
		tag.New("k", "23")), by("payload"), s)
	require.NoError(t, err)
	b := st(ev.Marshal(nil))
	require.True(t, strings.HasPrefix(b,
		`{"kind":31234,"created_at":1,"tags":[["d","x"],["k","23"]],"content":"payload","pubkey":"`))
	last := -1
	for _, k := range []st{"kind", "created_at", "tags", "content", "pubkey", "id", "sig"} {
		i := strings.Index(b, `"`+k+`":`)
		if i <= last {
			t.Fatalf("field %s out of order in %s", k, b)
		}
		last = i
	}
	require.False(t, strings.ContainsAny(b, " \n"))
}

func TestUnmarshalAnyOrder(t *testing.T) {
	s := testSigner(t)
	ev, err := Build(kind.TextNote, timestamp.FromUnix(1700000000),
		tags.New(tag.New("title", "quote \" and newline \n")), by("héllo\nworld"), s)
	require.NoError(t, err)
	reordered := `{"sig":"` + ev.SigString() + `","id":"` + ev.IDString() +
		`","pubkey":"` + ev.PubkeyString() + `","content":"héllo\nworld",` +
		`"tags":[["title","quote \" and newline \n"]],"created_at":1700000000,"kind":1}`
	got := New()
	require.NoError(t, got.Unmarshal(by(reordered)))
	require.Equal(t, ev.Marshal(nil), got.Marshal(nil))
	valid, err := got.Verify()
	require.NoError(t, err)
	require.True(t, valid)
	require.True(t, bytes.Equal(ev.GetIDBytes(), got.GetIDBytes()))
}

func TestEncodingJSON(t *testing.T) {
	s := testSigner(t)
	ev, err := Build(kind.TextNote, nil, nil, by("<tag> & stuff"), s)
	require.NoError(t, err)
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var back T
	require.NoError(t, json.Unmarshal(b, &back))
	valid, err := back.Verify()
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, "<tag> & stuff", back.ContentString())
}

func TestUnmarshalFailures(t *testing.T) {
	s := testSigner(t)
	ev, err := Build(kind.TextNote, nil, nil, by("x"), s)
	require.NoError(t, err)
	good := st(ev.Marshal(nil))
	cases := []st{
		``,
		`[]`,
		`{"kind":"1"}`,
		strings.Replace(good, `"kind":1`, `"kind":70000`, 1),
		strings.Replace(good, `"kind":1`, `"kind":-1`, 1),
		strings.Replace(good, ev.IDString(), ev.IDString()[:62], 1),
		strings.Replace(good, ev.PubkeyString(), "zz"+ev.PubkeyString()[2:], 1),
		strings.Replace(good, ev.SigString(), ev.SigString()+"00", 1),
	}
	for i, c := range cases {
		if err = New().Unmarshal(by(c)); !errors.Is(err, errorf.ErrInvalidRecordField) {
			t.Fatalf("case %d: got %v", i, err)
		}
	}
}
