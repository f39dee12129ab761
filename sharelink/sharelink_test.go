package sharelink

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nts.lol/errorf"
	"nts.lol/p256k"
)

const logN = 4

func TestRoundTrip(t *testing.T) {
	for range 10 {
		sk := p256k.GenerateSecret()
		link, err := Encode(sk, "hunter2", logN)
		require.NoError(t, err)
		require.False(t, strings.ContainsAny(link, "+/=%"))
		require.Equal(t, link, url.QueryEscape(link))
		got, err := Decode(link, "hunter2")
		require.NoError(t, err)
		require.Equal(t, sk, got)
	}
}

func TestWrongPassword(t *testing.T) {
	link, err := Encode(p256k.GenerateSecret(), "hunter2", logN)
	require.NoError(t, err)
	_, err = Decode(link, "hunter3")
	require.ErrorIs(t, err, errorf.ErrAuthenticationFailed)
}

func TestInvalidEncoding(t *testing.T) {
	link, err := Encode(p256k.GenerateSecret(), "pw", logN)
	require.NoError(t, err)
	cases := []string{
		"",
		"not a link",
		link[:len(link)-4],
		link + "AAAA",
		link + "==",
	}
	for i, c := range cases {
		if _, err = Decode(c, "pw"); !errors.Is(err, errorf.ErrInvalidEncoding) {
			t.Fatalf("case %d: got %v", i, err)
		}
	}
	blob, err := DecodeBlob(link)
	require.NoError(t, err)
	blob[1] = 0
	_, err = Decode(EncodeBlob(blob), "pw")
	require.ErrorIs(t, err, errorf.ErrInvalidEncoding)
	blob[0] = 9
	_, err = Decode(EncodeBlob(blob), "pw")
	require.ErrorIs(t, err, errorf.ErrUnsupportedVersion)
}

func TestAttachExtract(t *testing.T) {
	link, err := Encode(p256k.GenerateSecret(), "pw", logN)
	require.NoError(t, err)
	base, err := url.Parse("https://notes.example/app?theme=dark#top")
	require.NoError(t, err)
	shared := Attach(base, link)
	require.Equal(t, "", base.Query().Get(Param))
	got, clean, ok := Extract(shared)
	require.True(t, ok)
	require.Equal(t, link, got)
	require.Equal(t, "", clean.Query().Get(Param))
	require.Equal(t, "dark", clean.Query().Get("theme"))
	require.Equal(t, "top", clean.Fragment)
	require.Equal(t, link, shared.Query().Get(Param))

	_, same, ok := Extract(base)
	require.False(t, ok)
	require.Equal(t, base.String(), same.String())
}
