// Package sharelink carries a password wrapped secret key in a URL, as one
// unpadded base64url query parameter value.
package sharelink

import (
	"encoding/base64"
	"errors"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"nts.lol/errorf"
	"nts.lol/nip49"
)

// Param is the query parameter the link value travels in.
const Param = "key"

var encoding = base64.RawURLEncoding.Strict()

// Encode wraps sk under password with work factor logN and returns the URL
// safe text form.
func Encode(sk []byte, password string, logN byte) (link string, err error) {
	var blob []byte
	if blob, err = nip49.Wrap(sk, password, logN, nip49.NotKnownInsecure); err != nil {
		return
	}
	return EncodeBlob(blob), nil
}

// EncodeBlob renders an already wrapped key.
func EncodeBlob(blob []byte) string { return encoding.EncodeToString(blob) }

// DecodeBlob parses the text form without unwrapping it. Anything that is not
// a well formed blob is errorf.ErrInvalidEncoding.
func DecodeBlob(link string) (blob []byte, err error) {
	if blob, err = encoding.DecodeString(link); err != nil {
		err = pkgerrors.Wrapf(errorf.ErrInvalidEncoding, "share link: %v", err)
		return
	}
	if len(blob) != nip49.BlobLen {
		err = pkgerrors.Wrapf(errorf.ErrInvalidEncoding, "share link carries %d bytes, expected %d",
			len(blob), nip49.BlobLen)
		blob = nil
	}
	return
}

// Decode recovers the secret key from a link. Problems with the text or the
// structure of the blob are errorf.ErrInvalidEncoding and asking for another
// password will not help; a wrong password is errorf.ErrAuthenticationFailed.
func Decode(link, password string) (sk []byte, err error) {
	var blob []byte
	if blob, err = DecodeBlob(link); err != nil {
		return
	}
	return Unwrap(blob, password)
}

// Unwrap is nip49.Unwrap with structural failures reported as
// errorf.ErrInvalidEncoding.
func Unwrap(blob []byte, password string) (sk []byte, err error) {
	sk, err = nip49.Unwrap(blob, password)
	return sk, Classify(err)
}

// Classify maps an unwrap error to what a share link reader reports:
// structural problems become errorf.ErrInvalidEncoding, the rest pass
// through.
func Classify(err error) error {
	if errors.Is(err, errorf.ErrMalformedPayload) {
		return pkgerrors.Wrapf(errorf.ErrInvalidEncoding, "share link: %v", err)
	}
	return err
}

// Attach returns a copy of base with the link set as the key parameter.
func Attach(base *url.URL, link string) *url.URL {
	u := *base
	q := u.Query()
	q.Set(Param, link)
	u.RawQuery = q.Encode()
	return &u
}

// Extract returns the link carried by u and a copy of u without it, so the
// caller can take the secret out of the visible address. ok is false when u
// has no link.
func Extract(u *url.URL) (link string, clean *url.URL, ok bool) {
	c := *u
	clean = &c
	q := c.Query()
	if link = q.Get(Param); link == "" {
		return
	}
	ok = true
	q.Del(Param)
	c.RawQuery = q.Encode()
	return
}
