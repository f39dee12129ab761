// Package httpauth signs and checks the nostr HTTP authentication header: a
// kind 27235 event naming the URL, method and body hash of one request,
// carried base64 encoded in the Authorization header.
package httpauth

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/hex"
	"nts.lol/kind"
	"nts.lol/log"
	"nts.lol/sha256"
	"nts.lol/signer"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

const (
	HeaderKey    = "Authorization"
	HeaderPrefix = "Nostr"
	// DefaultWindow is how far the event time may be from the server clock.
	DefaultWindow = 60 * time.Second
)

var (
	uKey       = []byte("u")
	methodKey  = []byte("method")
	payloadKey = []byte("payload")
)

// MakeEvent builds the unsigned auth event for a request. A non-empty body
// adds a payload tag with its sha256.
func MakeEvent(u, method string, body []byte) (ev *event.T) {
	t := tags.New(tag.New("u", u), tag.New("method", strings.ToUpper(method)))
	if len(body) > 0 {
		h := sha256.Sum256(body)
		t.AppendTags(tag.New("payload", hex.Enc(h[:])))
	}
	return &event.T{Kind: kind.HTTPAuth, CreatedAt: timestamp.Now(), Tags: t}
}

// Header returns the Authorization header value for a request.
func Header(u, method string, body []byte, sign signer.I) (val string, err error) {
	ev := MakeEvent(u, method, body)
	if err = ev.Sign(sign); chk.E(err) {
		return
	}
	log.T.F("http auth event:\n%s", ev.Serialize())
	return HeaderPrefix + " " + base64.StdEncoding.EncodeToString(ev.Serialize()), nil
}

// AddAuth signs r, whose body is body, and sets its Authorization header.
func AddAuth(r *http.Request, body []byte, sign signer.I) (err error) {
	var val string
	if val, err = Header(r.URL.String(), r.Method, body, sign); err != nil {
		return
	}
	r.Header.Set(HeaderKey, val)
	return
}

// ValidateRequest checks the auth header of r against its URL, method and
// body and returns the public key that signed it. fullURL is the absolute
// URL the client addressed, which a server behind a proxy cannot always
// rebuild from r.
func ValidateRequest(r *http.Request, fullURL string, body []byte,
	window time.Duration) (pubkey []byte, err error) {
	val := r.Header.Get(HeaderKey)
	if val == "" {
		err = errorf.E("'%s' key missing from request header", HeaderKey)
		return
	}
	split := strings.Split(val, " ")
	if len(split) != 2 || split[0] != HeaderPrefix {
		err = errorf.E("invalid '%s' value: '%s'", HeaderKey, val)
		return
	}
	var evb []byte
	if evb, err = base64.StdEncoding.DecodeString(split[1]); chk.D(err) {
		return
	}
	ev := event.New()
	if err = ev.Unmarshal(evb); chk.D(err) {
		return
	}
	if !ev.Kind.Equal(kind.HTTPAuth) {
		err = errorf.E("invalid kind %d in http auth event, require %d",
			ev.Kind.ToU16(), kind.HTTPAuth.K)
		return
	}
	var valid bool
	if valid, err = ev.Verify(); err != nil {
		return
	}
	if !valid {
		err = errorf.E("invalid signature on http auth event")
		return
	}
	ts, tn := ev.CreatedAt.I64(), time.Now().Unix()
	if w := int64(window / time.Second); ts < tn-w || ts > tn+w {
		err = errorf.E("timestamp %d is more than %v from now %d", ts, window, tn)
		return
	}
	if t := ev.Tags.GetFirst(uKey); t == nil || string(t.Value()) != fullURL {
		err = errorf.E("request has URL %s but auth event does not", fullURL)
		return
	}
	if t := ev.Tags.GetFirst(methodKey); t == nil ||
		!strings.EqualFold(string(t.Value()), r.Method) {
		err = errorf.E("request has method %s but auth event does not", r.Method)
		return
	}
	if len(body) > 0 {
		h := sha256.Sum256(body)
		if t := ev.Tags.GetFirst(payloadKey); t == nil ||
			!bytes.Equal([]byte(hex.Enc(h[:])), t.Value()) {
			err = errorf.E("request body does not match auth event payload hash")
			return
		}
	}
	pubkey = ev.Pubkey
	return
}
