// Package transport hands finished records to the service that stores them.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/time/rate"

	"nts.lol/chk"
	"nts.lol/event"
	"nts.lol/httpauth"
	"nts.lol/log"
	"nts.lol/signer"
)

// ErrRejected is a submission the service answered with a non-2xx status.
var ErrRejected = errors.New("record rejected")

// Submitter delivers a record. A nil error means the service accepted it.
type Submitter interface {
	Submit(c context.Context, ev *event.T) (err error)
}

// HTTP posts the JSON form of each record to a fixed URL.
type HTTP struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	signer  signer.I
}

var _ Submitter = (*HTTP)(nil)

// Option configures an HTTP submitter.
type Option func(*HTTP)

// WithTimeout sets the timeout of the default client.
func WithTimeout(d time.Duration) Option { return func(h *HTTP) { h.client.Timeout = d } }

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option { return func(h *HTTP) { h.client = c } }

// WithRateLimit allows at most perSecond submissions per second with the given
// burst. Submit waits for a token or for its context to end.
func WithRateLimit(perSecond float64, burst int) Option {
	return WithLimiter(rate.NewLimiter(rate.Limit(perSecond), burst))
}

// WithLimiter shares an existing limiter, so several submitters draw from one
// budget.
func WithLimiter(l *rate.Limiter) Option { return func(h *HTTP) { h.limiter = l } }

// WithAuth signs every request with an http auth header from sign.
func WithAuth(sign signer.I) Option { return func(h *HTTP) { h.signer = sign } }

// NewHTTP returns a submitter posting to url.
func NewHTTP(url string, opts ...Option) (h *HTTP) {
	h = &HTTP{url: url, client: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(h)
	}
	return
}

// Submit posts ev once. There is no retry: a failure is returned to the caller,
// which still holds the note it was saving.
func (h *HTTP) Submit(c context.Context, ev *event.T) (err error) {
	if h.limiter != nil {
		if err = h.limiter.Wait(c); err != nil {
			return
		}
	}
	body := ev.Serialize()
	var req *http.Request
	if req, err = http.NewRequestWithContext(c, http.MethodPost, h.url,
		bytes.NewReader(body)); chk.E(err) {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if h.signer != nil {
		if err = httpauth.AddAuth(req, body, h.signer); chk.E(err) {
			return
		}
	}
	var res *http.Response
	if res, err = h.client.Do(req); chk.E(err) {
		return
	}
	defer res.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		err = pkgerrors.Wrapf(ErrRejected, "status %d: %s", res.StatusCode,
			bytes.TrimSpace(msg))
		log.W.Ln(err)
		return
	}
	log.D.F("submitted %s to %s", ev.IDString(), h.url)
	return
}

// Func adapts a function to a Submitter.
type Func func(c context.Context, ev *event.T) error

func (f Func) Submit(c context.Context, ev *event.T) error { return f(c, ev) }
