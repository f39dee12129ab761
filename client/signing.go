package client

import (
	"context"

	"nts.lol/event"
	"nts.lol/keys"
	"nts.lol/p256k"
	"nts.lol/transport"
)

// signing submits with an http auth header made by the holder's current
// identity.
type signing struct {
	holder *keys.Holder
	url    string
	opts   []transport.Option
}

func (s signing) Submit(c context.Context, ev *event.T) (err error) {
	var id *keys.Identity
	if id, err = s.holder.Current(); err != nil {
		return
	}
	var sign *p256k.Signer
	if sign, err = id.Signer(); err != nil {
		return
	}
	defer sign.Zero()
	opts := append(s.opts[:len(s.opts):len(s.opts)], transport.WithAuth(sign))
	return transport.NewHTTP(s.url, opts...).Submit(c, ev)
}
