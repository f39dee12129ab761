package event

import (
	"bytes"

	"github.com/pkg/errors"

	"nts.lol/chk"
	"nts.lol/errorf"
	"nts.lol/p256k"
	"nts.lol/signer"
)

// Sign sets Pubkey, ID and Sig using the signer. The caller sets everything
// else first.
func (ev *T) Sign(keys signer.I) (err er) {
	ev.Pubkey = keys.Pub()
	ev.ID = ev.GetIDBytes()
	if ev.Sig, err = keys.Sign(ev.ID); chk.E(err) {
		return
	}
	return
}

// Verify recomputes the ID from the fields and checks the signature on it
// against Pubkey. An ID that does not match the content is an error, even if
// the signature on it is valid.
func (ev *T) Verify() (valid bool, err er) {
	id := ev.GetIDBytes()
	if !bytes.Equal(id, ev.ID) {
		err = errors.Wrapf(errorf.ErrInvalidRecordField, "id %0x does not match content %0x",
			ev.ID, id)
		return
	}
	keys := p256k.Signer{}
	if err = keys.InitPub(ev.Pubkey); err != nil {
		return
	}
	if valid, err = keys.Verify(ev.ID, ev.Sig); chk.D(err) {
		return
	}
	return
}
