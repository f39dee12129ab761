package note

import (
	pkgerrors "github.com/pkg/errors"

	"nts.lol/chk"
	"nts.lol/encryption"
	"nts.lol/errorf"
	"nts.lol/event"
	"nts.lol/keys"
	"nts.lol/kind"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

// CreateLegacy builds a flat note to self: a single kind 1990 record whose
// content and title tag are each encrypted to the author's own key.
func CreateLegacy(content, title st, id *keys.Identity, createdAt *timestamp.T) (ev *event.T,
	err er) {
	if err = checkContent(content); err != nil {
		return
	}
	if title == "" {
		title = TitleFromContent(content, DefaultTitleLength)
	}
	var ck by
	if ck, err = encryption.SelfKey(id.Sec[:]); chk.E(err) {
		return
	}
	var encContent, encTitle st
	if encContent, err = encryption.EncryptString(content, ck); err != nil {
		return
	}
	if encTitle, err = encryption.EncryptString(title, ck); err != nil {
		return
	}
	sign, err := id.Signer()
	if err != nil {
		return
	}
	defer sign.Zero()
	return event.Build(kind.NoteToSelf, createdAt,
		tags.New(tag.New(TitleKey, by(encTitle))), by(encContent), sign)
}

// OpenLegacy decrypts a record made by CreateLegacy.
func OpenLegacy(ev *event.T, id *keys.Identity) (n *Note, err er) {
	if !ev.Kind.Equal(kind.NoteToSelf) {
		err = pkgerrors.Wrapf(errorf.ErrInvalidRecordField, "record kind %d is not a note to self",
			ev.Kind.ToU16())
		return
	}
	var content, title by
	if content, err = decrypt(ev.Content, id); err != nil {
		return
	}
	if t := ev.Tags.GetFirst(TitleKey); t != nil {
		if title, err = decrypt(t.Value(), id); err != nil {
			return
		}
	}
	if err = checkSigned(ev, id, errorf.ErrInvalidRecordField); err != nil {
		return
	}
	n = &Note{
		Content:   st(content),
		Title:     st(title),
		ID:        ev.ID,
		CreatedAt: ev.CreatedAt,
	}
	return
}
