// Package tests provides a tool to generate arbitrary random signed records for
// fuzz testing the encoder.
package tests

import (
	"strings"

	"lukechampine.com/frand"

	"nts.lol/chk"
	"nts.lol/event"
	"nts.lol/kind"
	"nts.lol/p256k"
	"nts.lol/tag"
	"nts.lol/tags"
	"nts.lol/timestamp"
)

var kinds = []*kind.T{kind.TextNote, kind.NoteToSelf, kind.DraftWrap}

// alphabet mixes characters that need escaping with multi byte ones.
var alphabet = []rune("abcxyz 019_\"\\\n\r\t\b\f\x00\x1f\x7féß€日本🙂")

// RandomText returns up to n random characters from a set that exercises
// escaping.
func RandomText(n int) string {
	var b strings.Builder
	for range frand.Intn(n + 1) {
		b.WriteRune(alphabet[frand.Intn(len(alphabet))])
	}
	return b.String()
}

// GenerateEvent creates a record of random kind, tags and content of up to
// maxSize characters, signed by a fresh key.
func GenerateEvent(maxSize int) (ev *event.T, err error) {
	signer := new(p256k.Signer)
	if err = signer.Generate(); chk.E(err) {
		return
	}
	tgs := tags.New()
	for range frand.Intn(4) {
		tgs.AppendTags(tag.New(RandomText(8), RandomText(32)))
	}
	if ev, err = event.Build(kinds[frand.Intn(len(kinds))],
		timestamp.FromUnix(int64(frand.Intn(1<<31))), tgs, []byte(RandomText(maxSize)),
		signer); chk.E(err) {
		return
	}
	return
}
