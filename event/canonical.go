package event

import (
	"nts.lol/hex"
	"nts.lol/text"
)

// ToCanonical appends the canonical encoding used to derive the ID:
//
//	[0,"<pubkey hex>",<created_at>,<kind>,<tags>,"<content>"]
//
// with no whitespace and the minimal JSON string escaping.
func (ev *T) ToCanonical(dst by) (b by) {
	b = dst
	b = append(b, "[0,\""...)
	b = hex.EncAppend(b, ev.Pubkey)
	b = append(b, "\","...)
	b = ev.CreatedAt.Marshal(b)
	b = append(b, ',')
	b = ev.Kind.Marshal(b)
	b = append(b, ',')
	b = ev.Tags.Marshal(b)
	b = append(b, ',')
	b = text.AppendQuote(b, ev.Content, text.NostrEscape)
	b = append(b, ']')
	return
}

// GetIDBytes returns the sha256 hash of the canonical form.
func (ev *T) GetIDBytes() by { return Hash(ev.ToCanonical(nil)) }
