// Package hex is a set of aliases and helpers for hex encoding, with the
// append variants running on the SIMD codec from github.com/templexxx/xhex.
package hex

import (
	"encoding/hex"

	"github.com/templexxx/xhex"

	"nts.lol/chk"
	"nts.lol/errorf"
)

var Enc = hex.EncodeToString
var EncBytes = hex.Encode
var Dec = hex.DecodeString
var DecBytes = hex.Decode

var DecLen = hex.DecodedLen

type InvalidByteError = hex.InvalidByteError

// EncAppend appends the lower case hex encoding of src to dst.
func EncAppend(dst, src []byte) (b []byte) {
	l := len(dst)
	dst = append(dst, make([]byte, len(src)*2)...)
	xhex.Encode(dst[l:], src)
	return dst
}

// DecAppend appends the decoding of the hex in src to dst.
func DecAppend(dst, src []byte) (b []byte, err error) {
	if len(src)%2 != 0 {
		err = errorf.D("odd length hex string: %d", len(src))
		return
	}
	l := len(dst)
	b = dst
	b = append(b, make([]byte, len(src)/2)...)
	if err = xhex.Decode(b[l:], src); chk.D(err) {
		return
	}
	return
}
