package bech32encoding

import (
	"bytes"
)

type (
	by = []byte
	st = string
	er = error
)

var equals = bytes.Equal
