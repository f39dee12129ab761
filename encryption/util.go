package encryption

import "bytes"

type (
	by = []byte
	st = string
	er = error
	no = int
)

var equals = bytes.Equal
