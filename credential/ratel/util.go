package ratel

type (
	by = []byte
	st = string
	er = error
	bo = bool
)
