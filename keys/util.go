package keys

type (
	by = []byte
	st = string
	er = error
)
