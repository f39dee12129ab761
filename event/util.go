package event

type (
	by = []byte
	st = string
	er = error
	no = int
)
