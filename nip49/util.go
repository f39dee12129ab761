package nip49

type (
	by = []byte
	st = string
	er = error
)
