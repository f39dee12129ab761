package credential

type (
	st = string
	er = error
	bo = bool
)
