// Package text is a collection of helpers for building JSON text by appending
// to byte slices.
package text

type AppendBytesClosure func(dst, src []byte) []byte

func Noop(dst, src []byte) []byte { return append(dst, src...) }

// AppendQuote wraps whatever the closure appends in double quotes.
func AppendQuote(dst, src []byte, ac AppendBytesClosure) []byte {
	dst = append(dst, '"')
	dst = ac(dst, src)
	dst = append(dst, '"')
	return dst
}

// JSONKey generates the JSON format for an object key and terminates with the colon.
func JSONKey(dst, k []byte) (b []byte) {
	dst = append(dst, '"')
	dst = append(dst, k...)
	dst = append(dst, '"', ':')
	b = dst
	return
}
