// Package chk exposes the error checkers of the main logger. chk.E(err) logs
// a non-nil err at error level and reports whether there was one; chk.D is
// for failures that are expected, such as a wrong password.
package chk

import "nts.lol/lol"

var (
	F = lol.Main.Check.F
	E = lol.Main.Check.E
	W = lol.Main.Check.W
	I = lol.Main.Check.I
	D = lol.Main.Check.D
	T = lol.Main.Check.T
)
