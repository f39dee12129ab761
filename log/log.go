// Package log exposes the level printers of the main logger under one letter
// names, so call sites read log.D.F(...).
package log

import "nts.lol/lol"

var (
	F = lol.Main.Log.F
	E = lol.Main.Log.E
	W = lol.Main.Log.W
	I = lol.Main.Log.I
	D = lol.Main.Log.D
	T = lol.Main.Log.T
)
