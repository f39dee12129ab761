// Package env is an implementation of the env.Source interface from
// go-simpler.org, reading KEY=value files so a .env file can stand in for the
// process environment.
package env

import (
	"os"
	"strings"

	"nts.lol/chk"
)

// Source is the lookup go-simpler.org/env uses to read variables.
type Source interface {
	LookupEnv(key string) (value string, ok bool)
}

// Env is a key/value map used to represent environment variables.
type Env map[string]string

// GetEnv reads a file of KEY=value lines in shell environment format. Blank
// lines, comments and lines with no = are skipped, an export prefix is
// allowed and one layer of matching quotes around a value is removed.
func GetEnv(path string) (env Env, err error) {
	var s []byte
	env = make(Env)
	if s, err = os.ReadFile(path); chk.T(err) {
		return
	}
	for _, line := range strings.Split(string(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
			v = v[1 : len(v)-1]
		}
		env[strings.TrimSpace(k)] = v
	}
	return
}

// LookupEnv returns the raw string value associated with a provided key name.
func (env Env) LookupEnv(key string) (value string, ok bool) {
	value, ok = env[key]
	return
}

// OS is the process environment as a Source.
type OS struct{}

func (OS) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// Chain looks a key up in each Source in turn and returns the first hit.
type Chain []Source

func (c Chain) LookupEnv(key string) (value string, ok bool) {
	for _, s := range c {
		if value, ok = s.LookupEnv(key); ok {
			return
		}
	}
	return
}
