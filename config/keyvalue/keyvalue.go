// Package keyvalue turns a go-simpler/env tagged config struct into a sorted
// list of key/values, and prints them as a shell script that sets the same
// configuration.
package keyvalue

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// EnvKV lists the `env` tagged fields of cfg, which must be a struct value
// rather than a pointer. Untagged fields are skipped.
func EnvKV(cfg any) (m KVSlice) {
	t := reflect.TypeOf(cfg)
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		if k == "" {
			continue
		}
		var val string
		switch v := reflect.ValueOf(cfg).Field(i).Interface().(type) {
		case string:
			val = v
		case int, int64, int32, uint64, uint32, uint8, float64, bool, time.Duration:
			val = fmt.Sprint(v)
		case []string:
			val = strings.Join(v, ",")
		}
		m = append(m, KV{k, val})
	}
	return
}

// Quote makes s safe as a single shell word.
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>(){}*?#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// PrintEnv renders the key/values of cfg to printer as export statements.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, Quote(v.Value))
	}
}
