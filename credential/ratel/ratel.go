// Package ratel keeps the credential in a badger key value store, for hosts
// that already run one for other data or want an embedded database rather
// than a loose file.
package ratel

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"nts.lol/chk"
	"nts.lol/credential"
	"nts.lol/log"
	"nts.lol/lol"
)

// Key is the badger key the credential is stored under.
var Key = by("credential/nsec")

// T is a credential.I backed by a badger database.
type T struct {
	dataDir st
	Logger  *logger
	*badger.DB
}

var _ credential.I = (*T)(nil)

// New opens or creates the database in dataDir. An empty dataDir opens an in
// memory database.
func New(dataDir st, logLevel int) (r *T, err er) {
	r = &T{dataDir: dataDir}
	log.I.Ln("opening credential store at", r.Path())
	opts := badger.DefaultOptions(dataDir)
	if dataDir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Compression = options.None
	opts.CompactL0OnClose = true
	r.Logger = NewLogger(logLevel, r.Path())
	opts.Logger = r.Logger
	if r.DB, err = badger.Open(opts); chk.E(err) {
		r = nil
		return
	}
	return
}

// Path returns the directory of the database.
func (r *T) Path() st {
	if r.dataDir == "" {
		return "memory"
	}
	return r.dataDir
}

// SetLogLevel adjusts the level of badger's own log output.
func (r *T) SetLogLevel(level st) { r.Logger.SetLogLevel(lol.GetLogLevel(level)) }

func (r *T) Get() (nsec st, ok bo, err er) {
	err = r.View(func(txn *badger.Txn) (err er) {
		var item *badger.Item
		if item, err = txn.Get(Key); err != nil {
			return
		}
		return item.Value(func(val by) (err er) {
			nsec = st(val)
			return
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		err = nil
		return
	}
	if chk.E(err) {
		return
	}
	ok = nsec != ""
	return
}

func (r *T) Set(nsec st) (err er) {
	return r.Update(func(txn *badger.Txn) er { return txn.Set(Key, by(nsec)) })
}

func (r *T) Remove() (err er) {
	return r.Update(func(txn *badger.Txn) er { return txn.Delete(Key) })
}

// Close flushes and closes the database.
func (r *T) Close() (err er) {
	log.D.Ln("closing credential store at", r.Path())
	if err = r.DB.Close(); chk.E(err) {
		return
	}
	return
}
