// Package keychain keeps the credential in the operating system's secret
// store (macOS Keychain, Secret Service, KWallet, Windows Credential Manager)
// through github.com/99designs/keyring.
package keychain

import (
	"errors"

	"github.com/99designs/keyring"

	"nts.lol/chk"
	"nts.lol/credential"
	"nts.lol/errorf"
)

// ItemKey is the key of the keyring item holding the credential.
const ItemKey = "nsec"

// T is a credential.I backed by a keyring.Keyring.
type T struct {
	ring keyring.Keyring
}

var _ credential.I = (*T)(nil)

// Open opens the platform keyring under service name appName. fileDir is used
// by the encrypted file backend on systems with no native keyring.
func Open(appName, fileDir string) (k *T, err error) {
	var ring keyring.Keyring
	if ring, err = keyring.Open(keyring.Config{
		ServiceName:              appName,
		KeychainTrustApplication: true,
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}); chk.E(err) {
		err = errorf.E("failed to open keyring: %w", err)
		return
	}
	return New(ring), nil
}

// New wraps an already open keyring.
func New(ring keyring.Keyring) *T { return &T{ring: ring} }

func (k *T) Get() (nsec string, ok bool, err error) {
	var item keyring.Item
	if item, err = k.ring.Get(ItemKey); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			err = nil
			return
		}
		chk.E(err)
		return
	}
	nsec = string(item.Data)
	ok = nsec != ""
	return
}

func (k *T) Set(nsec string) (err error) {
	return k.ring.Set(keyring.Item{
		Key:         ItemKey,
		Data:        []byte(nsec),
		Label:       "nostr secret key",
		Description: "encoded secret key of the local identity",
	})
}

func (k *T) Remove() (err error) {
	if err = k.ring.Remove(ItemKey); errors.Is(err, keyring.ErrKeyNotFound) {
		err = nil
	}
	return
}
