// Package config reads the settings of nts from the environment, optionally
// layered over a .env file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"go-simpler.org/env"

	"nts.lol/chk"
	"nts.lol/config/keyvalue"
	envfile "nts.lol/env"
	"nts.lol/errorf"
	"nts.lol/lol"
)

const (
	StoreFile    = "file"
	StoreBadger  = "badger"
	StoreKeyring = "keyring"
	StoreMemory  = "memory"
)

var Stores = []string{StoreFile, StoreBadger, StoreKeyring, StoreMemory}

// C is the configuration of the nts client.
type C struct {
	AppName         string        `env:"NTS_APP_NAME" default:"nts" usage:"application name, used for the data directory and keyring service"`
	LogLevel        string        `env:"NTS_LOG_LEVEL" default:"info" usage:"log level: off fatal error warn info debug trace"`
	DataDir         string        `env:"NTS_DATA_DIR" usage:"data directory (default: XDG data home/<app name>)"`
	CredentialStore string        `env:"NTS_CREDENTIAL_STORE" default:"file" usage:"where the secret key is kept: file badger keyring memory"`
	SaveURL         string        `env:"NTS_SAVE_URL" default:"http://localhost:8081/save-note" usage:"endpoint notes are posted to"`
	SignRequests    bool          `env:"NTS_SIGN_REQUESTS" default:"false" usage:"add an http auth header to note submissions"`
	ScryptLogN      int           `env:"NTS_SCRYPT_LOG_N" default:"16" usage:"scrypt work factor of share links, 1 to 22"`
	ImportMaxLogN   int           `env:"NTS_IMPORT_MAX_LOG_N" default:"20" usage:"highest scrypt work factor an imported link may use, 1 to 22"`
	KDFWorkers      int           `env:"NTS_KDF_WORKERS" default:"1" usage:"concurrent scrypt derivations"`
	HTTPTimeout     time.Duration `env:"NTS_HTTP_TIMEOUT" default:"30s" usage:"timeout of a note submission"`
	SubmitRate      float64       `env:"NTS_SUBMIT_RATE" default:"0" usage:"note submissions allowed per second, 0 for no limit"`
	SubmitBurst     int           `env:"NTS_SUBMIT_BURST" default:"1" usage:"submissions allowed at once before the rate applies"`
}

// New loads the configuration from the process environment. When envFile is
// not empty and exists, its values fill in anything the environment does not
// set.
func New(envFile string) (c *C, err error) {
	var src envfile.Source = envfile.OS{}
	if envFile != "" {
		var e envfile.Env
		if e, err = envfile.GetEnv(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return
			}
			err = nil
		} else {
			src = envfile.Chain{envfile.OS{}, e}
		}
	}
	c = &C{}
	if err = env.Load(c, &env.Options{Source: src, SliceSep: ","}); chk.E(err) {
		c = nil
		return
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(xdg.DataHome, c.AppName)
	}
	if err = c.Validate(); err != nil {
		c = nil
		return
	}
	lol.SetLogLevel(c.LogLevel)
	return
}

// Validate checks values the type system cannot.
func (c *C) Validate() (err error) {
	if !slices.Contains(Stores, c.CredentialStore) {
		return errorf.E("NTS_CREDENTIAL_STORE must be one of %v, got '%s'", Stores,
			c.CredentialStore)
	}
	if c.ScryptLogN < 1 || c.ScryptLogN > 22 {
		return errorf.E("NTS_SCRYPT_LOG_N must be 1 to 22, got %d", c.ScryptLogN)
	}
	if c.ImportMaxLogN < 1 || c.ImportMaxLogN > 22 {
		return errorf.E("NTS_IMPORT_MAX_LOG_N must be 1 to 22, got %d", c.ImportMaxLogN)
	}
	if c.KDFWorkers < 1 {
		return errorf.E("NTS_KDF_WORKERS must be at least 1, got %d", c.KDFWorkers)
	}
	if c.HTTPTimeout <= 0 {
		return errorf.E("NTS_HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}
	if c.SubmitRate < 0 {
		return errorf.E("NTS_SUBMIT_RATE must not be negative, got %v", c.SubmitRate)
	}
	return
}

// Usage prints the variables, their defaults and descriptions.
func Usage(w io.Writer) { env.Usage(&C{}, w, nil) }

// PrintEnv renders the configuration as a shell script that sets it.
func (c *C) PrintEnv(w io.Writer) { keyvalue.PrintEnv(*c, w) }
