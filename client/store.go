package client

import (
	"path/filepath"

	"golang.org/x/time/rate"

	"nts.lol/config"
	"nts.lol/credential"
	"nts.lol/credential/keychain"
	"nts.lol/credential/ratel"
	"nts.lol/errorf"
	"nts.lol/keys"
	"nts.lol/lol"
	"nts.lol/nip49"
	"nts.lol/transport"
)

// OpenStore opens the credential store named in cfg. closer releases it and
// is never nil.
func OpenStore(cfg *config.C) (store credential.I, closer func() error, err error) {
	closer = func() error { return nil }
	switch cfg.CredentialStore {
	case config.StoreFile:
		store = credential.NewFile(cfg.AppName, cfg.DataDir)
	case config.StoreBadger:
		var r *ratel.T
		if r, err = ratel.New(filepath.Join(cfg.DataDir, "db"), lol.GetLogLevel(cfg.LogLevel)); err != nil {
			return
		}
		store, closer = r, r.Close
	case config.StoreKeyring:
		if store, err = keychain.Open(cfg.AppName, cfg.DataDir); err != nil {
			return
		}
	case config.StoreMemory:
		store = credential.NewMemory()
	default:
		err = errorf.E("unknown credential store '%s'", cfg.CredentialStore)
	}
	return
}

// NewFromConfig builds a Session from cfg. When requests are signed the
// identity is resolved at submit time, so a key imported later is used.
func NewFromConfig(cfg *config.C) (s *Session, closer func() error, err error) {
	var store credential.I
	if store, closer, err = OpenStore(cfg); err != nil {
		return
	}
	h := keys.NewHolder(store)
	opts := []transport.Option{transport.WithTimeout(cfg.HTTPTimeout)}
	if cfg.SubmitRate > 0 {
		opts = append(opts, transport.WithLimiter(rate.NewLimiter(rate.Limit(cfg.SubmitRate),
			max(cfg.SubmitBurst, 1))))
	}
	var t transport.Submitter = transport.NewHTTP(cfg.SaveURL, opts...)
	if cfg.SignRequests {
		t = signing{holder: h, url: cfg.SaveURL, opts: opts}
	}
	s = New(h, t, nip49.NewPool(int64(cfg.KDFWorkers)), byte(cfg.ScryptLogN))
	s.MaxImportLogN = byte(cfg.ImportMaxLogN)
	return
}
