// Package errorf is a convenience shortcut to use shorter names to access the lol.Logger.
//
// It also holds the sentinel errors shared by the key, encryption and note packages.
// Call sites wrap these with context (github.com/pkg/errors) and callers test for
// them with errors.Is.
package errorf

import (
	"errors"

	"nts.lol/lol"
)

var F, E, W, I, D, T lol.Err

func init() {
	F, E, W, I, D, T = lol.Main.Errorf.F, lol.Main.Errorf.E, lol.Main.Errorf.W, lol.Main.Errorf.I, lol.Main.Errorf.D, lol.Main.Errorf.T
}

var (
	// ErrInvalidEncoding is a malformed or checksum-failed text credential or payload.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrInvalidKeyMaterial is an out of range secret key, a public key that is not on
	// the curve, or a degenerate shared point.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
	// ErrAuthenticationFailed is a MAC or AEAD tag mismatch. A wrong key, a wrong
	// password and a tampered byte all produce this same error.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUnsupportedVersion is an unknown version byte on a versioned frame.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrMalformedPayload is a frame that is structurally wrong, found before any
	// cryptographic work is done.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidRecordField is a record field that cannot be serialized canonically.
	ErrInvalidRecordField = errors.New("invalid record field")
	// ErrInvalidInnerRecord is decrypted note content that does not parse or whose
	// signature does not verify.
	ErrInvalidInnerRecord = errors.New("invalid inner record")
	// ErrDecryptionFailed is a note that could not be decrypted for a reason not
	// covered by the other errors.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrNoCredential means no identity is loaded or stored.
	ErrNoCredential = errors.New("no credential")
)
