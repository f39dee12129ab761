// Package bech32encoding implements the NIP-19 human readable, checksummed
// encodings for keys (nsec, npub) and the NIP-49 password encrypted secret key
// (ncryptsec), on the bech32 codec from github.com/btcsuite/btcd/btcutil.
//
// Every decoding failure, whether a bad checksum, mixed case, a wrong prefix or
// a wrong payload length, is reported as errorf.ErrInvalidEncoding. Nothing is
// ever silently truncated.
package bech32encoding
