// Package p256k is the signer.I implementation for BIP-340 nostr X-only
// signatures and public keys, and ECDH, on github.com/btcsuite/btcd/btcec/v2
// and the decred secp256k1 field and scalar arithmetic underneath it.
package p256k
