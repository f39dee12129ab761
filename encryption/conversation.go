package encryption

import (
	"golang.org/x/crypto/hkdf"

	"nts.lol/p256k"
	"nts.lol/sha256"
)

// Salt is the HKDF salt for deriving conversation keys.
var Salt = by("nip44-v2")

// ConversationKey derives the symmetric key shared by the holder of sk and the
// holder of the secret behind the x-only public key pk. It is symmetric:
// ConversationKey(a, B) equals ConversationKey(b, A).
func ConversationKey(sk, pk by) (ck by, err er) {
	var shared by
	if shared, err = p256k.ECDH(sk, pk); err != nil {
		return
	}
	ck = hkdf.Extract(sha256.New, shared, Salt)
	clear(shared)
	return
}

// SelfKey is the conversation key of an identity with itself.
func SelfKey(sk by) (ck by, err er) {
	var pk by
	if pk, err = p256k.PubFromSecret(sk); err != nil {
		return
	}
	return ConversationKey(sk, pk)
}
