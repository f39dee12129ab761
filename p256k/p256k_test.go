package p256k

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"lukechampine.com/frand"

	"nts.lol/errorf"
	"nts.lol/sha256"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSignerSignVerify(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := &Signer{}
		if err := s.Generate(); err != nil {
			t.Fatal(err)
		}
		msg := sha256.Sum256(frand.Bytes(64))
		sig, err := s.Sign(msg[:])
		if err != nil {
			t.Fatal(err)
		}
		if len(sig) != SignatureLen {
			t.Fatalf("signature is %d bytes", len(sig))
		}
		v := &Signer{}
		if err = v.InitPub(s.Pub()); err != nil {
			t.Fatal(err)
		}
		var valid bool
		if valid, err = v.Verify(msg[:], sig); err != nil || !valid {
			t.Fatalf("valid signature rejected: %v", err)
		}
		if !Verify(msg[:], sig, s.Pub()) {
			t.Fatal("package verify rejected a valid signature")
		}
	}
}

func TestVerifyRejectsSingleBitFlips(t *testing.T) {
	s := &Signer{}
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}
	msg := sha256.Sum256([]byte("message"))
	sig, err := s.Sign(msg[:])
	if err != nil {
		t.Fatal(err)
	}
	flip := func(b []byte, bit int) []byte {
		c := append([]byte(nil), b...)
		c[bit/8] ^= 1 << (bit % 8)
		return c
	}
	for bit := 0; bit < 256; bit += 7 {
		if Verify(flip(msg[:], bit), sig, s.Pub()) {
			t.Fatalf("accepted flipped message bit %d", bit)
		}
		if Verify(msg[:], sig, flip(s.Pub(), bit)) {
			t.Fatalf("accepted flipped pubkey bit %d", bit)
		}
	}
	for bit := 0; bit < 512; bit += 7 {
		if Verify(msg[:], flip(sig, bit), s.Pub()) {
			t.Fatalf("accepted flipped signature bit %d", bit)
		}
	}
}

func TestCheckSecret(t *testing.T) {
	order := mustHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	orderMinus1 := mustHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140")
	for _, bad := range [][]byte{make([]byte, 32), order, bytes.Repeat([]byte{0xff}, 32), make([]byte, 31)} {
		if err := CheckSecret(bad); !errors.Is(err, errorf.ErrInvalidKeyMaterial) {
			t.Fatalf("expected invalid key material for %x, got %v", bad, err)
		}
	}
	if err := CheckSecret(orderMinus1); err != nil {
		t.Fatalf("n-1 is a valid secret: %v", err)
	}
}

func TestPubFromSecretVector(t *testing.T) {
	// BIP-340 test vector 0.
	sec := mustHex(t, "0000000000000000000000000000000000000000000000000000000000000003")
	pub, err := PubFromSecret(sec)
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(pub) != "f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9" {
		t.Fatalf("unexpected pubkey %x", pub)
	}
}

func TestECDHSymmetric(t *testing.T) {
	for i := 0; i < 50; i++ {
		a, b := GenerateSecret(), GenerateSecret()
		pa, _ := PubFromSecret(a)
		pb, _ := PubFromSecret(b)
		s1, err := ECDH(a, pb)
		if err != nil {
			t.Fatal(err)
		}
		s2, err := ECDH(b, pa)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(s1, s2) {
			t.Fatalf("shared secrets differ %x %x", s1, s2)
		}
	}
}

func TestECDHRejectsOffCurve(t *testing.T) {
	// BIP-340 test vector 5, public key not on the curve.
	off := mustHex(t, "eefdea4cdb677750a420fee807eacf21eb9898ae79b9768766e4faa04a2d4a34")
	if _, err := ECDH(GenerateSecret(), off); !errors.Is(err, errorf.ErrInvalidKeyMaterial) {
		t.Fatalf("expected invalid key material, got %v", err)
	}
	if _, err := ECDH(GenerateSecret(), make([]byte, 33)); !errors.Is(err, errorf.ErrInvalidKeyMaterial) {
		t.Fatalf("expected invalid key material for bad length, got %v", err)
	}
}

func TestZero(t *testing.T) {
	s := &Signer{}
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}
	s.Zero()
	if !bytes.Equal(s.Sec(), make([]byte, 32)) {
		t.Fatal("secret not wiped")
	}
}
