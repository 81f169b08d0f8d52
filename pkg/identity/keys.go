package identity

import (
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	blst "github.com/supranational/blst/bindings/go"
)

// blsDomainSeparationTag pins the signature scheme used for BLS12381
// identity keys to the IETF minimal-pubkey-size ciphersuite, so a signature
// produced under a different DST never verifies by accident.
var blsDomainSeparationTag = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// VerifySignature checks signature against message under key, dispatching on
// the key's declared algorithm. message is the already-canonicalized,
// already-hashed transition payload (statetransition owns canonicalization;
// this package only verifies). A key whose Data or signature does not parse
// under its own Type returns ErrInvalidSignature rather than a
// parse-specific error — callers only need to know the transition failed to
// authenticate.
func VerifySignature(key PublicKey, message, signature []byte) error {
	switch key.Type {
	case KeyTypeECDSASecp256k1:
		return verifySecp256k1(key.Data, message, signature)
	case KeyTypeBLS12381:
		return verifyBLS12381(key.Data, message, signature)
	default:
		return ErrUnknownKeyType
	}
}

func verifySecp256k1(pubKeyBytes, message, signature []byte) error {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return ErrInvalidSignature
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if !sig.Verify(message, pubKey) {
		return ErrInvalidSignature
	}
	return nil
}

func verifyBLS12381(pubKeyBytes, message, signature []byte) error {
	pubKey := new(blst.P1Affine).Uncompress(pubKeyBytes)
	if pubKey == nil || !pubKey.KeyValidate() {
		return ErrInvalidSignature
	}
	sig := new(blst.P2Affine).Uncompress(signature)
	if sig == nil {
		return ErrInvalidSignature
	}
	if !sig.Verify(true, pubKey, true, message, blsDomainSeparationTag) {
		return ErrInvalidSignature
	}
	return nil
}
