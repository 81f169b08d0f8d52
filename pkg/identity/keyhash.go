package identity

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // matches the hash chain Dash-style key-hash addressing expects
)

// PublicKeyHash returns key's 20-byte RIPEMD160(SHA256(key.Data)) hash, the
// same construction used to derive a Bitcoin-style pubkey-hash address.
func PublicKeyHash(key PublicKey) []byte {
	sum := sha256.Sum256(key.Data)
	r := ripemd160.New()
	r.Write(sum[:])
	return r.Sum(nil)
}

// KeyHashMatches reports whether key's public key hash equals hash.
func KeyHashMatches(key PublicKey, hash []byte) bool {
	computed := PublicKeyHash(key)
	if len(computed) != len(hash) {
		return false
	}
	for i := range computed {
		if computed[i] != hash[i] {
			return false
		}
	}
	return true
}
