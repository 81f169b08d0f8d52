package statetransition

import (
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/identity"
)

// batchContractID returns the single contract every operation in t targets.
// The identity-contract nonce this package tracks (step 5) is scoped to one
// contract; a transition whose operations disagree on ContractID has no
// single nonce sequence to check against and is rejected up front.
func batchContractID(t *Transition) (identifier.Identifier, error) {
	if len(t.Operations) == 0 {
		return identifier.Identifier{}, ErrEmptyBatch
	}
	contractID := t.Operations[0].ContractID
	for _, op := range t.Operations[1:] {
		if op.ContractID != contractID {
			return identifier.Identifier{}, ErrMixedContractBatch
		}
	}
	return contractID, nil
}

// validate runs steps 1-5 of the transition validator: protocol version,
// identity/key lookup, signature verification, and the nonce check. A
// failure here leaves all other state untouched, and c.Nonces is only
// mutated once every earlier check has already passed.
func validate(c *Context, t *Transition) (identity.PublicKey, error) {
	if t.ProtocolVersion != CurrentProtocolVersion {
		return identity.PublicKey{}, ErrUnsupportedProtocolVersion
	}

	ident, err := c.identity(t.IdentityID)
	if err != nil {
		return identity.PublicKey{}, err
	}
	key, err := ident.AuthenticationKey(t.KeyID)
	if err != nil {
		return identity.PublicKey{}, err
	}

	if err := identity.VerifySignature(key, t.CanonicalBytes, t.Signature); err != nil {
		return identity.PublicKey{}, err
	}

	contractID, err := batchContractID(t)
	if err != nil {
		return identity.PublicKey{}, err
	}

	nonceKey := identity.NonceKey{IdentityID: t.IdentityID, ContractID: contractID}
	if err := c.Nonces.CheckAndIncrement(nonceKey, t.Nonce); err != nil {
		return identity.PublicKey{}, err
	}

	return key, nil
}
