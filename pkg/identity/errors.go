// Package identity implements identities (balance, revision, and public
// keys) and the per-(identity, contract) nonce that guards state-transition
// replay (consumed by statetransition).
package identity

import errorsmod "cosmossdk.io/errors"

const ModuleName = "identity"

var (
	ErrKeyNotFound      = errorsmod.Register(ModuleName, 1, "identity public key not found")
	ErrWrongPurpose     = errorsmod.Register(ModuleName, 2, "identity key purpose does not permit this operation")
	ErrUnknownKeyType   = errorsmod.Register(ModuleName, 3, "unknown identity key type")
	ErrInvalidSignature = errorsmod.Register(ModuleName, 4, "signature does not verify against the claimed key")
	ErrInvalidNonce     = errorsmod.Register(ModuleName, 5, "identity-contract nonce is not the expected next value")
)
