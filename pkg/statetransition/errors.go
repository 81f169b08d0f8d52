// Package statetransition implements the state-transition validator
// (component H): decoding and dispatching a signed document batch,
// authenticating its acting identity, enforcing nonce monotonicity, and
// applying its per-document operations atomically against the index/grove
// layers.
package statetransition

import errorsmod "cosmossdk.io/errors"

const ModuleName = "statetransition"

var (
	ErrUnsupportedProtocolVersion = errorsmod.Register(ModuleName, 1, "transition protocol version is not supported")
	ErrUnknownOperationKind       = errorsmod.Register(ModuleName, 2, "no handler registered for this operation kind and protocol version")
	ErrDocumentAlreadyExists      = errorsmod.Register(ModuleName, 3, "document already exists")
	ErrDocumentNotFound           = errorsmod.Register(ModuleName, 4, "document not found")
	ErrNotOwner                   = errorsmod.Register(ModuleName, 5, "acting identity does not own the document")
	ErrRevisionMismatch           = errorsmod.Register(ModuleName, 6, "submitted revision does not match the stored document")
	ErrPriceMismatch              = errorsmod.Register(ModuleName, 7, "purchase price does not match the document's listed price")
	ErrInsufficientBalance        = errorsmod.Register(ModuleName, 8, "identity balance insufficient to cover transition fees")
	ErrImmutableDocumentType      = errorsmod.Register(ModuleName, 9, "document type does not allow this mutation")
	ErrUnknownContract            = errorsmod.Register(ModuleName, 10, "unknown data contract")
	ErrUnknownIdentity            = errorsmod.Register(ModuleName, 11, "unknown identity")
	ErrMixedContractBatch         = errorsmod.Register(ModuleName, 12, "batch operations target more than one contract")
	ErrEmptyBatch                 = errorsmod.Register(ModuleName, 13, "transition carries no operations")
)
