package statetransition

import (
	"github.com/platformdrive/drivecore/pkg/distribution"
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/identifier"
)

// CurrentProtocolVersion is the only protocol version this package's
// dispatch table currently serves.
const CurrentProtocolVersion uint32 = 1

// OperationKind discriminates the per-document mutation a DocumentOperation
// carries.
type OperationKind int

const (
	OperationCreate OperationKind = iota
	OperationReplace
	OperationDelete
	OperationTransfer
	OperationPurchase
	OperationUpdatePrice
	OperationTokenClaim
)

// DocumentOperation is one entry of a document-batch transition. Only the
// fields relevant to Kind are read by its handler.
type DocumentOperation struct {
	Kind OperationKind

	ContractID   identifier.Identifier
	DocumentType string
	DocumentID   identifier.Identifier

	// Create
	Entropy    []byte
	Properties document.OrderedValues

	// Replace
	ExpectedRevision uint64

	// Transfer / Purchase / UpdatePrice
	NewOwner identifier.Identifier
	Price    uint64

	// TokenClaim
	DistributionCurve        distribution.Curve
	ContractRegistrationStep uint64
	ClaimMoment              uint64
}

// Transition is a signed document-batch state transition.
type Transition struct {
	ProtocolVersion uint32
	IdentityID      identifier.Identifier
	KeyID           uint32
	Nonce           uint64
	Operations      []DocumentOperation

	// CanonicalBytes is the already-canonicalized payload the Signature was
	// produced over (step 4); this package verifies, it does not canonicalize.
	CanonicalBytes []byte
	Signature      []byte
}
