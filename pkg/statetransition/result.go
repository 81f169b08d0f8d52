package statetransition

import (
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/identifier"
)

// VerifiedDocuments is the typed result of a successfully applied
// transition: one entry per operation's target document id, nil for a
// document the operation deleted.
type VerifiedDocuments map[identifier.Identifier]*document.Document

// Result is the outcome of Apply: the documents touched, and the credit
// amounts it was charged.
type Result struct {
	Documents         VerifiedDocuments
	StorageCredits    uint64
	ProcessingCredits uint64
}
