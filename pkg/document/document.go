package document

import (
	"time"

	"github.com/platformdrive/drivecore/pkg/identifier"
)

// InitialRevision is the revision assigned to a document at creation time.
const InitialRevision uint64 = 1

// Document is one stored instance of a DocumentType: an identity-owned,
// revisioned value conforming to its type's property schema.
type Document struct {
	ID             identifier.Identifier
	OwnerID        identifier.Identifier
	DataContractID identifier.Identifier
	DocumentType   string

	Revision uint64

	Properties OrderedValues

	CreatedAtMillis  int64
	UpdatedAtMillis  int64
	TransferredAtMillis int64
}

// New constructs a document at its initial revision. createdAtMillis is
// taken verbatim from the caller (normally the block time of the creating
// state transition) so that construction stays deterministic and testable.
func New(id, owner, contractID identifier.Identifier, docType string, props OrderedValues, createdAtMillis int64) Document {
	return Document{
		ID:              id,
		OwnerID:         owner,
		DataContractID:  contractID,
		DocumentType:    docType,
		Revision:        InitialRevision,
		Properties:      props,
		CreatedAtMillis: createdAtMillis,
		UpdatedAtMillis: createdAtMillis,
	}
}

// ApplyUpdate returns a copy of d with props replacing its current
// properties, its revision incremented by one, and UpdatedAtMillis set to
// updatedAtMillis. The owner, ID, and creation timestamp never change on an
// update: only a transfer changes ownership, and no operation resets
// CreatedAtMillis.
func (d Document) ApplyUpdate(props OrderedValues, updatedAtMillis int64) Document {
	next := d
	next.Properties = props
	next.Revision = d.Revision + 1
	next.UpdatedAtMillis = updatedAtMillis
	return next
}

// ApplyTransfer returns a copy of d with OwnerID replaced by newOwner and
// its revision incremented. Transfer is the only operation permitted to
// change ownership.
func (d Document) ApplyTransfer(newOwner identifier.Identifier, transferredAtMillis int64) Document {
	next := d
	next.OwnerID = newOwner
	next.Revision = d.Revision + 1
	next.TransferredAtMillis = transferredAtMillis
	return next
}

// Age returns how long ago the document was created, given the current
// block time.
func (d Document) Age(nowMillis int64) time.Duration {
	return time.Duration(nowMillis-d.CreatedAtMillis) * time.Millisecond
}

// Get returns the document's value for the named property.
func (d Document) Get(name string) (Value, bool) {
	return d.Properties.Get(name)
}
