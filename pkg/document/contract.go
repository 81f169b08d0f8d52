package document

import (
	"github.com/platformdrive/drivecore/pkg/identifier"
)

// IndexPropertyOrder describes one property participating in an index, and
// whether that property sorts ascending or descending within the index.
type IndexPropertyOrder struct {
	Property  string
	Ascending bool
}

// IndexDef is a named, ordered list of properties forming a secondary index
// on a document type. Unique indexes forbid more than one document sharing
// the same resolved key (NULL-valued properties are exempt, matching the
// usual SQL unique-index convention).
type IndexDef struct {
	Name       string
	Properties []IndexPropertyOrder
	Unique     bool
}

// DocumentType is one named document schema within a DataContract: its
// properties, which indexes exist over it, and the mutability/history
// policy applied to documents of this type.
type DocumentType struct {
	Name       string
	Properties OrderedProperties
	Indices    []IndexDef

	// Mutable allows update transitions against existing documents. When
	// false only create/delete are permitted.
	Mutable bool

	// CanBeDeleted allows delete transitions. Some document types (e.g.
	// append-only logs) forbid deletion entirely.
	CanBeDeleted bool

	// KeepsHistory retains prior revisions in the history index rather
	// than overwriting them in place on update.
	KeepsHistory bool

	// DocumentsMutableContractDefault records the contract-level default
	// that was in force when this type was defined, for diagnostics only;
	// Mutable above is always the authoritative, already-resolved value.
	DocumentsMutableContractDefault bool
}

// IndexByName returns the index definition with the given name, if any.
func (dt DocumentType) IndexByName(name string) (IndexDef, bool) {
	for _, idx := range dt.Indices {
		if idx.Name == name {
			return idx, true
		}
	}
	return IndexDef{}, false
}

// DataContract groups a set of document types under a single owner
// identity, versioned so that schema migrations can be tracked.
type DataContract struct {
	ID      identifier.Identifier
	OwnerID identifier.Identifier
	Version uint32

	DocumentTypes map[string]DocumentType

	// DocumentsKeepHistoryContractDefault and DocumentsMutableContractDefault
	// are the contract-wide defaults consulted when a document type does
	// not declare its own override.
	DocumentsKeepHistoryContractDefault bool
	DocumentsMutableContractDefault     bool
}

// DocumentTypeByName looks up a document type by name.
func (c DataContract) DocumentTypeByName(name string) (DocumentType, error) {
	dt, ok := c.DocumentTypes[name]
	if !ok {
		return DocumentType{}, ErrUnknownDocumentType
	}
	return dt, nil
}
