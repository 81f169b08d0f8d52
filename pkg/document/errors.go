// Package document implements the typed document/contract schema: property
// definitions, the two property encodings (sort-preserving index keys and
// length-prefixed storage payloads), and the Document/DataContract data
// model itself.
package document

import errorsmod "cosmossdk.io/errors"

const ModuleName = "document"

var (
	ErrSchemaViolation        = errorsmod.Register(ModuleName, 1, "document does not conform to its document type schema")
	ErrFieldRequirementUnmet  = errorsmod.Register(ModuleName, 2, "required field missing")
	ErrNotIndexable           = errorsmod.Register(ModuleName, 3, "property type cannot be used as an index key")
	ErrCorruptedSerialization = errorsmod.Register(ModuleName, 4, "corrupted property encoding")
	ErrUnknownProperty        = errorsmod.Register(ModuleName, 5, "unknown property")
	ErrReadOnlyViolation      = errorsmod.Register(ModuleName, 6, "document type does not allow mutation")
	ErrUnknownDocumentType    = errorsmod.Register(ModuleName, 7, "unknown document type")
	ErrNotDeletable           = errorsmod.Register(ModuleName, 8, "document type does not allow deletion")
)
