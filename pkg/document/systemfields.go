package document

import "github.com/platformdrive/drivecore/pkg/identifier"

// A document's system fields (owner, revision, the three timestamps) are
// identical in shape across every document type and are not part of any
// contract's declared schema. Every component that writes or reads a
// document's storage payload — the state-transition handlers and the query
// service alike — persists and recovers them the same way: as five
// reserved properties prepended ahead of the type's own declared
// properties, so a decoded document carries its full state rather than
// just its domain fields.
const (
	SystemOwnerID       = "$ownerId"
	SystemRevision      = "$revision"
	SystemCreatedAt     = "$createdAt"
	SystemUpdatedAt     = "$updatedAt"
	SystemTransferredAt = "$transferredAt"
)

var systemProperties = OrderedProperties{
	{Name: SystemOwnerID, Def: PropertyDef{Name: SystemOwnerID, Kind: KindIdentifier, Required: true}},
	{Name: SystemRevision, Def: PropertyDef{Name: SystemRevision, Kind: KindInteger, Required: true}},
	{Name: SystemCreatedAt, Def: PropertyDef{Name: SystemCreatedAt, Kind: KindDate, Required: true}},
	{Name: SystemUpdatedAt, Def: PropertyDef{Name: SystemUpdatedAt, Kind: KindDate, Required: true}},
	{Name: SystemTransferredAt, Def: PropertyDef{Name: SystemTransferredAt, Kind: KindDate, Required: true}},
}

// WithSystemProperties returns a copy of dt whose Properties are prefixed
// with the reserved system properties. Use the result as the schema passed
// to EncodeDocumentProperties/DecodeDocumentProperties and to the index
// package's insert/update/delete helpers, never dt itself, once a document
// has passed through StorageValues.
func WithSystemProperties(dt DocumentType) DocumentType {
	extended := make(OrderedProperties, 0, len(systemProperties)+len(dt.Properties))
	extended = append(extended, systemProperties...)
	extended = append(extended, dt.Properties...)
	dt.Properties = extended
	return dt
}

// StorageValues returns doc's full property set — its system fields
// followed by its domain properties — ready to encode under
// WithSystemProperties(dt).
func StorageValues(doc Document) OrderedValues {
	values := make(OrderedValues, 0, len(doc.Properties)+len(systemProperties))
	values = append(values,
		NamedValue{Name: SystemOwnerID, Value: IdentifierValue(doc.OwnerID)},
		NamedValue{Name: SystemRevision, Value: IntegerValue(int64(doc.Revision))},
		NamedValue{Name: SystemCreatedAt, Value: DateValue(doc.CreatedAtMillis)},
		NamedValue{Name: SystemUpdatedAt, Value: DateValue(doc.UpdatedAtMillis)},
		NamedValue{Name: SystemTransferredAt, Value: DateValue(doc.TransferredAtMillis)},
	)
	return append(values, doc.Properties...)
}

// WithStorageProperties returns a copy of doc whose Properties field is
// doc's full storage value set, ready to hand to the index package's
// insert/update/delete helpers alongside WithSystemProperties(dt).
func WithStorageProperties(doc Document) Document {
	doc.Properties = StorageValues(doc)
	return doc
}

// FromStorageValues rebuilds a Document from its id, type identity, and a
// fully-decoded storage value set (system fields plus the domain
// properties DecodeDocumentProperties returned alongside them under
// WithSystemProperties(dt)).
func FromStorageValues(docID, contractID identifier.Identifier, docType string, values OrderedValues) Document {
	owner, _ := values.Get(SystemOwnerID)
	revision, _ := values.Get(SystemRevision)
	createdAt, _ := values.Get(SystemCreatedAt)
	updatedAt, _ := values.Get(SystemUpdatedAt)
	transferredAt, _ := values.Get(SystemTransferredAt)

	ownerID, _ := identifier.FromBytes(owner.Bytes)

	domainProps := make(OrderedValues, 0, len(values))
	for _, v := range values {
		switch v.Name {
		case SystemOwnerID, SystemRevision, SystemCreatedAt, SystemUpdatedAt, SystemTransferredAt:
			continue
		default:
			domainProps = append(domainProps, v)
		}
	}

	doc := New(docID, ownerID, contractID, docType, domainProps, createdAt.Int)
	doc.Revision = uint64(revision.Int)
	doc.UpdatedAtMillis = updatedAt.Int
	doc.TransferredAtMillis = transferredAt.Int
	return doc
}
