package index

import (
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/identifier"
)

var (
	contractsRootSegment    = []byte("contracts")
	documentsVersionSegment = []byte("1")
	primarySegment          = []byte("$primary")
)

// TerminalKey is the literal key 0 used both as an index's terminal key
// (per the terminal-key policy: a direct Reference for unique indexes with
// no null field, or a subtree of document-id references otherwise) and, for
// history-keeping document types, as the slot holding a Reference to the
// latest time-keyed revision within a document's own primary subtree.
var TerminalKey = []byte{0}

// present and null tag the leading byte of every index path value segment,
// so a missing (null) indexed property produces a distinct path segment
// from any real encoded value, however short.
const (
	valuePresentTag byte = 1
	valueNullTag    byte = 0
)

// DocumentTypePath is the root of everything belonging to one document
// type within one contract: /contracts/<contractID>/1/<docType>.
func DocumentTypePath(contractID identifier.Identifier, docType string) [][]byte {
	return [][]byte{contractsRootSegment, contractID.Bytes(), documentsVersionSegment, []byte(docType)}
}

// PrimaryTreePath is where primary document storage lives for a document
// type, keyed by document ID.
func PrimaryTreePath(contractID identifier.Identifier, docType string) [][]byte {
	return append(DocumentTypePath(contractID, docType), primarySegment)
}

// resolvedValue is one indexed property's encoded path segment, tagged so
// a null field is distinguishable from a real (possibly zero-length)
// encoded value.
type resolvedValue struct {
	segment []byte
	isNull  bool
}

func resolveIndexValues(idx document.IndexDef, doc document.Document) ([]resolvedValue, error) {
	out := make([]resolvedValue, len(idx.Properties))
	for i, propOrder := range idx.Properties {
		v, ok := doc.Get(propOrder.Property)
		if !ok {
			out[i] = resolvedValue{segment: []byte{valueNullTag}, isNull: true}
			continue
		}
		// EncodeIndexValue is sort-preserving, so sibling value segments
		// under one property level iterate in value order; ExecuteQuery
		// relies on this when it walks a level to satisfy OrderBy.
		enc, err := document.EncodeIndexValue(document.PropertyDef{Kind: v.Kind}, v)
		if err != nil {
			return nil, err
		}
		segment := append([]byte{valuePresentTag}, enc...)
		out[i] = resolvedValue{segment: segment}
	}
	return out, nil
}

// hasNullValue reports whether any resolved value in values is null, which
// forces non-unique terminal-key treatment regardless of idx.Unique.
func hasNullValue(values []resolvedValue) bool {
	for _, v := range values {
		if v.isNull {
			return true
		}
	}
	return false
}

// IndexPath returns the full path to idx's terminal key for doc: every
// property/value pair in idx.Properties, in order, appended to the
// document type's root path.
func IndexPath(contractID identifier.Identifier, docType string, idx document.IndexDef, values []resolvedValue) [][]byte {
	path := DocumentTypePath(contractID, docType)
	for i, propOrder := range idx.Properties {
		path = append(path, []byte(propOrder.Property), values[i].segment)
	}
	return path
}
