package index

import (
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// insertHistoryRevision appends a new time-keyed revision for a
// history-keeping document and rewrites the TerminalKey slot to reference
// it. Prior revisions are never touched: they remain reachable by exact
// timestamp forever.
func insertHistoryRevision(store *grove.Store, cache *Cache, primaryPath [][]byte, docID identifier.Identifier, atMillis int64, payload []byte, flags storageflags.Flags) error {
	docSubtree := append(append([][]byte(nil), primaryPath...), docID.Bytes())
	if err := cache.ensureSubtree(store, primaryPath, docID.Bytes(), flags); err != nil {
		return err
	}

	timeKey := document.EncodeUint64Sortable(uint64(atMillis))
	if err := store.Insert(docSubtree, timeKey, grove.NewItem(payload, flags)); err != nil {
		return err
	}

	// TerminalKey always points at the newest revision: Insert overwrites
	// unconditionally rather than checking for a prior value first.
	latest := grove.NewReference(docSubtree, timeKey, 1, flags)
	return store.Insert(docSubtree, TerminalKey, latest)
}

// LatestRevision resolves a history-keeping document's most recent revision
// payload.
func LatestRevision(store *grove.Store, contractID identifier.Identifier, docType string, docID identifier.Identifier) ([]byte, error) {
	docSubtree := append(PrimaryTreePath(contractID, docType), docID.Bytes())
	el, err := store.Get(docSubtree, TerminalKey)
	if err != nil {
		return nil, err
	}
	return el.ItemValue, nil
}

// RevisionAt resolves the revision stored under exactly atMillis; a
// timestamp with no revision of its own is a lookup error, and earlier
// revisions are not searched. Since the store exposes point lookups rather
// than arbitrary range seeks, history
// queries outside the latest revision must supply an exact timestamp they
// already know from a prior get_data_contract_history listing.
func RevisionAt(store *grove.Store, contractID identifier.Identifier, docType string, docID identifier.Identifier, atMillis int64) ([]byte, error) {
	docSubtree := append(PrimaryTreePath(contractID, docType), docID.Bytes())
	timeKey := document.EncodeUint64Sortable(uint64(atMillis))
	el, err := store.Get(docSubtree, timeKey)
	if err != nil {
		return nil, err
	}
	return el.ItemValue, nil
}
