package index

import (
	"encoding/binary"

	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// Cache suppresses duplicate empty-tree insertions for the duration of a
// single state-transition application: many documents within one transition
// commonly share index-path prefixes (the same property/value subtree), and
// without this cache each would redundantly probe and recreate it.
type Cache struct {
	seen map[string]struct{}
}

// NewCache returns an empty cache. Construct one per transition.
func NewCache() *Cache {
	return &Cache{seen: make(map[string]struct{})}
}

func cacheKey(path [][]byte, key []byte) string {
	return string(encodePathKeyForCache(path, key))
}

func (c *Cache) ensureSubtree(store *grove.Store, path [][]byte, key []byte, flags storageflags.Flags) error {
	ck := cacheKey(path, key)
	if _, ok := c.seen[ck]; ok {
		return nil
	}
	if _, err := store.InsertEmptyTreeIfNotExists(path, key, flags); err != nil {
		return err
	}
	c.seen[ck] = struct{}{}
	return nil
}

// ensureAncestorTrees walks fullPath from the root down, creating every
// intermediate Tree node that does not already exist. fullPath must not
// include the terminal key itself.
func ensureAncestorTrees(store *grove.Store, cache *Cache, fullPath [][]byte, flags storageflags.Flags) error {
	for depth := 1; depth <= len(fullPath); depth++ {
		parent := fullPath[:depth-1]
		key := fullPath[depth-1]
		if err := cache.ensureSubtree(store, parent, key, flags); err != nil {
			return err
		}
	}
	return nil
}

// InsertDocument writes doc's primary storage entry and maintains every
// declared index on dt, in one sequential pass. contract-level defaults are
// assumed already resolved onto dt by the caller.
func InsertDocument(store *grove.Store, cache *Cache, contractID identifier.Identifier, dt document.DocumentType, doc document.Document, flags storageflags.Flags) error {
	if err := insertPrimary(store, cache, contractID, dt, doc, flags); err != nil {
		return err
	}
	for _, idx := range dt.Indices {
		if err := insertIndexEntry(store, cache, contractID, dt.Name, idx, doc, flags); err != nil {
			return err
		}
	}
	return nil
}

func insertPrimary(store *grove.Store, cache *Cache, contractID identifier.Identifier, dt document.DocumentType, doc document.Document, flags storageflags.Flags) error {
	payload, err := document.EncodeDocumentProperties(dt.Properties, doc.Properties)
	if err != nil {
		return err
	}
	primaryPath := PrimaryTreePath(contractID, dt.Name)
	if err := ensureAncestorTrees(store, cache, primaryPath, flags); err != nil {
		return err
	}

	if !dt.KeepsHistory {
		return store.Insert(primaryPath, doc.ID.Bytes(), grove.NewItem(payload, flags))
	}
	return insertHistoryRevision(store, cache, primaryPath, doc.ID, doc.CreatedAtMillis, payload, flags)
}

func insertIndexEntry(store *grove.Store, cache *Cache, contractID identifier.Identifier, docType string, idx document.IndexDef, doc document.Document, flags storageflags.Flags) error {
	values, err := resolveIndexValues(idx, doc)
	if err != nil {
		return err
	}
	path := IndexPath(contractID, docType, idx, values)
	if err := ensureAncestorTrees(store, cache, path, flags); err != nil {
		return err
	}

	reference := grove.NewReference(PrimaryTreePath(contractID, docType), doc.ID.Bytes(), 1, flags)

	unique := idx.Unique && !hasNullValue(values)
	if unique {
		inserted, err := store.InsertIfNotExists(path, TerminalKey, reference)
		if err != nil {
			return err
		}
		if !inserted {
			return ErrUniqueIndexConflict
		}
		return nil
	}

	if err := cache.ensureSubtree(store, path, TerminalKey, flags); err != nil {
		return err
	}
	docIDSubtree := append(append([][]byte(nil), path...), TerminalKey)
	return store.Insert(docIDSubtree, doc.ID.Bytes(), reference)
}

// DeleteDocument removes doc's primary storage entry (non-history document
// types only — history-keeping types retain every revision and are never
// fully deleted through this path) and every index entry that referenced
// it, pruning emptied ancestor subtrees back to the document type's own
// root.
func DeleteDocument(store *grove.Store, contractID identifier.Identifier, dt document.DocumentType, doc document.Document) error {
	stopHeight := len(DocumentTypePath(contractID, dt.Name))

	for _, idx := range dt.Indices {
		values, err := resolveIndexValues(idx, doc)
		if err != nil {
			return err
		}
		path := IndexPath(contractID, dt.Name, idx, values)

		unique := idx.Unique && !hasNullValue(values)
		if unique {
			if err := store.DeleteUpTreeWhileEmpty(path, TerminalKey, stopHeight); err != nil {
				return err
			}
			continue
		}
		docIDSubtree := append(append([][]byte(nil), path...), TerminalKey)
		if err := store.DeleteUpTreeWhileEmpty(docIDSubtree, doc.ID.Bytes(), stopHeight); err != nil {
			return err
		}
	}

	if dt.KeepsHistory {
		return nil
	}
	primaryPath := PrimaryTreePath(contractID, dt.Name)
	return store.DeleteUpTreeWhileEmpty(primaryPath, doc.ID.Bytes(), stopHeight)
}

// UpdateDocument transitions a document from oldDoc to newDoc: the primary
// entry is rewritten (or a new history revision appended), and for each
// index whose resolved path changed, the old terminal is removed (pruning
// up to the document type's height) and the new terminal inserted.
func UpdateDocument(store *grove.Store, cache *Cache, contractID identifier.Identifier, dt document.DocumentType, oldDoc, newDoc document.Document, flags storageflags.Flags) error {
	stopHeight := len(DocumentTypePath(contractID, dt.Name))

	for _, idx := range dt.Indices {
		oldValues, err := resolveIndexValues(idx, oldDoc)
		if err != nil {
			return err
		}
		newValues, err := resolveIndexValues(idx, newDoc)
		if err != nil {
			return err
		}
		if indexValuesEqual(oldValues, newValues) {
			continue
		}

		oldPath := IndexPath(contractID, dt.Name, idx, oldValues)
		oldUnique := idx.Unique && !hasNullValue(oldValues)
		if oldUnique {
			if err := store.DeleteUpTreeWhileEmpty(oldPath, TerminalKey, stopHeight); err != nil {
				return err
			}
		} else {
			docIDSubtree := append(append([][]byte(nil), oldPath...), TerminalKey)
			if err := store.DeleteUpTreeWhileEmpty(docIDSubtree, oldDoc.ID.Bytes(), stopHeight); err != nil {
				return err
			}
		}

		if err := insertIndexEntry(store, cache, contractID, dt.Name, idx, newDoc, flags); err != nil {
			return err
		}
	}

	if !dt.KeepsHistory {
		payload, err := document.EncodeDocumentProperties(dt.Properties, newDoc.Properties)
		if err != nil {
			return err
		}
		primaryPath := PrimaryTreePath(contractID, dt.Name)
		return store.Insert(primaryPath, newDoc.ID.Bytes(), grove.NewItem(payload, flags))
	}

	payload, err := document.EncodeDocumentProperties(dt.Properties, newDoc.Properties)
	if err != nil {
		return err
	}
	primaryPath := PrimaryTreePath(contractID, dt.Name)
	return insertHistoryRevision(store, cache, primaryPath, newDoc.ID, newDoc.UpdatedAtMillis, payload, flags)
}

func indexValuesEqual(a, b []resolvedValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].isNull != b[i].isNull {
			return false
		}
		if string(a[i].segment) != string(b[i].segment) {
			return false
		}
	}
	return true
}

func encodePathKeyForCache(path [][]byte, key []byte) []byte {
	out := binary.AppendUvarint(nil, uint64(len(path)))
	for _, seg := range path {
		out = binary.AppendUvarint(out, uint64(len(seg)))
		out = append(out, seg...)
	}
	out = binary.AppendUvarint(out, uint64(len(key)))
	out = append(out, key...)
	return out
}
