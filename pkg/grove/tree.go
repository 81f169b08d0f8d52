package grove

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/iavl"

	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// defaultCacheSize is plenty for the working-set sizes exercised by a
// single validator process.
const defaultCacheSize = 10_000

// Store is the Grove authenticated KV tree: a single IAVL tree addressed by
// flattened (path, key) pairs, carrying storage-flag metadata on every node.
// One Store instance is the sole mutable resource for an entire Drive Core
// process; exactly one transaction mutates it at a time.
type Store struct {
	tree *iavl.MutableTree
}

// New opens (or initializes) a Grove store backed by db.
func New(db dbm.DB) *Store {
	tree := iavl.NewMutableTree(db, defaultCacheSize, false, log.NewNopLogger())
	return &Store{tree: tree}
}

// LoadLatest loads the most recently committed version from the backing
// database. It must be called once before the store is used, after New.
func (s *Store) LoadLatest() (int64, error) {
	return s.tree.Load()
}

// LoadVersion loads a specific historical version as an immutable snapshot
// for read-only, point-in-time queries such as data contract history.
func (s *Store) LoadVersion(version int64) (*iavl.ImmutableTree, error) {
	return s.tree.GetImmutable(version)
}

// Version returns the version most recently saved to durable storage.
func (s *Store) Version() int64 {
	return s.tree.Version()
}

// RootHash returns the working tree's current root hash.
func (s *Store) RootHash() ([]byte, error) {
	return s.tree.Hash()
}

// Commit persists the working tree as a new version and returns its hash.
// This is the boundary at which a transaction becomes durable.
func (s *Store) Commit() (version int64, rootHash []byte, err error) {
	rootHash, version, err = s.tree.SaveVersion()
	return version, rootHash, err
}

// Rollback discards all uncommitted mutations, restoring the working tree to
// the last committed version.
func (s *Store) Rollback() {
	s.tree.Rollback()
}

// Get resolves the element at (path, key), transparently following
// Reference elements up to their declared hop count.
func (s *Store) Get(path [][]byte, key []byte) (Element, error) {
	return s.get(path, key, 0)
}

// GetRaw returns the element stored at (path, key) without following
// Reference elements, for callers that need the reference itself (e.g. to
// read its target address).
func (s *Store) GetRaw(path [][]byte, key []byte) (Element, error) {
	flat := encodePathKey(path, key)
	raw, err := s.tree.Get(flat)
	if err != nil {
		return Element{}, errorsWrap(err)
	}
	if raw == nil {
		return Element{}, ErrKeyNotFound
	}
	return DeserializeElement(raw)
}

func (s *Store) get(path [][]byte, key []byte, hopsFollowed int) (Element, error) {
	flat := encodePathKey(path, key)
	raw, err := s.tree.Get(flat)
	if err != nil {
		return Element{}, errorsWrap(err)
	}
	if raw == nil {
		return Element{}, ErrKeyNotFound
	}
	el, err := DeserializeElement(raw)
	if err != nil {
		return Element{}, err
	}
	if el.Kind != KindReference {
		return el, nil
	}
	if hopsFollowed >= int(el.HopCount) {
		return Element{}, ErrCorruptedTree
	}
	return s.get(el.TargetPath, el.TargetKey, hopsFollowed+1)
}

// Insert writes element at (path, key), overwriting any existing value.
// Inserting under a non-root path requires the parent subtree to already
// exist as a Tree element (PathNotFound otherwise).
func (s *Store) Insert(path [][]byte, key []byte, element Element) error {
	if err := s.ensureParentExists(path); err != nil {
		return err
	}
	flat := encodePathKey(path, key)
	existed, err := s.tree.Has(flat)
	if err != nil {
		return errorsWrap(err)
	}
	if _, err := s.tree.Set(flat, element.Serialize()); err != nil {
		return errorsWrap(err)
	}
	if !existed {
		if err := s.bumpChildCount(path, 1); err != nil {
			return err
		}
	}
	return nil
}

// InsertIfNotExists inserts element at (path, key) only if no element is
// currently stored there, reporting whether the insert happened.
func (s *Store) InsertIfNotExists(path [][]byte, key []byte, element Element) (bool, error) {
	flat := encodePathKey(path, key)
	existed, err := s.tree.Has(flat)
	if err != nil {
		return false, errorsWrap(err)
	}
	if existed {
		return false, nil
	}
	if err := s.Insert(path, key, element); err != nil {
		return false, err
	}
	return true, nil
}

// InsertEmptyTreeIfNotExists creates an empty Tree element at (path, key) if
// one is not already present. It is idempotent: calling it twice is not an
// error, and the second call is a no-op.
func (s *Store) InsertEmptyTreeIfNotExists(path [][]byte, key []byte, flags storageflags.Flags) (bool, error) {
	return s.InsertIfNotExists(path, key, NewTree(flags))
}

// Delete removes the element at (path, key).
func (s *Store) Delete(path [][]byte, key []byte) error {
	flat := encodePathKey(path, key)
	_, removed, err := s.tree.Remove(flat)
	if err != nil {
		return errorsWrap(err)
	}
	if !removed {
		return ErrKeyNotFound
	}
	return s.bumpChildCount(path, -1)
}

// DeleteUpTreeWhileEmpty deletes (path, key), then walks back up through
// path's ancestor Tree elements, removing each one that has become empty,
// stopping once the remaining path length reaches stopAtHeight.
func (s *Store) DeleteUpTreeWhileEmpty(path [][]byte, key []byte, stopAtHeight int) error {
	if err := s.Delete(path, key); err != nil {
		return err
	}

	current := path
	for len(current) > stopAtHeight {
		parentPath, parentKey, ok := parentOf(current)
		if !ok {
			break
		}
		el, err := s.Get(parentPath, parentKey)
		if err != nil {
			if err == ErrKeyNotFound {
				break
			}
			return err
		}
		if el.Kind != KindTree || el.ChildCount != 0 {
			break
		}
		if err := s.Delete(parentPath, parentKey); err != nil {
			return err
		}
		current = parentPath
	}
	return nil
}

// ensureParentExists verifies that path addresses an existing Tree element,
// or is the root (path == nil).
func (s *Store) ensureParentExists(path [][]byte) error {
	parentPath, parentKey, ok := parentOf(path)
	if !ok {
		return nil
	}
	el, err := s.Get(parentPath, parentKey)
	if err != nil {
		if err == ErrKeyNotFound {
			return ErrPathNotFound
		}
		return err
	}
	if el.Kind != KindTree {
		return ErrPathNotFound
	}
	return nil
}

func (s *Store) bumpChildCount(path [][]byte, delta int64) error {
	parentPath, parentKey, ok := parentOf(path)
	if !ok {
		return nil
	}
	el, err := s.Get(parentPath, parentKey)
	if err != nil {
		return err
	}
	if el.Kind != KindTree {
		return ErrCorruptedTree
	}
	if delta < 0 && el.ChildCount < uint64(-delta) {
		el.ChildCount = 0
	} else {
		el.ChildCount = uint64(int64(el.ChildCount) + delta)
	}
	flat := encodePathKey(parentPath, parentKey)
	_, err = s.tree.Set(flat, el.Serialize())
	return errorsWrap(err)
}

func errorsWrap(err error) error {
	if err == nil {
		return nil
	}
	return errorsmod.Wrap(ErrCorruptedTree, err.Error())
}
