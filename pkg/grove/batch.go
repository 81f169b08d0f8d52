package grove

import (
	"encoding/hex"

	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// OpKind discriminates Batch operations.
type OpKind byte

const (
	OpInsert OpKind = iota
	OpInsertEmptyTree
	OpDelete
)

// Op is one accumulated batch operation.
type Op struct {
	Kind    OpKind
	Path    [][]byte
	Key     []byte
	Element Element
	Flags   storageflags.Flags // used by OpInsertEmptyTree only
}

// Batch accumulates operations to be applied together. Operations within a
// batch must address distinct (path, key) pairs for inserts: inserting the
// same pair twice in one batch is rejected at ApplyBatch time rather than
// silently overwriting, since ordering within a batch could otherwise hide
// the conflict.
type Batch struct {
	ops []Op
}

// NewBatch returns an empty batch.
func NewBatch() *Batch { return &Batch{} }

func (b *Batch) Insert(path [][]byte, key []byte, element Element) {
	b.ops = append(b.ops, Op{Kind: OpInsert, Path: path, Key: key, Element: element})
}

func (b *Batch) InsertEmptyTree(path [][]byte, key []byte, flags storageflags.Flags) {
	b.ops = append(b.ops, Op{Kind: OpInsertEmptyTree, Path: path, Key: key, Flags: flags})
}

func (b *Batch) Delete(path [][]byte, key []byte) {
	b.ops = append(b.ops, Op{Kind: OpDelete, Path: path, Key: key})
}

func (b *Batch) Len() int { return len(b.ops) }

// BatchResult reports the outcome of applying a batch.
type BatchResult struct {
	// CostBytes is the total serialized size of every element written or
	// removed by the batch; it is computed whether or not the batch was
	// actually applied, so callers can price a transition before committing
	// to it.
	CostBytes uint64
}

// ApplyBatch validates and, if apply is true, executes every operation in b
// against store in order. If apply is false the batch is only priced: no
// mutation occurs. Either way, inserting the same (path, key) twice within
// the batch is an error, since it can never be a caller's intent and a
// silent last-write-wins would hide it.
func ApplyBatch(store *Store, b *Batch, apply bool) (BatchResult, error) {
	seen := make(map[string]struct{}, len(b.ops))
	for _, op := range b.ops {
		if op.Kind == OpInsert || op.Kind == OpInsertEmptyTree {
			addrKey := batchAddressKey(op.Path, op.Key)
			if _, dup := seen[addrKey]; dup {
				return BatchResult{}, ErrAlreadyExists
			}
			seen[addrKey] = struct{}{}
		}
	}

	var result BatchResult
	for _, op := range b.ops {
		switch op.Kind {
		case OpInsert:
			result.CostBytes += uint64(len(op.Element.Serialize()))
		case OpInsertEmptyTree:
			result.CostBytes += uint64(len(NewTree(op.Flags).Serialize()))
		case OpDelete:
			existing, err := store.Get(op.Path, op.Key)
			if err == nil {
				result.CostBytes += uint64(len(existing.Serialize()))
			}
		}

		if !apply {
			continue
		}

		switch op.Kind {
		case OpInsert:
			if err := store.Insert(op.Path, op.Key, op.Element); err != nil {
				return BatchResult{}, err
			}
		case OpInsertEmptyTree:
			if _, err := store.InsertEmptyTreeIfNotExists(op.Path, op.Key, op.Flags); err != nil {
				return BatchResult{}, err
			}
		case OpDelete:
			if err := store.Delete(op.Path, op.Key); err != nil {
				return BatchResult{}, err
			}
		}
	}

	return result, nil
}

func batchAddressKey(path [][]byte, key []byte) string {
	return hex.EncodeToString(encodePathKey(path, key))
}
