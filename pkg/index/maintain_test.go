package index

import (
	"testing"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/storageflags"
)

func newTestStore(t *testing.T) *grove.Store {
	t.Helper()
	s := grove.New(dbm.NewMemDB())
	_, err := s.LoadLatest()
	require.NoError(t, err)
	return s
}

func transferDocType() document.DocumentType {
	return document.DocumentType{
		Name: "transfer",
		Properties: document.OrderedProperties{
			{Name: "ownerId", Def: document.PropertyDef{Name: "ownerId", Kind: document.KindIdentifier, Required: true}},
			{Name: "toUserId", Def: document.PropertyDef{Name: "toUserId", Kind: document.KindIdentifier, Required: true}},
			{Name: "amount", Def: document.PropertyDef{Name: "amount", Kind: document.KindInteger, Required: true}},
		},
		Indices: []document.IndexDef{
			{
				Name:   "ownerToUser",
				Unique: true,
				Properties: []document.IndexPropertyOrder{
					{Property: "ownerId", Ascending: true},
					{Property: "toUserId", Ascending: true},
				},
			},
			{
				Name:   "byAmount",
				Unique: false,
				Properties: []document.IndexPropertyOrder{
					{Property: "amount", Ascending: true},
				},
			},
		},
		Mutable:      true,
		CanBeDeleted: true,
	}
}

func makeTransferDoc(id, owner, toUser identifier.Identifier, amount int64) document.Document {
	return document.New(id, owner, identifier.Identifier{9}, "transfer", document.OrderedValues{
		{Name: "ownerId", Value: document.IdentifierValue(owner)},
		{Name: "toUserId", Value: document.IdentifierValue(toUser)},
		{Name: "amount", Value: document.IntegerValue(amount)},
	}, 1000)
}

func TestInsertDocumentMaintainsUniqueAndNonUniqueIndexes(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := transferDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	owner := identifier.Identifier{1}
	toUser := identifier.Identifier{2}
	doc := makeTransferDoc(identifier.Identifier{3}, owner, toUser, 500)

	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc, flags))

	results, err := ExecuteQuery(store, contractID, dt, Query{
		DocumentType: dt.Name,
		Where: []WhereClause{
			{Property: "ownerId", Value: document.IdentifierValue(owner)},
			{Property: "toUserId", Value: document.IdentifierValue(toUser)},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, doc.ID, results[0].DocumentID)
}

func TestInsertDocumentUniqueIndexConflict(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := transferDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	owner := identifier.Identifier{1}
	toUser := identifier.Identifier{2}
	doc1 := makeTransferDoc(identifier.Identifier{3}, owner, toUser, 500)
	doc2 := makeTransferDoc(identifier.Identifier{4}, owner, toUser, 700)

	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc1, flags))
	err := InsertDocument(store, cache, contractID, dt, doc2, flags)
	require.ErrorIs(t, err, ErrUniqueIndexConflict)
}

func TestDeleteDocumentRemovesIndexEntries(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := transferDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	owner := identifier.Identifier{1}
	toUser := identifier.Identifier{2}
	doc := makeTransferDoc(identifier.Identifier{3}, owner, toUser, 500)
	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc, flags))

	require.NoError(t, DeleteDocument(store, contractID, dt, doc))

	results, err := ExecuteQuery(store, contractID, dt, Query{
		Where: []WhereClause{
			{Property: "ownerId", Value: document.IdentifierValue(owner)},
			{Property: "toUserId", Value: document.IdentifierValue(toUser)},
		},
	})
	require.NoError(t, err)
	require.Empty(t, results)

	// Re-inserting after delete must succeed: the round trip restores the
	// index and primary storage to their pre-create state.
	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc, flags))
}

func TestUpdateDocumentMovesIndexEntry(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := transferDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	owner := identifier.Identifier{1}
	toUser := identifier.Identifier{2}
	doc := makeTransferDoc(identifier.Identifier{3}, owner, toUser, 500)
	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc, flags))

	updated := doc.ApplyUpdate(document.OrderedValues{
		{Name: "ownerId", Value: document.IdentifierValue(owner)},
		{Name: "toUserId", Value: document.IdentifierValue(toUser)},
		{Name: "amount", Value: document.IntegerValue(999)},
	}, 2000)

	require.NoError(t, UpdateDocument(store, cache, contractID, dt, doc, updated, flags))

	results, err := ExecuteQuery(store, contractID, dt, Query{
		Where: []WhereClause{
			{Property: "amount", Value: document.IntegerValue(999)},
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, doc.ID, results[0].DocumentID)

	oldAmount, err := ExecuteQuery(store, contractID, dt, Query{
		Where: []WhereClause{{Property: "amount", Value: document.IntegerValue(500)}},
	})
	require.NoError(t, err)
	require.Empty(t, oldAmount)
}

func TestNonUniqueIndexSupportsMultipleDocuments(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := transferDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	doc1 := makeTransferDoc(identifier.Identifier{3}, identifier.Identifier{1}, identifier.Identifier{2}, 500)
	doc2 := makeTransferDoc(identifier.Identifier{4}, identifier.Identifier{1}, identifier.Identifier{5}, 500)

	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc1, flags))
	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc2, flags))

	results, err := ExecuteQuery(store, contractID, dt, Query{
		Where: []WhereClause{{Property: "amount", Value: document.IntegerValue(500)}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
}
