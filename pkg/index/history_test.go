package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/storageflags"
)

func profileDocType() document.DocumentType {
	return document.DocumentType{
		Name: "profile",
		Properties: document.OrderedProperties{
			{Name: "displayName", Def: document.PropertyDef{Name: "displayName", Kind: document.KindString, Required: true}},
		},
		Mutable:      true,
		KeepsHistory: true,
	}
}

func TestHistoryRevisionsAccumulate(t *testing.T) {
	store := newTestStore(t)
	cache := NewCache()
	dt := profileDocType()
	contractID := identifier.Identifier{9}
	flags := storageflags.NewSingleEpoch(0)

	id := identifier.Identifier{5}
	doc := document.New(id, identifier.Identifier{1}, contractID, dt.Name, document.OrderedValues{
		{Name: "displayName", Value: document.StringValue("alice")},
	}, 1000)

	require.NoError(t, InsertDocument(store, cache, contractID, dt, doc, flags))

	latest, err := LatestRevision(store, contractID, dt.Name, id)
	require.NoError(t, err)
	got, err := document.DecodeDocumentProperties(dt.Properties, latest)
	require.NoError(t, err)
	name, ok := got.Get("displayName")
	require.True(t, ok)
	require.Equal(t, "alice", name.Str)

	updated := doc.ApplyUpdate(document.OrderedValues{
		{Name: "displayName", Value: document.StringValue("alice2")},
	}, 2000)
	require.NoError(t, UpdateDocument(store, cache, contractID, dt, doc, updated, flags))

	latest, err = LatestRevision(store, contractID, dt.Name, id)
	require.NoError(t, err)
	got, err = document.DecodeDocumentProperties(dt.Properties, latest)
	require.NoError(t, err)
	name, _ = got.Get("displayName")
	require.Equal(t, "alice2", name.Str)

	original, err := RevisionAt(store, contractID, dt.Name, id, 1000)
	require.NoError(t, err)
	got, err = document.DecodeDocumentProperties(dt.Properties, original)
	require.NoError(t, err)
	name, _ = got.Get("displayName")
	require.Equal(t, "alice", name.Str)
}
