// Package index maintains the secondary-index trees that sit alongside
// every document type's primary storage: one subtree path per index,
// keyed by alternating property-name and encoded-value segments, with a
// terminal-key policy that distinguishes unique from non-unique indexes.
package index

import errorsmod "cosmossdk.io/errors"

const ModuleName = "index"

var (
	ErrUniqueIndexConflict     = errorsmod.Register(ModuleName, 1, "unique index already has an entry for this value combination")
	ErrNoMatchingIndex         = errorsmod.Register(ModuleName, 2, "no declared index covers the given query")
	ErrInvalidStartsWithClause = errorsmod.Register(ModuleName, 3, "start-at value does not match the selected index's property order")
)
