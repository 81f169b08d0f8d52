// Package grove implements the authenticated, hierarchical key/value tree
// that underlies every other component: a single Merkle-proofed store of
// Item, Reference, and Tree elements, addressed by (path, key) pairs.
package grove

import errorsmod "cosmossdk.io/errors"

const ModuleName = "grove"

var (
	ErrCorruptedTree = errorsmod.Register(ModuleName, 1, "corrupted tree node")
	ErrAlreadyExists = errorsmod.Register(ModuleName, 2, "element already exists at path and key")
	ErrPathNotFound  = errorsmod.Register(ModuleName, 3, "path does not resolve to a tree element")
	ErrKeyNotFound   = errorsmod.Register(ModuleName, 4, "key not found at path")
	ErrInvalidProof  = errorsmod.Register(ModuleName, 5, "proof does not verify against the given root")
)
