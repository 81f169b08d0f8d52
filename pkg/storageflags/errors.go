package storageflags

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error-registration namespace for this package.
const ModuleName = "storageflags"

var (
	ErrDifferentBaseEpoch   = errorsmod.Register(ModuleName, 1, "merging storage flags with different base epoch")
	ErrDifferentOwners      = errorsmod.Register(ModuleName, 2, "merging storage flags from different owners")
	ErrNoAssociatedStorage  = errorsmod.Register(ModuleName, 3, "removing bytes at epoch with no associated storage")
	ErrCorruptedSerialization = errorsmod.Register(ModuleName, 4, "corrupted storage flags serialization")
	ErrOverflow             = errorsmod.Register(ModuleName, 5, "storage flags arithmetic overflow")
)
