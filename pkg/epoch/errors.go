// Package epoch implements the perpetual storage-fee distribution table
// (component F): spreading a storage fee paid once across the fifty years
// Drive Core promises to keep data available, writing each year's share into
// twenty-epoch installments, subtracting refunds symmetrically when storage
// is freed early, and paying proposers out of the resulting per-epoch pools.
package epoch

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error-registration namespace for this package.
const ModuleName = "epoch"

var (
	ErrOverflow          = errorsmod.Register(ModuleName, 1, "epoch pool arithmetic overflow")
	ErrUnknownEpoch      = errorsmod.Register(ModuleName, 2, "unknown epoch")
	ErrEpochAlreadyPaid  = errorsmod.Register(ModuleName, 3, "epoch already fully paid")
	ErrNoMasternodeShare = errorsmod.Register(ModuleName, 4, "masternode share document references unknown payee")
)
