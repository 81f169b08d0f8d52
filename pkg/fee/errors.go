// Package fee implements fee accounting (component E): pricing the typed
// drive operations a state transition performs into storage and processing
// credits, and reconstructing refunds when previously-paid storage bytes
// are freed.
package fee

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error-registration namespace for this package.
const ModuleName = "fee"

var (
	ErrOverflow            = errorsmod.Register(ModuleName, 1, "fee arithmetic overflow")
	ErrInsufficientBalance = errorsmod.Register(ModuleName, 2, "identity balance insufficient for computed fee")
)
