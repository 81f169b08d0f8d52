// Package query implements the read-only query surface: identity,
// data-contract, and document lookups against the grove store and the
// in-memory contract/identity registry statetransition.Context also reads.
// GetDocuments returns either decoded documents or a proof; GetIdentity and
// GetDataContract return ErrUnsupported when a proof is requested, and the
// other identity lookups take no prove flag.
package query

import (
	errorsmod "cosmossdk.io/errors"
	grpccodes "google.golang.org/grpc/codes"
)

const ModuleName = "query"

var (
	// Exposed across the RPC boundary; classified so a gateway can map them
	// to the right HTTP status without inspecting error text.
	ErrUnsupported  = errorsmod.RegisterWithGRPCCode(ModuleName, 1, grpccodes.Unimplemented, "unsupported query path")
	ErrInvalidLimit = errorsmod.RegisterWithGRPCCode(ModuleName, 2, grpccodes.InvalidArgument, "limit exceeds the maximum query limit")
	ErrNotFound     = errorsmod.RegisterWithGRPCCode(ModuleName, 3, grpccodes.NotFound, "not found")

	ErrUnknownTransition = errorsmod.Register(ModuleName, 4, "unknown state transition hash")
)
