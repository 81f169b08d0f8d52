// Package app assembles the pieces a running node needs around the core:
// the authenticated store, the contract/identity registries, the epoch
// payout ledger, and the query/submission surface. It owns no consensus or
// networking concerns — the core exposes no wall clock, and P2P and BFT
// agreement are treated as an external collaborator — Platform is the
// thing an orchestrator wires a block loop and RPC server against.
package app

import (
	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"

	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/epoch"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/identity"
	"github.com/platformdrive/drivecore/pkg/index"
	"github.com/platformdrive/drivecore/pkg/query"
	"github.com/platformdrive/drivecore/pkg/statetransition"
)

// Platform bundles the storage, registries, and query/submission surface a
// single node keeps. Contracts and identities are in-memory registries
// here; wiring them to their own grove-backed paths under
// /identities/... and /contracts/... is left to the orchestrator, exactly
// as statetransition.Context and query.Service already document.
type Platform struct {
	logger log.Logger

	Store      *grove.Store
	IndexCache *index.Cache

	Contracts  map[identifier.Identifier]document.DataContract
	Identities map[identifier.Identifier]*identity.Identity
	Nonces     *identity.NonceStore
	Epoch      *epoch.State

	Query      *query.Service
	Submission *query.Submission
}

// NewPlatform wires a fresh Platform over db, ready to load its latest
// committed version. logger and db must both be non-nil.
func NewPlatform(logger log.Logger, db dbm.DB, maxQueryLimit uint32) (*Platform, error) {
	if logger == nil {
		panic("app: logger is nil")
	}
	if db == nil {
		panic("app: db is nil")
	}

	store := grove.New(db)
	if _, err := store.LoadLatest(); err != nil {
		return nil, err
	}

	p := &Platform{
		logger:     logger.With("module", "app"),
		Store:      store,
		IndexCache: index.NewCache(),
		Contracts:  make(map[identifier.Identifier]document.DataContract),
		Identities: make(map[identifier.Identifier]*identity.Identity),
		Nonces:     identity.NewNonceStore(),
		Epoch:      epoch.NewState(),
		Submission: query.NewSubmission(),
	}
	p.Query = query.NewService(store, maxQueryLimit)
	return p, nil
}

// Logger returns this platform's scoped logger.
func (p *Platform) Logger() log.Logger {
	return p.logger
}

// RegisterContract installs contract into both the transition-processing
// registry and the query registry, so writes and reads see the same
// definition.
func (p *Platform) RegisterContract(contract document.DataContract, recordedAtMillis int64) {
	p.Contracts[contract.ID] = contract
	p.Query.RegisterContract(contract, recordedAtMillis)
}

// RegisterIdentity installs ident into both the transition-processing
// registry and the query registry.
func (p *Platform) RegisterIdentity(ident *identity.Identity) {
	p.Identities[ident.ID] = ident
	p.Query.Identities[ident.ID] = ident
}

// transitionContext builds the statetransition.Context a block's
// transitions are applied against, sharing this platform's store,
// registries, and nonce/epoch state.
func (p *Platform) transitionContext(blockMillis int64) *statetransition.Context {
	return &statetransition.Context{
		Store:        p.Store,
		IndexCache:   p.IndexCache,
		Contracts:    p.Contracts,
		Identities:   p.Identities,
		Nonces:       p.Nonces,
		CurrentEpoch: p.Epoch.CurrentEpoch,
		BlockMillis:  blockMillis,
	}
}
