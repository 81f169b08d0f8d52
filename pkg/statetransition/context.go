package statetransition

import (
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/epoch"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/identity"
	"github.com/platformdrive/drivecore/pkg/index"
)

// Context bundles the collaborators a transition is applied against: the
// authenticated store and its secondary-index cache (component A/D), the
// registered data contracts and identities it reads, and the nonce and
// epoch state it reads and mutates. Constructing this wiring against a real
// contract/identity registry (itself grove-backed) is an app-layer concern;
// this package only needs lookup/mutate access to it.
type Context struct {
	Store      *grove.Store
	IndexCache *index.Cache

	Contracts  map[identifier.Identifier]document.DataContract
	Identities map[identifier.Identifier]*identity.Identity
	Nonces     *identity.NonceStore

	CurrentEpoch epoch.EpochIndex
	BlockMillis  int64
}

func (c *Context) contract(id identifier.Identifier) (document.DataContract, error) {
	dc, ok := c.Contracts[id]
	if !ok {
		return document.DataContract{}, ErrUnknownContract
	}
	return dc, nil
}

func (c *Context) identity(id identifier.Identifier) (*identity.Identity, error) {
	ident, ok := c.Identities[id]
	if !ok {
		return nil, ErrUnknownIdentity
	}
	return ident, nil
}
