package statetransition

import (
	"crypto/sha256"
	"testing"

	dbm "github.com/cosmos/cosmos-db"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/platformdrive/drivecore/pkg/distribution"
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/identity"
	"github.com/platformdrive/drivecore/pkg/index"
)

func widgetContract(contractID, ownerID identifier.Identifier) document.DataContract {
	dt := document.DocumentType{
		Name: "widget",
		Properties: document.OrderedProperties{
			{Name: "name", Def: document.PropertyDef{Name: "name", Kind: document.KindString, Required: true}},
			{Name: "price", Def: document.PropertyDef{Name: "price", Kind: document.KindInteger, Required: true}},
		},
		Mutable:      true,
		CanBeDeleted: true,
	}
	return document.DataContract{
		ID:            contractID,
		OwnerID:       ownerID,
		Version:       1,
		DocumentTypes: map[string]document.DocumentType{"widget": dt},
	}
}

type testIdentity struct {
	id    identifier.Identifier
	priv  *secp256k1.PrivateKey
	ident *identity.Identity
}

var nextTestIdentityByte byte = 1

func newTestIdentity(t *testing.T, balance uint64) testIdentity {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	idBytes := make([]byte, 32)
	idBytes[0] = nextTestIdentityByte
	nextTestIdentityByte++
	id := identifier.MustFromBytes(idBytes)

	ident := &identity.Identity{
		ID:      id,
		Balance: balance,
		PublicKeys: []identity.PublicKey{
			{
				ID:      0,
				Type:    identity.KeyTypeECDSASecp256k1,
				Purpose: identity.PurposeAuthentication,
				Data:    priv.PubKey().SerializeCompressed(),
			},
		},
	}
	return testIdentity{id: id, priv: priv, ident: ident}
}

func sign(t *testing.T, priv *secp256k1.PrivateKey, message []byte) []byte {
	t.Helper()
	hash := sha256.Sum256(message)
	sig := ecdsa.Sign(priv, hash[:])
	return sig.Serialize()
}

func newTestContext(t *testing.T, contract document.DataContract, ti testIdentity) *Context {
	t.Helper()
	store := grove.New(dbm.NewMemDB())
	_, err := store.LoadLatest()
	require.NoError(t, err)

	identityID := ti.id
	idCopy := *ti.ident

	return &Context{
		Store:      store,
		IndexCache: index.NewCache(),
		Contracts:  map[identifier.Identifier]document.DataContract{contract.ID: contract},
		Identities: map[identifier.Identifier]*identity.Identity{identityID: &idCopy},
		Nonces:     identity.NewNonceStore(),
		BlockMillis: 1000,
	}
}

func makeTransition(t *testing.T, ti testIdentity, nonce uint64, ops []DocumentOperation) *Transition {
	t.Helper()
	canonical := []byte("transition-payload")
	return &Transition{
		ProtocolVersion: CurrentProtocolVersion,
		IdentityID:      ti.id,
		KeyID:           0,
		Nonce:           nonce,
		Operations:      ops,
		CanonicalBytes:  canonical,
		Signature:       sign(t, ti.priv, canonical),
	}
}

func TestApplyCreateChargesFeeAndStoresDocument(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)

	op := DocumentOperation{
		Kind:         OperationCreate,
		ContractID:   contractID,
		DocumentType: "widget",
		Entropy:      []byte("entropy-1"),
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget")},
			{Name: "price", Value: document.IntegerValue(500)},
		},
	}
	transition := makeTransition(t, ti, 1, []DocumentOperation{op})

	result, err := Apply(c, transition)
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	require.Greater(t, result.StorageCredits, uint64(0))

	balanceAfter := c.Identities[ti.id].Balance
	require.Less(t, balanceAfter, uint64(10_000_000))
	require.Equal(t, uint64(1), c.Nonces.Current(identity.NonceKey{IdentityID: ti.id, ContractID: contractID}))
}

func TestApplyRejectsNonceReplay(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)

	op := DocumentOperation{
		Kind:         OperationCreate,
		ContractID:   contractID,
		DocumentType: "widget",
		Entropy:      []byte("entropy-1"),
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget")},
			{Name: "price", Value: document.IntegerValue(500)},
		},
	}
	first := makeTransition(t, ti, 1, []DocumentOperation{op})
	_, err := Apply(c, first)
	require.NoError(t, err)

	replay := makeTransition(t, ti, 1, []DocumentOperation{op})
	_, err = Apply(c, replay)
	require.ErrorIs(t, err, identity.ErrInvalidNonce)
}

func TestApplyRejectsInsufficientBalanceWithNoStateChange(t *testing.T) {
	ti := newTestIdentity(t, 0)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)

	op := DocumentOperation{
		Kind:         OperationCreate,
		ContractID:   contractID,
		DocumentType: "widget",
		Entropy:      []byte("entropy-1"),
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget")},
			{Name: "price", Value: document.IntegerValue(500)},
		},
	}
	transition := makeTransition(t, ti, 1, []DocumentOperation{op})

	_, err := Apply(c, transition)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	docID := deriveDocumentID(contractID, "widget", ti.id, op.Entropy)
	payload, err := fetchDocumentPayload(c.Store, contractID, contract.DocumentTypes["widget"], docID)
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestApplyRejectsMixedContractBatch(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	otherContractID := identifier.Identifier{8}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)
	c.Contracts[otherContractID] = widgetContract(otherContractID, ti.id)

	ops := []DocumentOperation{
		{Kind: OperationCreate, ContractID: contractID, DocumentType: "widget", Entropy: []byte("a"),
			Properties: document.OrderedValues{
				{Name: "name", Value: document.StringValue("a")},
				{Name: "price", Value: document.IntegerValue(1)},
			}},
		{Kind: OperationCreate, ContractID: otherContractID, DocumentType: "widget", Entropy: []byte("b"),
			Properties: document.OrderedValues{
				{Name: "name", Value: document.StringValue("b")},
				{Name: "price", Value: document.IntegerValue(1)},
			}},
	}
	transition := makeTransition(t, ti, 1, ops)

	_, err := Apply(c, transition)
	require.ErrorIs(t, err, ErrMixedContractBatch)
}

func TestApplyReplaceEnforcesOwnershipAndRevision(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	other := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)
	c.Identities[other.id] = other.ident

	createOp := DocumentOperation{
		Kind:         OperationCreate,
		ContractID:   contractID,
		DocumentType: "widget",
		Entropy:      []byte("entropy-1"),
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget")},
			{Name: "price", Value: document.IntegerValue(500)},
		},
	}
	createTransition := makeTransition(t, ti, 1, []DocumentOperation{createOp})
	createResult, err := Apply(c, createTransition)
	require.NoError(t, err)

	var docID identifier.Identifier
	for id := range createResult.Documents {
		docID = id
	}

	replaceOp := DocumentOperation{
		Kind:             OperationReplace,
		ContractID:       contractID,
		DocumentType:     "widget",
		DocumentID:       docID,
		ExpectedRevision: document.InitialRevision,
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget-2")},
			{Name: "price", Value: document.IntegerValue(600)},
		},
	}
	badTransition := makeTransition(t, other, 1, []DocumentOperation{replaceOp})
	_, err = Apply(c, badTransition)
	require.ErrorIs(t, err, ErrNotOwner)

	goodTransition := makeTransition(t, ti, 2, []DocumentOperation{replaceOp})
	result, err := Apply(c, goodTransition)
	require.NoError(t, err)
	updated := result.Documents[docID]
	require.NotNil(t, updated)
	require.Equal(t, document.InitialRevision+1, updated.Revision)
	price, ok := updated.Get("price")
	require.True(t, ok)
	require.Equal(t, int64(600), price.Int)
}

func TestApplyTokenClaimCreditsDistributionAmount(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)

	op := DocumentOperation{
		Kind:                     OperationTokenClaim,
		ContractID:               contractID,
		DocumentType:             "widget",
		DistributionCurve:        distribution.FixedAmount(250),
		ContractRegistrationStep: 0,
		ClaimMoment:              10,
	}
	transition := makeTransition(t, ti, 1, []DocumentOperation{op})

	balanceBefore := c.Identities[ti.id].Balance
	_, err := Apply(c, transition)
	require.NoError(t, err)
	require.Equal(t, balanceBefore+250, c.Identities[ti.id].Balance)
}

func TestApplyRollsBackTokenClaimCreditWhenLaterOperationFails(t *testing.T) {
	ti := newTestIdentity(t, 10_000_000)
	other := newTestIdentity(t, 10_000_000)
	contractID := identifier.Identifier{7}
	contract := widgetContract(contractID, ti.id)
	c := newTestContext(t, contract, ti)
	c.Identities[other.id] = other.ident

	createOp := DocumentOperation{
		Kind:         OperationCreate,
		ContractID:   contractID,
		DocumentType: "widget",
		Entropy:      []byte("entropy-1"),
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget")},
			{Name: "price", Value: document.IntegerValue(500)},
		},
	}
	createTransition := makeTransition(t, other, 1, []DocumentOperation{createOp})
	createResult, err := Apply(c, createTransition)
	require.NoError(t, err)

	var docID identifier.Identifier
	for id := range createResult.Documents {
		docID = id
	}

	claimOp := DocumentOperation{
		Kind:                     OperationTokenClaim,
		ContractID:               contractID,
		DocumentType:             "widget",
		DistributionCurve:        distribution.FixedAmount(250),
		ContractRegistrationStep: 0,
		ClaimMoment:              10,
	}
	replaceOp := DocumentOperation{
		Kind:             OperationReplace,
		ContractID:       contractID,
		DocumentType:     "widget",
		DocumentID:       docID,
		ExpectedRevision: document.InitialRevision,
		Properties: document.OrderedValues{
			{Name: "name", Value: document.StringValue("gadget-2")},
			{Name: "price", Value: document.IntegerValue(600)},
		},
	}

	balanceBefore := c.Identities[ti.id].Balance
	batch := makeTransition(t, ti, 1, []DocumentOperation{claimOp, replaceOp})
	_, err = Apply(c, batch)
	require.ErrorIs(t, err, ErrNotOwner)
	require.Equal(t, balanceBefore, c.Identities[ti.id].Balance)
}
