package query

import (
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/identity"
	"github.com/platformdrive/drivecore/pkg/index"
)

// ProtocolMaxLimit is the hard ceiling every query-RPC path enforces,
// independent of any configured MAX_QUERY_LIMIT: a limit above this value
// is always rejected as invalid.
const ProtocolMaxLimit = 65535

// ContractVersion is one recorded revision of a data contract, kept so
// GetDataContractHistory has something to page through.
type ContractVersion struct {
	Contract       document.DataContract
	RecordedAtMillis int64
}

// Service answers the read-only query-RPC surface against a grove store and
// the same in-memory contract/identity registry statetransition.Context
// reads. MaxQueryLimit is the configured ceiling (ambient, orchestration-only);
// it never exceeds ProtocolMaxLimit.
type Service struct {
	Store *grove.Store

	Contracts        map[identifier.Identifier]document.DataContract
	ContractHistory  map[identifier.Identifier][]ContractVersion
	Identities       map[identifier.Identifier]*identity.Identity

	MaxQueryLimit uint32
}

// NewService constructs a Service with maxQueryLimit clamped to
// ProtocolMaxLimit.
func NewService(store *grove.Store, maxQueryLimit uint32) *Service {
	if maxQueryLimit == 0 || maxQueryLimit > ProtocolMaxLimit {
		maxQueryLimit = ProtocolMaxLimit
	}
	return &Service{
		Store:           store,
		Contracts:       make(map[identifier.Identifier]document.DataContract),
		ContractHistory: make(map[identifier.Identifier][]ContractVersion),
		Identities:      make(map[identifier.Identifier]*identity.Identity),
		MaxQueryLimit:   maxQueryLimit,
	}
}

// RegisterContract records contract as the current version of its id and
// appends it to that contract's history.
func (s *Service) RegisterContract(contract document.DataContract, recordedAtMillis int64) {
	s.Contracts[contract.ID] = contract
	s.ContractHistory[contract.ID] = append(s.ContractHistory[contract.ID], ContractVersion{
		Contract:         contract,
		RecordedAtMillis: recordedAtMillis,
	})
}

// effectiveLimit enforces the protocol ceiling and clamps to the
// configured MaxQueryLimit, returning the limit an executing query should
// actually use.
func (s *Service) effectiveLimit(requested uint32) (uint32, error) {
	if requested > ProtocolMaxLimit {
		return 0, ErrInvalidLimit
	}
	if requested == 0 || requested > s.MaxQueryLimit {
		return s.MaxQueryLimit, nil
	}
	return requested, nil
}

// IdentityResult carries a deserialized identity. Proof is never set:
// GetIdentity returns ErrUnsupported when prove is true.
type IdentityResult struct {
	Identity *identity.Identity
	Proof    *grove.Proof
}

func (s *Service) GetIdentity(id identifier.Identifier, prove bool) (IdentityResult, error) {
	ident, ok := s.Identities[id]
	if !ok {
		return IdentityResult{}, ErrNotFound
	}
	if !prove {
		return IdentityResult{Identity: ident}, nil
	}
	return IdentityResult{}, ErrUnsupported
}

func (s *Service) GetIdentityBalance(id identifier.Identifier) (uint64, error) {
	ident, ok := s.Identities[id]
	if !ok {
		return 0, ErrNotFound
	}
	return ident.Balance, nil
}

// KeySelector discriminates the three shapes get_identity_keys accepts.
type KeySelector struct {
	All      bool
	KeyIDs   []uint32
	Purposes []identity.Purpose
}

func (s *Service) GetIdentityKeys(id identifier.Identifier, sel KeySelector, limit, offset uint32) ([]identity.PublicKey, error) {
	ident, ok := s.Identities[id]
	if !ok {
		return nil, ErrNotFound
	}
	limit, err := s.effectiveLimit(limit)
	if err != nil {
		return nil, err
	}

	matches := make([]identity.PublicKey, 0, len(ident.PublicKeys))
	for _, key := range ident.PublicKeys {
		if keyMatches(key, sel) {
			matches = append(matches, key)
		}
	}
	return paginate(matches, limit, offset), nil
}

func keyMatches(key identity.PublicKey, sel KeySelector) bool {
	if sel.All {
		return true
	}
	for _, id := range sel.KeyIDs {
		if key.ID == id {
			return true
		}
	}
	for _, purpose := range sel.Purposes {
		if key.Purpose == purpose {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset uint32) []T {
	if int(offset) >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && uint32(len(items)) > limit {
		items = items[:limit]
	}
	return items
}

// GetIdentitiesByPublicKeyHash finds every identity carrying a public key
// whose 20-byte RIPEMD160(SHA256(key)) hash is hash. Dash-style identity
// lookups by key hash scan the small number of keys an identity carries
// rather than a maintained hash index, since no identity-key-hash index is
// part of the storage layout this package reads.
func (s *Service) GetIdentitiesByPublicKeyHash(hash []byte) ([]*identity.Identity, error) {
	var matches []*identity.Identity
	for _, ident := range s.Identities {
		for _, key := range ident.PublicKeys {
			if identity.KeyHashMatches(key, hash) {
				matches = append(matches, ident)
				break
			}
		}
	}
	return matches, nil
}

// ContractResult carries a deserialized contract. Proof is never set:
// GetDataContract returns ErrUnsupported when prove is true.
type ContractResult struct {
	Contract document.DataContract
	Proof    *grove.Proof
}

func (s *Service) GetDataContract(id identifier.Identifier, prove bool) (ContractResult, error) {
	contract, ok := s.Contracts[id]
	if !ok {
		return ContractResult{}, ErrNotFound
	}
	if !prove {
		return ContractResult{Contract: contract}, nil
	}
	return ContractResult{}, ErrUnsupported
}

func (s *Service) GetDataContractHistory(id identifier.Identifier, startMillis int64, limit, offset uint32) ([]ContractVersion, error) {
	history, ok := s.ContractHistory[id]
	if !ok {
		return nil, ErrNotFound
	}
	limit, err := s.effectiveLimit(limit)
	if err != nil {
		return nil, err
	}

	filtered := make([]ContractVersion, 0, len(history))
	for _, v := range history {
		if v.RecordedAtMillis >= startMillis {
			filtered = append(filtered, v)
		}
	}
	return paginate(filtered, limit, offset), nil
}

// DocumentsResult carries either deserialized documents or their proof.
type DocumentsResult struct {
	Documents []document.Document
	Proof     *grove.Proof
}

func (s *Service) GetDocuments(contractID identifier.Identifier, docType string, q index.Query, prove bool) (DocumentsResult, error) {
	contract, ok := s.Contracts[contractID]
	if !ok {
		return DocumentsResult{}, ErrNotFound
	}
	dt, err := contract.DocumentTypeByName(docType)
	if err != nil {
		return DocumentsResult{}, ErrNotFound
	}
	limit, err := s.effectiveLimit(q.Limit)
	if err != nil {
		return DocumentsResult{}, err
	}
	q.Limit = limit
	q.DocumentType = docType

	results, err := index.ExecuteQuery(s.Store, contractID, dt, q)
	if err != nil {
		return DocumentsResult{}, err
	}

	if prove {
		proof, err := index.ProveQuery(s.Store, contractID, dt, q, results)
		if err != nil {
			return DocumentsResult{}, err
		}
		return DocumentsResult{Proof: &proof}, nil
	}

	docs := make([]document.Document, 0, len(results))
	for _, r := range results {
		payload, err := fetchPayload(s.Store, contractID, dt, r.DocumentID)
		if err != nil {
			return DocumentsResult{}, err
		}
		if payload == nil {
			continue
		}
		values, err := document.DecodeDocumentProperties(document.WithSystemProperties(dt).Properties, payload)
		if err != nil {
			return DocumentsResult{}, err
		}
		docs = append(docs, document.FromStorageValues(r.DocumentID, contractID, docType, values))
	}
	return DocumentsResult{Documents: docs}, nil
}

func fetchPayload(store *grove.Store, contractID identifier.Identifier, dt document.DocumentType, docID identifier.Identifier) ([]byte, error) {
	if dt.KeepsHistory {
		payload, err := index.LatestRevision(store, contractID, dt.Name, docID)
		if err != nil {
			return nil, err
		}
		return payload, nil
	}
	el, err := store.Get(index.PrimaryTreePath(contractID, dt.Name), docID.Bytes())
	if err != nil {
		return nil, err
	}
	return el.ItemValue, nil
}

// ProofRequest is one batch of addresses to prove together under a single
// root, matching get_proofs's three independent kinds of address.
type ProofRequest struct {
	IdentityIDs []identifier.Identifier
	ContractIDs []identifier.Identifier
	Documents   []DocumentProofTarget
}

// DocumentProofTarget names one document's storage address for get_proofs.
type DocumentProofTarget struct {
	ContractID   identifier.Identifier
	DocumentType string
	DocumentID   identifier.Identifier
}

func (s *Service) GetProofs(req ProofRequest) (grove.Proof, error) {
	var queries []grove.Query
	for _, id := range req.IdentityIDs {
		queries = append(queries, grove.Query{Path: [][]byte{[]byte("identities")}, Key: id.Bytes()})
	}
	for _, id := range req.ContractIDs {
		queries = append(queries, grove.Query{Path: [][]byte{[]byte("contracts")}, Key: id.Bytes()})
	}
	for _, docTarget := range req.Documents {
		contract, ok := s.Contracts[docTarget.ContractID]
		if !ok {
			return grove.Proof{}, ErrNotFound
		}
		dt, err := contract.DocumentTypeByName(docTarget.DocumentType)
		if err != nil {
			return grove.Proof{}, ErrNotFound
		}
		queries = append(queries, grove.Query{
			Path: index.PrimaryTreePath(docTarget.ContractID, dt.Name),
			Key:  docTarget.DocumentID.Bytes(),
		})
	}
	return s.Store.Prove(queries)
}
