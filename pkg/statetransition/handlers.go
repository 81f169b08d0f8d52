package statetransition

import (
	"crypto/sha256"
	"errors"

	"github.com/platformdrive/drivecore/pkg/distribution"
	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
	"github.com/platformdrive/drivecore/pkg/index"
	"github.com/platformdrive/drivecore/pkg/storageflags"
)

// deriveDocumentID generates a Create operation's document id deterministically
// from (contract_id, document_type, owner_id, entropy).
func deriveDocumentID(contractID identifier.Identifier, docType string, ownerID identifier.Identifier, entropy []byte) identifier.Identifier {
	h := sha256.New()
	h.Write(contractID[:])
	h.Write([]byte(docType))
	h.Write(ownerID[:])
	h.Write(entropy)
	return identifier.MustFromBytes(h.Sum(nil))
}

func lookupDocumentType(c *Context, contractID identifier.Identifier, docType string) (document.DataContract, document.DocumentType, error) {
	dc, err := c.contract(contractID)
	if err != nil {
		return document.DataContract{}, document.DocumentType{}, err
	}
	dt, err := dc.DocumentTypeByName(docType)
	if err != nil {
		return document.DataContract{}, document.DocumentType{}, err
	}
	return dc, dt, nil
}

func storagePayloadSize(dt document.DocumentType, doc document.Document) (uint64, error) {
	payload, err := document.EncodeDocumentProperties(document.WithSystemProperties(dt).Properties, document.StorageValues(doc))
	if err != nil {
		return 0, err
	}
	return uint64(len(payload)), nil
}

// fetchDocumentPayload reads a document's current storage payload, branching
// on whether its type keeps history (resolved through the TerminalKey
// reference) or not (resolved directly under the primary tree). A nil,nil
// result means no such document exists yet.
func fetchDocumentPayload(store *grove.Store, contractID identifier.Identifier, dt document.DocumentType, docID identifier.Identifier) ([]byte, error) {
	if dt.KeepsHistory {
		payload, err := index.LatestRevision(store, contractID, dt.Name, docID)
		if err != nil {
			if errors.Is(err, grove.ErrKeyNotFound) || errors.Is(err, grove.ErrPathNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return payload, nil
	}

	primaryPath := index.PrimaryTreePath(contractID, dt.Name)
	el, err := store.Get(primaryPath, docID.Bytes())
	if err != nil {
		if errors.Is(err, grove.ErrKeyNotFound) || errors.Is(err, grove.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return el.ItemValue, nil
}

func handleCreate(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	_, dt, err := lookupDocumentType(c, op.ContractID, op.DocumentType)
	if err != nil {
		return nil, 0, err
	}

	docID := deriveDocumentID(op.ContractID, op.DocumentType, t.IdentityID, op.Entropy)
	existingPayload, err := fetchDocumentPayload(c.Store, op.ContractID, dt, docID)
	if err != nil {
		return nil, 0, err
	}
	if existingPayload != nil {
		return nil, 0, ErrDocumentAlreadyExists
	}

	doc := document.New(docID, t.IdentityID, op.ContractID, op.DocumentType, op.Properties, c.BlockMillis)

	flags := storageflags.NewSingleEpochOwned(uint16(c.CurrentEpoch), t.IdentityID)
	if err := index.InsertDocument(c.Store, c.IndexCache, op.ContractID, document.WithSystemProperties(dt), document.WithStorageProperties(doc), flags); err != nil {
		return nil, 0, err
	}

	storageBytes, err := storagePayloadSize(dt, doc)
	if err != nil {
		return nil, 0, err
	}
	return &doc, storageBytes, nil
}

func loadExistingDocument(c *Context, contractID identifier.Identifier, docType string, docID identifier.Identifier) (document.Document, error) {
	_, dt, err := lookupDocumentType(c, contractID, docType)
	if err != nil {
		return document.Document{}, err
	}
	payload, err := fetchDocumentPayload(c.Store, contractID, dt, docID)
	if err != nil {
		return document.Document{}, err
	}
	if payload == nil {
		return document.Document{}, ErrDocumentNotFound
	}
	values, err := document.DecodeDocumentProperties(document.WithSystemProperties(dt).Properties, payload)
	if err != nil {
		return document.Document{}, err
	}

	return document.FromStorageValues(docID, contractID, docType, values), nil
}

func handleReplace(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	_, dt, err := lookupDocumentType(c, op.ContractID, op.DocumentType)
	if err != nil {
		return nil, 0, err
	}
	if !dt.Mutable {
		return nil, 0, ErrImmutableDocumentType
	}

	existing, err := loadExistingDocument(c, op.ContractID, op.DocumentType, op.DocumentID)
	if err != nil {
		return nil, 0, err
	}
	if existing.OwnerID != t.IdentityID {
		return nil, 0, ErrNotOwner
	}
	if existing.Revision != op.ExpectedRevision {
		return nil, 0, ErrRevisionMismatch
	}

	updated := existing.ApplyUpdate(op.Properties, c.BlockMillis)
	flags := storageflags.NewSingleEpochOwned(uint16(c.CurrentEpoch), t.IdentityID)
	storageDT := document.WithSystemProperties(dt)
	if err := index.UpdateDocument(c.Store, c.IndexCache, op.ContractID, storageDT, document.WithStorageProperties(existing), document.WithStorageProperties(updated), flags); err != nil {
		return nil, 0, err
	}

	storageBytes, err := storagePayloadSize(dt, updated)
	if err != nil {
		return nil, 0, err
	}
	return &updated, storageBytes, nil
}

func handleDelete(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	_, dt, err := lookupDocumentType(c, op.ContractID, op.DocumentType)
	if err != nil {
		return nil, 0, err
	}
	if !dt.CanBeDeleted {
		return nil, 0, ErrImmutableDocumentType
	}

	existing, err := loadExistingDocument(c, op.ContractID, op.DocumentType, op.DocumentID)
	if err != nil {
		return nil, 0, err
	}
	if existing.OwnerID != t.IdentityID {
		return nil, 0, ErrNotOwner
	}

	if err := index.DeleteDocument(c.Store, op.ContractID, document.WithSystemProperties(dt), document.WithStorageProperties(existing)); err != nil {
		return nil, 0, err
	}
	return nil, 0, nil
}

func transferOwnership(c *Context, t *Transition, op DocumentOperation, newOwner identifier.Identifier) (*document.Document, uint64, error) {
	_, dt, err := lookupDocumentType(c, op.ContractID, op.DocumentType)
	if err != nil {
		return nil, 0, err
	}

	existing, err := loadExistingDocument(c, op.ContractID, op.DocumentType, op.DocumentID)
	if err != nil {
		return nil, 0, err
	}
	if existing.OwnerID != t.IdentityID {
		return nil, 0, ErrNotOwner
	}

	updated := existing.ApplyTransfer(newOwner, c.BlockMillis)
	flags := storageflags.NewSingleEpochOwned(uint16(c.CurrentEpoch), newOwner)
	if err := index.UpdateDocument(c.Store, c.IndexCache, op.ContractID, document.WithSystemProperties(dt), document.WithStorageProperties(existing), document.WithStorageProperties(updated), flags); err != nil {
		return nil, 0, err
	}

	storageBytes, err := storagePayloadSize(dt, updated)
	if err != nil {
		return nil, 0, err
	}
	return &updated, storageBytes, nil
}

func handleTransfer(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	return transferOwnership(c, t, op, op.NewOwner)
}

func handlePurchase(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	existing, err := loadExistingDocument(c, op.ContractID, op.DocumentType, op.DocumentID)
	if err != nil {
		return nil, 0, err
	}
	listedPrice, hasPrice := existing.Get("price")
	if !hasPrice || uint64(listedPrice.Int) != op.Price {
		return nil, 0, ErrPriceMismatch
	}
	return transferOwnership(c, t, op, t.IdentityID)
}

func handleUpdatePrice(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	_, dt, err := lookupDocumentType(c, op.ContractID, op.DocumentType)
	if err != nil {
		return nil, 0, err
	}
	if !dt.Mutable {
		return nil, 0, ErrImmutableDocumentType
	}

	existing, err := loadExistingDocument(c, op.ContractID, op.DocumentType, op.DocumentID)
	if err != nil {
		return nil, 0, err
	}
	if existing.OwnerID != t.IdentityID {
		return nil, 0, ErrNotOwner
	}

	props := make(document.OrderedValues, len(existing.Properties))
	copy(props, existing.Properties)
	replaced := false
	for i, p := range props {
		if p.Name == "price" {
			props[i].Value = document.IntegerValue(int64(op.Price))
			replaced = true
			break
		}
	}
	if !replaced {
		props = append(props, document.NamedValue{Name: "price", Value: document.IntegerValue(int64(op.Price))})
	}

	updated := existing.ApplyUpdate(props, c.BlockMillis)
	flags := storageflags.NewSingleEpochOwned(uint16(c.CurrentEpoch), t.IdentityID)
	if err := index.UpdateDocument(c.Store, c.IndexCache, op.ContractID, document.WithSystemProperties(dt), document.WithStorageProperties(existing), document.WithStorageProperties(updated), flags); err != nil {
		return nil, 0, err
	}

	storageBytes, err := storagePayloadSize(dt, updated)
	if err != nil {
		return nil, 0, err
	}
	return &updated, storageBytes, nil
}

func handleTokenClaim(c *Context, t *Transition, op DocumentOperation) (*document.Document, uint64, error) {
	entitlement, err := distribution.Evaluate(op.DistributionCurve, op.ContractRegistrationStep, op.ClaimMoment)
	if err != nil {
		return nil, 0, err
	}

	ident, err := c.identity(t.IdentityID)
	if err != nil {
		return nil, 0, err
	}
	ident.Balance += entitlement
	return nil, 0, nil
}
