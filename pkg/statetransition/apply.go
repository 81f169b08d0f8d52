package statetransition

import "github.com/platformdrive/drivecore/pkg/fee"

// Apply runs the full transition validator: authenticate and authorize the
// transition, apply its operations in order directly against c.Store's
// working tree, price and debit the resulting fees, and report the touched
// documents.
//
// A signature or nonce failure is caught by validate before anything
// mutates the store, so it is terminal with no state change by
// construction. A per-operation or fee failure discards every store
// mutation and balance credit this call made via rollback, so the whole
// batch is all-or-nothing; the nonce that validate already consumed stays
// consumed. One Apply call is the unit between one grove Commit and the
// next, and a caller processing a block runs Apply once per transition, in
// order, committing after each success.
func Apply(c *Context, t *Transition) (Result, error) {
	if _, err := validate(c, t); err != nil {
		return Result{}, err
	}

	// Handlers such as handleTokenClaim credit c.Identities[t.IdentityID]
	// directly, outside c.Store — a balance snapshot taken up front lets
	// rollback undo that credit too, so the batch stays all-or-nothing
	// across both the tree and the in-memory identity registry.
	var balanceSnapshot uint64
	snapshotIdent := c.Identities[t.IdentityID]
	if snapshotIdent != nil {
		balanceSnapshot = snapshotIdent.Balance
	}
	rollback := func() {
		c.Store.Rollback()
		if snapshotIdent != nil {
			snapshotIdent.Balance = balanceSnapshot
		}
	}

	documents := make(VerifiedDocuments, len(t.Operations))
	feeOperations := make([]fee.Operation, 0, len(t.Operations))

	for _, op := range t.Operations {
		handler, err := lookupHandler(op.Kind, t.ProtocolVersion)
		if err != nil {
			rollback()
			return Result{}, err
		}
		resultDoc, storageBytes, err := handler(c, t, op)
		if err != nil {
			rollback()
			return Result{}, err
		}
		docID := op.DocumentID
		if resultDoc != nil {
			docID = resultDoc.ID
		}
		documents[docID] = resultDoc
		feeOperations = append(feeOperations, fee.Operation{
			ProcessingBytes: storageBytes,
			StorageBytes:    storageBytes,
		})
	}

	storageCredits, processingCredits, err := fee.CalculateFee(feeOperations)
	if err != nil {
		rollback()
		return Result{}, err
	}
	total, ok := addUint64Checked(storageCredits, processingCredits)
	if !ok {
		rollback()
		return Result{}, fee.ErrOverflow
	}

	ident, err := c.identity(t.IdentityID)
	if err != nil {
		rollback()
		return Result{}, err
	}
	if ident.Balance < total {
		rollback()
		return Result{}, ErrInsufficientBalance
	}

	if _, _, err := c.Store.Commit(); err != nil {
		rollback()
		return Result{}, err
	}
	ident.Balance -= total

	return Result{
		Documents:         documents,
		StorageCredits:    storageCredits,
		ProcessingCredits: processingCredits,
	}, nil
}

func addUint64Checked(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
