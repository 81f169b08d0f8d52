package statetransition

import "github.com/platformdrive/drivecore/pkg/document"

// operationHandler applies one DocumentOperation and reports the document it
// left behind (nil for Delete) plus the number of storage-payload bytes the
// operation wrote, for fee pricing.
type operationHandler func(c *Context, t *Transition, op DocumentOperation) (resultDoc *document.Document, storageBytes uint64, err error)

type dispatchKey struct {
	Kind            OperationKind
	ProtocolVersion uint32
}

// dispatchTable looks a transition's protocol version up alongside its
// operation kind, letting a future protocol version introduce or replace a
// handler without touching the ones that still apply to older versions.
var dispatchTable = map[dispatchKey]operationHandler{
	{OperationCreate, CurrentProtocolVersion}:      handleCreate,
	{OperationReplace, CurrentProtocolVersion}:     handleReplace,
	{OperationDelete, CurrentProtocolVersion}:      handleDelete,
	{OperationTransfer, CurrentProtocolVersion}:    handleTransfer,
	{OperationPurchase, CurrentProtocolVersion}:    handlePurchase,
	{OperationUpdatePrice, CurrentProtocolVersion}: handleUpdatePrice,
	{OperationTokenClaim, CurrentProtocolVersion}:  handleTokenClaim,
}

func lookupHandler(kind OperationKind, protocolVersion uint32) (operationHandler, error) {
	h, ok := dispatchTable[dispatchKey{kind, protocolVersion}]
	if !ok {
		return nil, ErrUnknownOperationKind
	}
	return h, nil
}
