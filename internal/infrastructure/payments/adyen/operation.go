package adyen

// Operation is a gateway capability. Only authorize and capture are implemented;
// the rest are declared so callers get an explicit error instead of a no-op.
type Operation string

const (
	OperationAuthorize          Operation = "authorize"
	OperationCapture            Operation = "capture"
	OperationCompleteAuthorize  Operation = "completeAuthorize"
	OperationPurchase           Operation = "purchase"
	OperationCompletePurchase   Operation = "completePurchase"
	OperationRefund             Operation = "refund"
	OperationVoid               Operation = "void"
	OperationFetchTransaction   Operation = "fetchTransaction"
	OperationCreateCard         Operation = "createCard"
	OperationUpdateCard         Operation = "updateCard"
	OperationDeleteCard         Operation = "deleteCard"
	OperationAcceptNotification Operation = "acceptNotification"
)

func (o Operation) Supported() bool {
	return o == OperationAuthorize || o == OperationCapture
}

// NotSupported returns the error every unimplemented operation yields.
func NotSupported(op Operation) error {
	return &UnsupportedError{Kind: kindOperation, Value: string(op)}
}
