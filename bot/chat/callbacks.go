package chat

// Callback namespaces. Callback data is "<namespace>:<payload>".
const (
	NsCatalog       = "catalog"
	NsBuy           = "buy"
	NsConfirmBuy    = "confirm_buy"
	NsBuyEmail      = "buy_email"
	NsSupport       = "support"
	NsSupportOrder  = "support_order"
	NsSupportReason = "support_reason"
	NsBroadcast     = "broadcast"
)

// Callback payload actions.
const (
	ActionYes     = "yes"
	ActionRetry   = "retry"
	ActionConfirm = "confirm"
	ActionPage    = "page"
	ActionNoop    = "noop"
)
