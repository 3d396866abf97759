package entity

// Ticket reasons accepted by the support endpoint.
const (
	ReasonInvalidLogin   = "LOGIN_INVALIDO"
	ReasonNoSubscription = "SEM_ASSINATURA"
	ReasonServiceDown    = "FORA_DO_AR"
	ReasonOther          = "OUTRO"
)

var TicketReasons = []string{ReasonInvalidLogin, ReasonNoSubscription, ReasonServiceDown, ReasonOther}

func IsTicketReason(code string) bool {
	for _, r := range TicketReasons {
		if r == code {
			return true
		}
	}
	return false
}

type TicketRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	OrderID    string `json:"pedido_id" validate:"required"`
	Reason     string `json:"motivo" validate:"required,oneof=LOGIN_INVALIDO SEM_ASSINATURA FORA_DO_AR OUTRO"`
}

type Ticket struct {
	ID      ID     `json:"id"`
	OrderID ID     `json:"pedido_id"`
	Reason  string `json:"motivo"`
	Status  string `json:"status"`
}
