package entity

import "github.com/shopspring/decimal"

type PurchaseRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	ProductID  string `json:"produto_id" validate:"required"`
	Email      string `json:"email_cliente,omitempty" validate:"omitempty,max=254"`
}

type Purchase struct {
	ID          ID              `json:"id"`
	ProductName string          `json:"produto_nome"`
	Login       string          `json:"login"`
	Password    string          `json:"senha"`
	Email       string          `json:"email_cliente"`
	NewBalance  decimal.Decimal `json:"novo_saldo"`
}

// DeliveredByEmail reports whether credentials are sent to the customer's e-mail instead of the chat.
func (p *Purchase) DeliveredByEmail() bool {
	return p.Login == "" && p.Email != ""
}
