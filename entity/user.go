package entity

import "github.com/shopspring/decimal"

type User struct {
	TelegramID int64           `json:"telegram_id"`
	FullName   string          `json:"nome_completo"`
	Balance    decimal.Decimal `json:"saldo_carteira"`
	ReferrerID *int64          `json:"referrer_id"`
}

type RegisterRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	FullName   string `json:"nome_completo" validate:"required,max=255"`
	ReferrerID *int64 `json:"referrer_id" validate:"omitempty"`
}

// NewRegisterRequest builds a registration payload, dropping a self-referral.
func NewRegisterRequest(telegramID int64, fullName string, referrerID *int64) RegisterRequest {
	if referrerID != nil && *referrerID == telegramID {
		referrerID = nil
	}
	return RegisterRequest{
		TelegramID: telegramID,
		FullName:   fullName,
		ReferrerID: referrerID,
	}
}
