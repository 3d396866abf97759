package entity

import "github.com/shopspring/decimal"

type RedeemRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Code       string `json:"codigo" validate:"required,max=64"`
}

type Redemption struct {
	Amount     decimal.Decimal `json:"valor_resgatado"`
	NewBalance decimal.Decimal `json:"novo_saldo_total"`
}
