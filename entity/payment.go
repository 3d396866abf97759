package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type RechargeRequest struct {
	TelegramID int64           `json:"telegram_id" validate:"required"`
	FullName   string          `json:"nome_completo" validate:"required,max=255"`
	Amount     decimal.Decimal `json:"valor" validate:"gt=0"`
}

// MarshalJSON sends the amount as a JSON number with two decimals.
func (r RechargeRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TelegramID int64       `json:"telegram_id"`
		FullName   string      `json:"nome_completo"`
		Amount     json.Number `json:"valor"`
	}{
		TelegramID: r.TelegramID,
		FullName:   r.FullName,
		Amount:     json.Number(r.Amount.StringFixed(2)),
	})
}

// Pix is a PIX charge: a copy-and-paste code plus its QR image as base64 (optionally a data URI).
type Pix struct {
	CopyPaste string `json:"pix_copia_e_cola"`
	QRCode    string `json:"pix_qr_code_base64"`
}
