package chat

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const referralPrefix = "ref_"

// ParseAmount reads a positive decimal written with a comma or dot separator.
// Amounts finer than a cent are rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() || !amount.Round(2).Equal(amount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// IsValidEmail accepts local@domain where the domain has at least one dot.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// NormalizeGiftCode trims and upper-cases a gift-card code.
func NormalizeGiftCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseReferral extracts the referrer id from a "ref_<id>" start payload.
// A self-referral yields no referrer.
func ParseReferral(payload string, userID int64) *int64 {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, referralPrefix) {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, referralPrefix), 10, 64)
	if err != nil || id <= 0 || id == userID {
		return nil
	}
	return &id
}

// ReferralPayload is the start parameter that credits userID as referrer.
func ReferralPayload(userID int64) string {
	return referralPrefix + strconv.FormatInt(userID, 10)
}
