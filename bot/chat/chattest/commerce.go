package chattest

import (
	"StreamBot/entity"
	"context"

	"github.com/shopspring/decimal"
)

// Commerce is a scriptable commerce gateway. Unset functions return zero values.
type Commerce struct {
	RegisterUserFn     func(telegramID int64, fullName string, referrerID *int64) (*entity.User, error)
	ListProductsFn     func() ([]entity.Product, error)
	CreateRechargeFn   func(telegramID int64, fullName string, amount decimal.Decimal) (*entity.Pix, error)
	PurchaseFn         func(telegramID int64, productID, email string) (*entity.Purchase, error)
	RedeemGiftCardFn   func(telegramID int64, code string) (*entity.Redemption, error)
	RecentOrdersFn     func(telegramID int64) ([]entity.Order, error)
	CreateTicketFn     func(telegramID int64, orderID, reason string) (*entity.Ticket, error)
	CreateSuggestionFn func(telegramID int64, name string) (*entity.Suggestion, error)
	AllUserIDsFn       func() ([]int64, error)
}

func (c *Commerce) RegisterUser(_ context.Context, telegramID int64, fullName string, referrerID *int64) (*entity.User, error) {
	if c.RegisterUserFn == nil {
		return &entity.User{TelegramID: telegramID, FullName: fullName}, nil
	}
	return c.RegisterUserFn(telegramID, fullName, referrerID)
}

func (c *Commerce) ListProducts(_ context.Context) ([]entity.Product, error) {
	if c.ListProductsFn == nil {
		return nil, nil
	}
	return c.ListProductsFn()
}

func (c *Commerce) CreateRecharge(_ context.Context, telegramID int64, fullName string, amount decimal.Decimal) (*entity.Pix, error) {
	if c.CreateRechargeFn == nil {
		return &entity.Pix{}, nil
	}
	return c.CreateRechargeFn(telegramID, fullName, amount)
}

func (c *Commerce) Purchase(_ context.Context, telegramID int64, productID, email string) (*entity.Purchase, error) {
	if c.PurchaseFn == nil {
		return &entity.Purchase{}, nil
	}
	return c.PurchaseFn(telegramID, productID, email)
}

func (c *Commerce) RedeemGiftCard(_ context.Context, telegramID int64, code string) (*entity.Redemption, error) {
	if c.RedeemGiftCardFn == nil {
		return &entity.Redemption{}, nil
	}
	return c.RedeemGiftCardFn(telegramID, code)
}

func (c *Commerce) RecentOrders(_ context.Context, telegramID int64) ([]entity.Order, error) {
	if c.RecentOrdersFn == nil {
		return nil, nil
	}
	return c.RecentOrdersFn(telegramID)
}

func (c *Commerce) CreateTicket(_ context.Context, telegramID int64, orderID, reason string) (*entity.Ticket, error) {
	if c.CreateTicketFn == nil {
		return &entity.Ticket{}, nil
	}
	return c.CreateTicketFn(telegramID, orderID, reason)
}

func (c *Commerce) CreateSuggestion(_ context.Context, telegramID int64, name string) (*entity.Suggestion, error) {
	if c.CreateSuggestionFn == nil {
		return &entity.Suggestion{}, nil
	}
	return c.CreateSuggestionFn(telegramID, name)
}

func (c *Commerce) AllUserIDs(_ context.Context) ([]int64, error) {
	if c.AllUserIDsFn == nil {
		return nil, nil
	}
	return c.AllUserIDsFn()
}
