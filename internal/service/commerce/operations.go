package commerce

import (
	"StreamBot/entity"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	OpRegisterUser     = "register_user"
	OpListProducts     = "list_products"
	OpCreateRecharge   = "create_recharge"
	OpPurchase         = "purchase"
	OpRedeemGiftCard   = "redeem_gift_card"
	OpRecentOrders     = "recent_orders"
	OpCreateTicket     = "create_ticket"
	OpCreateSuggestion = "create_suggestion"
	OpAllUserIDs       = "all_user_ids"
)

// RegisterUser creates or refreshes the user record; a self-referral is sent as null.
func (s *Service) RegisterUser(ctx context.Context, telegramID int64, fullName string, referrerID *int64) (*entity.User, error) {
	payload := entity.NewRegisterRequest(telegramID, fullName, referrerID)
	var user entity.User
	if err := s.do(ctx, OpRegisterUser, http.MethodPost, "/usuarios/register", nil, &payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := s.do(ctx, OpListProducts, http.MethodGet, "/produtos/", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) CreateRecharge(ctx context.Context, telegramID int64, fullName string, amount decimal.Decimal) (*entity.Pix, error) {
	payload := entity.RechargeRequest{
		TelegramID: telegramID,
		FullName:   fullName,
		Amount:     amount,
	}
	var pix entity.Pix
	if err := s.do(ctx, OpCreateRecharge, http.MethodPost, "/recargas/", nil, &payload, &pix); err != nil {
		return nil, err
	}
	return &pix, nil
}

// Purchase buys a product. A *Rejection with InsufficientBalance or OutOfStock is expected traffic.
func (s *Service) Purchase(ctx context.Context, telegramID int64, productID, email string) (*entity.Purchase, error) {
	payload := entity.PurchaseRequest{
		TelegramID: telegramID,
		ProductID:  productID,
		Email:      email,
	}
	var purchase entity.Purchase
	if err := s.do(ctx, OpPurchase, http.MethodPost, "/compras/", nil, &payload, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *Service) RedeemGiftCard(ctx context.Context, telegramID int64, code string) (*entity.Redemption, error) {
	payload := entity.RedeemRequest{
		TelegramID: telegramID,
		Code:       strings.ToUpper(strings.TrimSpace(code)),
	}
	var redemption entity.Redemption
	if err := s.do(ctx, OpRedeemGiftCard, http.MethodPost, "/giftcards/resgatar", nil, &payload, &redemption); err != nil {
		return nil, err
	}
	return &redemption, nil
}

// RecentOrders returns at most the configured number of orders, newest first as served.
func (s *Service) RecentOrders(ctx context.Context, telegramID int64) ([]entity.Order, error) {
	query := url.Values{}
	query.Set("telegram_id", strconv.FormatInt(telegramID, 10))

	var orders []entity.Order
	if err := s.do(ctx, OpRecentOrders, http.MethodGet, "/usuarios/meus-pedidos", query, nil, &orders); err != nil {
		return nil, err
	}
	if len(orders) > s.ordersLimit {
		orders = orders[:s.ordersLimit]
	}
	return orders, nil
}

func (s *Service) CreateTicket(ctx context.Context, telegramID int64, orderID, reason string) (*entity.Ticket, error) {
	payload := entity.TicketRequest{
		TelegramID: telegramID,
		OrderID:    orderID,
		Reason:     reason,
	}
	var ticket entity.Ticket
	if err := s.do(ctx, OpCreateTicket, http.MethodPost, "/tickets/", nil, &payload, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Service) CreateSuggestion(ctx context.Context, telegramID int64, name string) (*entity.Suggestion, error) {
	payload := entity.SuggestionRequest{
		TelegramID: telegramID,
		Name:       strings.TrimSpace(name),
	}
	var suggestion entity.Suggestion
	if err := s.do(ctx, OpCreateSuggestion, http.MethodPost, "/sugestoes/", nil, &payload, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (s *Service) AllUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.do(ctx, OpAllUserIDs, http.MethodGet, "/usuarios/all-ids", nil, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
