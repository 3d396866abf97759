package ui

import (
	"StreamBot/bot/chat"
	"StreamBot/entity"
	"StreamBot/internal/service/broadcast"
	"StreamBot/internal/service/commerce"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixPaymentWithValidImage(t *testing.T) {
	pix := entity.Pix{CopyPaste: "00020126", QRCode: "data:image/png;base64,aGVsbG8="}
	reply := PixPayment(decimal.RequireFromString("20.5"), pix)

	assert.Equal(t, []byte("hello"), reply.Photo)
	assert.Contains(t, reply.Text, "<code>00020126</code>")
	assert.Contains(t, reply.Text, "R$ 20.50")
	assert.NotEmpty(t, reply.Keyboard.Menu)
}

func TestPixPaymentFallsBackToText(t *testing.T) {
	for _, qr := range []string{"%%%not-base64%%%", "", "data:image/png;base64,"} {
		reply := PixPayment(decimal.NewFromInt(10), entity.Pix{CopyPaste: "000201", QRCode: qr})
		assert.Nil(t, reply.Photo, qr)
		assert.Contains(t, reply.Text, "000201", qr)
	}
}

func TestPurchaseFailureTexts(t *testing.T) {
	balance := PurchaseFailure(&commerce.Rejection{Op: commerce.OpPurchase, Status: 402, Detail: "Saldo insuficiente"})
	assert.Contains(t, balance.Text, "Saldo insuficiente")
	assert.Contains(t, balance.Text, "💳 Carteira")

	stock := PurchaseFailure(&commerce.Rejection{Op: commerce.OpPurchase, Status: 404, Detail: "Not Found"})
	assert.Contains(t, stock.Text, "saldo não foi debitado")
	assert.NotContains(t, stock.Text, "Carteira")

	other := PurchaseFailure(&commerce.Rejection{Op: commerce.OpPurchase, Status: 409, Detail: "<dup>"})
	assert.Contains(t, other.Text, "&lt;dup&gt;")

	down := PurchaseFailure(&commerce.Failure{Op: commerce.OpPurchase, Kind: commerce.FailureUnreachable, Err: errors.New("refused")})
	assert.NotContains(t, down.Text, "refused")
}

func TestFailureHidesTransportDetails(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &commerce.Failure{Op: "x", Kind: commerce.FailureStatus, Status: 500, Err: errors.New("stack trace")})
	assert.Equal(t, Unavailable(), Failure("title", err))

	rej := fmt.Errorf("wrapped: %w", &commerce.Rejection{Status: 400, Detail: "Código inválido"})
	assert.Contains(t, Failure("Falha", rej), "Motivo: Código inválido")
}

func TestProductGridPagination(t *testing.T) {
	products := make([]entity.Product, 19)
	for i := range products {
		products[i] = entity.Product{ID: entity.ID(fmt.Sprint(i + 1)), Name: fmt.Sprintf("P%d", i+1), Price: decimal.NewFromInt(10)}
	}

	first := ProductGrid(products, 1).Keyboard.Inline
	require.Len(t, first, 5)
	assert.Equal(t, "buy:1", first[0][0].Data)
	assert.Equal(t, "catalog:page:2", first[4][2].Data)
	assert.Equal(t, "1/3", first[4][1].Text)

	last := ProductGrid(products, 99).Keyboard.Inline
	require.Len(t, last, 3)
	assert.Equal(t, "buy:17", last[0][0].Data)
	assert.Equal(t, "buy:19", last[1][0].Data)
	assert.Equal(t, "catalog:page:2", last[2][0].Data)
}

func TestSmallCatalogHasNoNavigation(t *testing.T) {
	rows := ProductGrid([]entity.Product{{ID: "a", Name: "A"}}, 1).Keyboard.Inline
	require.Len(t, rows, 1)
	assert.Equal(t, "buy:a", rows[0][0].Data)
}

func TestProductDetailBuyButton(t *testing.T) {
	reply := ProductDetail(entity.Product{ID: "7", Name: "Netflix & Co", Price: decimal.RequireFromString("25.9")})
	assert.Contains(t, reply.Text, "Netflix &amp; Co")
	require.Len(t, reply.Keyboard.Inline, 1)
	assert.Equal(t, "confirm_buy:7", reply.Keyboard.Inline[0][0].Data)
	assert.Contains(t, reply.Keyboard.Inline[0][0].Text, "R$ 25.90")
}

func TestSupportKeyboards(t *testing.T) {
	reply := SupportOrders([]entity.Order{{ID: "3", ProductName: "Max", PurchasedAt: "2024-05-01T10:00:00"}})
	require.Len(t, reply.Keyboard.Inline, 2)
	assert.Equal(t, "support_order:3", reply.Keyboard.Inline[0][0].Data)
	assert.Equal(t, "Max (2024-05-01)", reply.Keyboard.Inline[0][0].Text)
	assert.Equal(t, "support:cancel", reply.Keyboard.Inline[1][0].Data)

	reasons := SupportReasons().Keyboard.Inline
	require.Len(t, reasons, len(entity.TicketReasons)+1)
	assert.Equal(t, "support_reason:LOGIN_INVALIDO", reasons[0][0].Data)
}

func TestBroadcastProgressText(t *testing.T) {
	running := BroadcastProgress(broadcast.Progress{Sent: 25, Succeeded: 24, Failed: 1, Total: 100})
	assert.Contains(t, running.Text, "(25%)")

	done := BroadcastProgress(broadcast.Progress{Sent: 100, Succeeded: 90, Failed: 10, Total: 100, Done: true})
	assert.Contains(t, done.Text, "Enviado com sucesso: 90")
	assert.Contains(t, done.Text, "Falhas (bot bloqueado): 10")
}

func TestAffiliateLink(t *testing.T) {
	assert.Equal(t, "https://t.me/MyBot?start=ref_42", AffiliateLink("MyBot", 42))
}

func TestHomeCarriesMainMenu(t *testing.T) {
	reply := Home(chat.MsgCancelled)
	assert.Equal(t, BtnProducts, reply.Keyboard.Menu[0][0].Text)
}
