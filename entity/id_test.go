package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsStringsAndNumbers(t *testing.T) {
	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "pedido_id": "p-1"}`), &ticket))
	assert.Equal(t, ID("42"), ticket.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc"}`), &ticket))
	assert.Equal(t, "abc", ticket.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &ticket))
	assert.Empty(t, ticket.ID)
}

func TestNewRegisterRequestDropsSelfReferral(t *testing.T) {
	self := int64(100)
	req := NewRegisterRequest(100, "Ana", &self)
	assert.Nil(t, req.ReferrerID)

	other := int64(200)
	req = NewRegisterRequest(100, "Ana", &other)
	require.NotNil(t, req.ReferrerID)
	assert.Equal(t, int64(200), *req.ReferrerID)
}

func TestRechargeRequestMarshalsAmountAsNumber(t *testing.T) {
	amount, err := decimal.NewFromString("20.5")
	require.NoError(t, err)
	body, err := json.Marshal(RechargeRequest{TelegramID: 1, FullName: "Ana", Amount: amount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"telegram_id":1,"nome_completo":"Ana","valor":20.50}`, string(body))
}

func TestFindProduct(t *testing.T) {
	products := []Product{{ID: "a", Name: "Netflix"}, {ID: "b", Name: "Max"}}
	p, ok := FindProduct(products, "b")
	require.True(t, ok)
	assert.Equal(t, "Max", p.Name)

	_, ok = FindProduct(products, "c")
	assert.False(t, ok)
}
