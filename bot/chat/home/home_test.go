package home_test

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/chattest"
	"StreamBot/bot/chat/home"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(c *chattest.Commerce) (*chat.ChatEngine, *chattest.Messenger) {
	engine, _ := chattest.NewEngine()
	engine.RegisterHandler(home.NewStart(c, chattest.Logger()))
	engine.RegisterHandler(home.NewProducts(c))
	engine.RegisterHandler(home.NewAffiliate("StreamBot"))
	engine.SetHomeMenu(ui.Home)
	return engine, chattest.NewMessenger()
}

func TestStartWithReferral(t *testing.T) {
	var got *int64
	c := &chattest.Commerce{RegisterUserFn: func(id int64, _ string, ref *int64) (*entity.User, error) {
		got = ref
		return &entity.User{TelegramID: id, Balance: decimal.NewFromInt(3)}, nil
	}}
	engine, m := setup(c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "start", "ref_77")))

	require.NotNil(t, got)
	assert.Equal(t, int64(77), *got)
	assert.Contains(t, m.LastText(), "R$ 3.00")
	assert.Contains(t, m.LastText(), "convite")
}

func TestStartSelfReferralDropped(t *testing.T) {
	var got *int64
	called := false
	c := &chattest.Commerce{RegisterUserFn: func(id int64, _ string, ref *int64) (*entity.User, error) {
		called = true
		got = ref
		return &entity.User{TelegramID: id}, nil
	}}
	engine, m := setup(c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "start", "ref_1")))

	assert.True(t, called)
	assert.Nil(t, got)
	assert.NotContains(t, m.LastText(), "convite")
}

func TestProductsPagination(t *testing.T) {
	products := make([]entity.Product, 10)
	for i := range products {
		products[i] = entity.Product{ID: entity.ID(fmt.Sprint(i + 1)), Name: fmt.Sprint("P", i+1)}
	}
	c := &chattest.Commerce{ListProductsFn: func() ([]entity.Product, error) { return products, nil }}
	engine, m := setup(c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, ui.BtnProducts)))
	assert.Equal(t, "buy:1", m.LastReply().Keyboard.Inline[0][0].Data)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Callback(1, "catalog:page:2")))
	edit := m.LastEdit()
	assert.Equal(t, int64(7), edit.MessageID)
	assert.Equal(t, "buy:9", edit.Reply.Keyboard.Inline[0][0].Data)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Callback(1, "buy:10")))
	assert.Equal(t, "confirm_buy:10", m.LastReply().Keyboard.Inline[0][0].Data)
}

func TestEmptyCatalog(t *testing.T) {
	engine, m := setup(&chattest.Commerce{})
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "produtos", "")))
	assert.Contains(t, m.LastText(), "Nenhum produto")
}

func TestAffiliateLink(t *testing.T) {
	engine, m := setup(&chattest.Commerce{})
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, ui.BtnAffiliate)))
	assert.Contains(t, m.LastText(), "https://t.me/StreamBot?start=ref_1")
}

func TestUnknownTextGetsHelp(t *testing.T) {
	engine, m := setup(&chattest.Commerce{})
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, "olá")))
	assert.Equal(t, chat.MsgHelp, m.LastText())
	assert.NotEmpty(t, m.LastReply().Keyboard.Menu)
}
