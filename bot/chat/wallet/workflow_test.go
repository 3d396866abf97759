package wallet_test

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/chattest"
	"StreamBot/bot/chat/ui"
	"StreamBot/bot/chat/wallet"
	"StreamBot/entity"
	"StreamBot/internal/service/commerce"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, c *chattest.Commerce) (*chat.ChatEngine, *chat.SessionStore, *chattest.Messenger) {
	t.Helper()
	engine, store := chattest.NewEngine()
	engine.RegisterWorkflow(wallet.NewWorkflow(c, chattest.Logger()))
	engine.SetHomeMenu(ui.Home)
	return engine, store, chattest.NewMessenger()
}

func state(t *testing.T, store *chat.SessionStore) chat.State {
	t.Helper()
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	return s.State
}

func TestEntryShowsBalance(t *testing.T) {
	c := &chattest.Commerce{RegisterUserFn: func(id int64, _ string, ref *int64) (*entity.User, error) {
		assert.Nil(t, ref)
		return &entity.User{TelegramID: id, Balance: decimal.RequireFromString("12.5")}, nil
	}}
	engine, store, m := setup(t, c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, ui.BtnWallet)))

	assert.Contains(t, m.LastText(), "R$ 12.50")
	assert.Equal(t, wallet.StepAwaitingAmount, state(t, store).Step)
}

func TestEntryWithApiDown(t *testing.T) {
	c := &chattest.Commerce{RegisterUserFn: func(int64, string, *int64) (*entity.User, error) {
		return nil, &commerce.Failure{Kind: commerce.FailureUnreachable, Err: errors.New("dial")}
	}}
	engine, store, m := setup(t, c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))

	assert.Equal(t, ui.Unavailable(), m.LastText())
	assert.True(t, state(t, store).IsZero())
}

func TestValidAmountsCreateRecharge(t *testing.T) {
	for in, want := range map[string]string{"20": "20", "20.00": "20", "20,50": "20.5"} {
		var got decimal.Decimal
		c := &chattest.Commerce{CreateRechargeFn: func(_ int64, name string, amount decimal.Decimal) (*entity.Pix, error) {
			assert.Equal(t, "Ana Souza", name)
			got = amount
			return &entity.Pix{CopyPaste: "PIXCODE", QRCode: "aGVsbG8="}, nil
		}}
		engine, store, m := setup(t, c)

		require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
		require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, in)))

		assert.Equal(t, want, got.String(), in)
		assert.Contains(t, m.LastText(), "PIXCODE", in)
		assert.Equal(t, []byte("hello"), m.LastReply().Photo, in)
		assert.True(t, state(t, store).IsZero(), in)
	}
}

func TestInvalidAmountsStayInState(t *testing.T) {
	for _, in := range []string{"0", "-5", "abc"} {
		called := false
		c := &chattest.Commerce{CreateRechargeFn: func(int64, string, decimal.Decimal) (*entity.Pix, error) {
			called = true
			return &entity.Pix{}, nil
		}}
		engine, store, m := setup(t, c)

		require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
		require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, in)))

		assert.False(t, called, in)
		assert.Contains(t, m.LastText(), "Valor inválido", in)
		assert.Equal(t, wallet.StepAwaitingAmount, state(t, store).Step, in)
	}
}

func TestBadQRCodeStillDeliversCode(t *testing.T) {
	c := &chattest.Commerce{CreateRechargeFn: func(int64, string, decimal.Decimal) (*entity.Pix, error) {
		return &entity.Pix{CopyPaste: "PIXCODE", QRCode: "###"}, nil
	}}
	engine, _, m := setup(t, c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, "10")))

	assert.Nil(t, m.LastReply().Photo)
	assert.Contains(t, m.LastText(), "PIXCODE")
}

func TestRechargeFailureClearsState(t *testing.T) {
	c := &chattest.Commerce{CreateRechargeFn: func(int64, string, decimal.Decimal) (*entity.Pix, error) {
		return nil, &commerce.Failure{Kind: commerce.FailureTimeout, Err: context.DeadlineExceeded}
	}}
	engine, store, m := setup(t, c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, "10")))

	assert.Contains(t, m.LastText(), "Não consegui gerar o seu PIX")
	assert.True(t, state(t, store).IsZero())
}

func TestRejectedPhotoStillDeliversCode(t *testing.T) {
	c := &chattest.Commerce{CreateRechargeFn: func(int64, string, decimal.Decimal) (*entity.Pix, error) {
		return &entity.Pix{CopyPaste: "PIXCODE", QRCode: "aGVsbG8="}, nil
	}}
	engine, store, m := setup(t, c)
	m.SendErr = func(reply chat.Reply) error {
		if reply.Photo != nil {
			return errors.New("Bad Request: IMAGE_PROCESS_FAILED")
		}
		return nil
	}

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, "10")))

	assert.Nil(t, m.LastReply().Photo)
	assert.Contains(t, m.LastText(), "PIXCODE")
	assert.NotContains(t, m.Texts(), chat.MsgGenericError)
	assert.True(t, state(t, store).IsZero())
}

func TestSubCentAmountIsRejected(t *testing.T) {
	called := false
	c := &chattest.Commerce{CreateRechargeFn: func(int64, string, decimal.Decimal) (*entity.Pix, error) {
		called = true
		return &entity.Pix{}, nil
	}}
	engine, store, m := setup(t, c)

	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Command(1, "carteira", "")))
	require.NoError(t, engine.Dispatch(context.Background(), m, chattest.Text(1, "0,004")))

	assert.False(t, called)
	assert.Contains(t, m.LastText(), "Valor inválido")
	assert.Equal(t, wallet.StepAwaitingAmount, state(t, store).Step)
}
