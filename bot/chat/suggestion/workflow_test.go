package suggestion_test

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/chattest"
	"StreamBot/bot/chat/suggestion"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/service/commerce"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, c *chattest.Commerce, evs ...chat.Event) (*chat.SessionStore, *chattest.Messenger) {
	t.Helper()
	engine, store := chattest.NewEngine()
	engine.RegisterWorkflow(suggestion.NewWorkflow(c, chattest.Logger()))
	engine.SetHomeMenu(ui.Home)
	m := chattest.NewMessenger()
	for _, ev := range evs {
		require.NoError(t, engine.Dispatch(context.Background(), m, ev))
	}
	return store, m
}

func TestSuggestionSubmitted(t *testing.T) {
	var got string
	c := &chattest.Commerce{CreateSuggestionFn: func(_ int64, name string) (*entity.Suggestion, error) {
		got = name
		return &entity.Suggestion{ID: "1", Name: name}, nil
	}}

	store, m := run(t, c, chattest.Text(1, ui.BtnSuggest), chattest.Text(1, " Crunchyroll "))

	assert.Equal(t, "Crunchyroll", got)
	assert.Contains(t, m.LastText(), "Crunchyroll")
	assert.Contains(t, m.LastText(), "Obrigado")
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

func TestSuggestionFailureClearsState(t *testing.T) {
	c := &chattest.Commerce{CreateSuggestionFn: func(int64, string) (*entity.Suggestion, error) {
		return nil, &commerce.Failure{Kind: commerce.FailureStatus, Status: 500, Err: errors.New("boom")}
	}}

	store, m := run(t, c, chattest.Command(1, "sugerir", ""), chattest.Text(1, "Max"))

	assert.Equal(t, ui.Unavailable(), m.LastText())
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

func TestCommandDuringSuggestionIsNotConsumed(t *testing.T) {
	called := false
	c := &chattest.Commerce{CreateSuggestionFn: func(int64, string) (*entity.Suggestion, error) {
		called = true
		return &entity.Suggestion{}, nil
	}}

	store, _ := run(t, c, chattest.Command(1, "sugerir", ""), chattest.Command(1, "sugerir", ""))

	assert.False(t, called)
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, suggestion.StepAwaitingSuggestion, s.State.Step)
}
