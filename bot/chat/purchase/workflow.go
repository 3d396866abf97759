package purchase

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	WorkflowID                    chat.WorkflowID = "purchase"
	StepAwaitingEmail             chat.StepID     = "awaiting_email"
	StepAwaitingEmailConfirmation chat.StepID     = "awaiting_email_confirmation"

	keyProductID = "product_id"
	keyEmail     = "email"
)

type Commerce interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	Purchase(ctx context.Context, telegramID int64, productID, email string) (*entity.Purchase, error)
}

// Workflow buys a product. Automatic products are bought on the first click;
// e-mail products collect and confirm the delivery address first.
type Workflow struct {
	commerce Commerce
	log      *slog.Logger
}

func NewWorkflow(commerce Commerce, log *slog.Logger) *Workflow {
	return &Workflow{
		commerce: commerce,
		log:      log.With(sl.Module("purchase")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{Callbacks: []string{chat.NsConfirmBuy}}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingEmail, On: chat.EventText, Handle: w.handleEmail},
		{Step: StepAwaitingEmailConfirmation, On: chat.EventCallback, Namespace: chat.NsBuyEmail, Handle: w.handleConfirmation},
	}
}

func (w *Workflow) Enter(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	product, reply, ok := w.resolve(ctx, ev.Payload())
	if !ok {
		return chat.Respond(m, ev.ChatID, reply, chat.StepResult{Complete: true})
	}

	if !product.RequiresEmail {
		return w.buy(ctx, m, ev, product.ID.String(), "")
	}

	return chat.Respond(m, ev.ChatID, ui.EmailPrompt(*product), chat.StepResult{
		NextStep:    StepAwaitingEmail,
		UpdateState: map[string]any{keyProductID: product.ID.String()},
	})
}

func (w *Workflow) handleEmail(_ context.Context, m chat.Messenger, s *chat.Session, ev chat.Event) chat.StepResult {
	if s.GetString(keyProductID) == "" {
		return chat.StepResult{Error: chat.MissingData(keyProductID)}
	}

	email := strings.TrimSpace(ev.Text)
	if !chat.IsValidEmail(email) {
		return chat.Respond(m, ev.ChatID, ui.InvalidEmail(), chat.StepResult{})
	}

	return chat.Respond(m, ev.ChatID, ui.EmailConfirm(email), chat.StepResult{
		NextStep:    StepAwaitingEmailConfirmation,
		UpdateState: map[string]any{keyEmail: email},
	})
}

func (w *Workflow) handleConfirmation(ctx context.Context, m chat.Messenger, s *chat.Session, ev chat.Event) chat.StepResult {
	productID := s.GetString(keyProductID)
	if productID == "" {
		return chat.StepResult{Error: chat.MissingData(keyProductID)}
	}

	switch ev.Payload() {
	case chat.ActionRetry:
		return chat.Respond(m, ev.ChatID, chat.Reply{
			Text:     "Ok! Digite novamente o e-mail onde deseja receber o acesso:",
			Keyboard: ui.CancelKeyboard(),
		}, chat.StepResult{NextStep: StepAwaitingEmail})

	case chat.ActionYes:
		email := s.GetString(keyEmail)
		if email == "" {
			return chat.StepResult{Error: chat.MissingData(keyEmail)}
		}
		return w.buy(ctx, m, ev, productID, email)
	}

	return chat.StepResult{Error: fmt.Errorf("unexpected e-mail confirmation %q", ev.Data)}
}

// Cancel restores the product detail from a fresh catalog listing.
func (w *Workflow) Cancel(ctx context.Context, m chat.Messenger, s *chat.Session, ev chat.Event) error {
	productID := s.GetString(keyProductID)
	if productID == "" {
		return chat.MissingData(keyProductID)
	}
	products, err := w.commerce.ListProducts(ctx)
	if err != nil {
		return err
	}
	product, ok := entity.FindProduct(products, productID)
	if !ok {
		return fmt.Errorf("product %s no longer listed", productID)
	}

	if _, err = m.Send(ev.ChatID, ui.Home(chat.MsgCancelled)); err != nil {
		return err
	}
	_, err = m.Send(ev.ChatID, ui.ProductDetail(*product))
	return err
}

// buy executes the purchase; the flow ends whatever the outcome.
func (w *Workflow) buy(ctx context.Context, m chat.Messenger, ev chat.Event, productID, email string) chat.StepResult {
	if _, err := m.Send(ev.ChatID, ui.PurchaseProcessing()); err != nil {
		w.log.With(sl.Err(err)).Debug("progress message not sent", slog.Int64("user_id", ev.UserID))
	}

	purchase, err := w.commerce.Purchase(ctx, ev.UserID, productID, email)
	if err != nil {
		w.log.With(sl.Err(err)).Debug("purchase not completed",
			slog.Int64("user_id", ev.UserID),
			slog.String("product_id", productID),
		)
		return chat.Respond(m, ev.ChatID, ui.PurchaseFailure(err), chat.StepResult{Complete: true})
	}

	w.log.Info("purchase completed",
		slog.Int64("user_id", ev.UserID),
		slog.String("product_id", productID),
		slog.String("order_id", purchase.ID.String()),
	)
	return chat.Respond(m, ev.ChatID, ui.PurchaseSuccess(*purchase), chat.StepResult{Complete: true})
}

func (w *Workflow) resolve(ctx context.Context, productID string) (*entity.Product, chat.Reply, bool) {
	products, err := w.commerce.ListProducts(ctx)
	if err != nil {
		return nil, ui.Home(ui.Failure("Não consegui carregar o produto.", err)), false
	}
	product, ok := entity.FindProduct(products, productID)
	if !ok {
		return nil, ui.ProductGone(), false
	}
	return product, chat.Reply{}, true
}
