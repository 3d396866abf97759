package bot

import (
	"context"
	"log/slog"

	"StreamBot/bot/chat"
	"StreamBot/bot/chat/broadcast"
	"StreamBot/bot/chat/giftcard"
	"StreamBot/bot/chat/home"
	"StreamBot/bot/chat/purchase"
	"StreamBot/bot/chat/suggestion"
	"StreamBot/bot/chat/support"
	"StreamBot/bot/chat/ui"
	"StreamBot/bot/chat/wallet"
)

// Gateway is the part of the commerce API the conversations use.
type Gateway interface {
	home.Registrar
	home.Catalog
	wallet.Commerce
	giftcard.Commerce
	purchase.Commerce
	support.Commerce
	suggestion.Commerce
	broadcast.Commerce
}

// RegisterFlows wires every conversation into the engine. Broadcasts
// started from the admin chat run until ctx is done.
func RegisterFlows(ctx context.Context, engine *chat.ChatEngine, gateway Gateway, broadcaster broadcast.Broadcaster, publisher broadcast.Publisher, botName string, log *slog.Logger) {
	engine.SetHomeMenu(ui.Home)

	engine.RegisterWorkflow(wallet.NewWorkflow(gateway, log))
	engine.RegisterWorkflow(giftcard.NewWorkflow(gateway, log))
	engine.RegisterWorkflow(purchase.NewWorkflow(gateway, log))
	engine.RegisterWorkflow(support.NewWorkflow(gateway, log))
	engine.RegisterWorkflow(suggestion.NewWorkflow(gateway, log))
	engine.RegisterWorkflow(broadcast.NewWorkflow(ctx, gateway, broadcaster, publisher, log))

	engine.RegisterHandler(home.NewStart(gateway, log))
	engine.RegisterHandler(home.NewProducts(gateway))
	engine.RegisterHandler(home.NewAffiliate(botName))
}
