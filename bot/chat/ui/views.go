package ui

import (
	"StreamBot/bot/chat"
	"StreamBot/entity"
	"StreamBot/internal/service/broadcast"
	"StreamBot/internal/service/commerce"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	msgUnavailable = "❌ Ups! Estou com dificuldades para me ligar aos nossos servidores agora.\n" +
		"Por favor, tente novamente mais tarde."
	msgTopUpHint  = "Por favor, vá a '💳 Carteira' para adicionar mais saldo."
	msgOutOfStock = "O stock deste produto esgotou-se no exato momento da sua compra. 😕"
	msgNotCharged = "Não se preocupe, o seu saldo não foi debitado."
)

// Money formats an amount in reais.
func Money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func esc(s string) string {
	return html.EscapeString(s)
}

// Unavailable is the generic retry-later text for transport failures.
func Unavailable() string {
	return msgUnavailable
}

// Failure renders a gateway error: the rejection reason verbatim, or the
// generic retry-later text for anything else.
func Failure(title string, err error) string {
	if rej, ok := commerce.AsRejection(err); ok {
		return fmt.Sprintf("❌ <b>%s</b>\nMotivo: %s", esc(title), esc(rej.Detail))
	}
	return msgUnavailable
}

func Welcome(firstName string, balance decimal.Decimal, referred bool) chat.Reply {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Olá, %s! 👋\n", esc(firstName)))
	sb.WriteString("Bem-vindo ao <b>Ferreira Streamings</b>!\n\n")
	sb.WriteString(fmt.Sprintf("O seu saldo atual é: <b>%s</b>", Money(balance)))
	if referred {
		sb.WriteString("\n\nObrigado por se registrar através de um convite!")
	}
	return Home(sb.String())
}

func Help() string {
	return chat.MsgHelp
}

// Catalog

func CatalogEmpty() chat.Reply {
	return chat.Reply{Text: "😕 Nenhum produto disponível no momento. Tente novamente mais tarde."}
}

// ProductGrid renders one page of the catalog.
func ProductGrid(products []entity.Product, page int) chat.Reply {
	total := CalculateTotalPages(len(products), DefaultItemsPerPage)
	page = ClampPage(page, total)

	items := make([]SelectableItem, 0, DefaultItemsPerPage)
	for _, p := range GetPageSlice(products, page, DefaultItemsPerPage) {
		items = append(items, SelectableItem{
			ID:   p.ID.String(),
			Text: fmt.Sprintf("%s - %s", p.Name, Money(p.Price)),
		})
	}

	return chat.Reply{
		Text: "<b>Nossos Produtos:</b>\n\nSelecione um produto abaixo para ver os detalhes e comprar:",
		Keyboard: chat.Keyboard{
			Inline: PaginatedGrid(chat.NsBuy, chat.NsCatalog, items, page, total),
		},
	}
}

func ProductDetail(p entity.Product) chat.Reply {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n\n", esc(p.Name)))
	if p.Description != "" {
		sb.WriteString(esc(p.Description))
		sb.WriteString("\n\n")
	}
	sb.WriteString(fmt.Sprintf("Preço: <b>%s</b>", Money(p.Price)))
	if p.RequiresEmail {
		sb.WriteString("\n\n📧 Este produto é entregue no seu e-mail.")
	}
	return chat.Reply{
		Text: sb.String(),
		Keyboard: SingleButton(
			fmt.Sprintf("✅ Comprar (%s)", Money(p.Price)),
			chat.CallbackData(chat.NsConfirmBuy, p.ID.String()),
		),
	}
}

func ProductGone() chat.Reply {
	return Home("😕 Este produto já não está disponível.")
}

// Wallet

func WalletPrompt(balance decimal.Decimal) chat.Reply {
	return chat.Reply{
		Text: fmt.Sprintf("O seu saldo atual é: <b>%s</b>\n\n", Money(balance)) +
			"Quanto gostaria de adicionar à sua carteira?\n\n" +
			"Por favor, digite um valor (ex: <code>20.00</code> ou <code>20</code>).",
		Keyboard: CancelKeyboard(),
	}
}

func InvalidAmount() chat.Reply {
	return chat.Reply{
		Text:     "❌ Valor inválido!\nPor favor, digite apenas um número (ex: <code>20</code> ou <code>15,50</code>).",
		Keyboard: CancelKeyboard(),
	}
}

func GeneratingPix() chat.Reply {
	return chat.Reply{Text: "A gerar o seu PIX... ⏳"}
}

// DecodeQRCode decodes the base64 QR image, accepting an optional data URI
// prefix. It returns nil when the payload is not valid base64.
func DecodeQRCode(encoded string) []byte {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ","); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+1:]
	}
	if encoded == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	return data
}

// PixPayment always carries the copy-paste code; the QR photo is attached
// only when it decodes.
func PixPayment(amount decimal.Decimal, pix entity.Pix) chat.Reply {
	reply := Home(fmt.Sprintf(
		"✅ PIX gerado com sucesso no valor de <b>%s</b>!\n\n"+
			"Copie o código abaixo e pague no seu banco:\n\n"+
			"<code>%s</code>\n\n"+
			"O saldo será creditado automaticamente após o pagamento.",
		Money(amount), esc(pix.CopyPaste),
	))
	reply.Photo = DecodeQRCode(pix.QRCode)
	return reply
}

func RechargeFailed(err error) chat.Reply {
	if _, ok := commerce.AsRejection(err); ok {
		return Home(Failure("Não consegui gerar o seu PIX.", err))
	}
	return Home("❌ Ups! Não consegui gerar o seu PIX agora.\nPor favor, tente novamente mais tarde.")
}

// Gift card

func GiftCardPrompt() chat.Reply {
	return chat.Reply{Text: "Por favor, digite o seu código de Gift Card:", Keyboard: CancelKeyboard()}
}

func GiftCardChecking(code string) chat.Reply {
	return chat.Reply{Text: fmt.Sprintf("A verificar o código <code>%s</code>... ⏳", esc(code))}
}

func GiftCardRedeemed(r entity.Redemption) chat.Reply {
	return Home(fmt.Sprintf(
		"✅ <b>Código resgatado com sucesso!</b>\n\nValor creditado: <b>%s</b>\nO seu novo saldo é: <b>%s</b>",
		Money(r.Amount), Money(r.NewBalance),
	))
}

func GiftCardFailed(err error) chat.Reply {
	return Home(Failure("Falha ao resgatar o código.", err))
}

// Purchase

func PurchaseProcessing() chat.Reply {
	return chat.Reply{Text: "A processar a sua compra... ⏳"}
}

func PurchaseSuccess(p entity.Purchase) chat.Reply {
	var sb strings.Builder
	sb.WriteString("✅ <b>Compra Concluída!</b>\n\n")
	sb.WriteString(fmt.Sprintf("Obrigado por comprar o <b>%s</b>.\n\n", esc(p.ProductName)))
	if p.DeliveredByEmail() {
		sb.WriteString(fmt.Sprintf("O acesso será enviado para <b>%s</b>.\n\n", esc(p.Email)))
	} else {
		sb.WriteString("Aqui estão as suas credenciais:\n")
		sb.WriteString(fmt.Sprintf("Login: <code>%s</code>\n", esc(p.Login)))
		sb.WriteString(fmt.Sprintf("Senha: <code>%s</code>\n\n", esc(p.Password)))
		sb.WriteString("⚠️ <i>Por favor, não altere a senha! Apenas 1 utilizador por conta.</i>\n\n")
	}
	sb.WriteString(fmt.Sprintf("O seu novo saldo é: <b>%s</b>", Money(p.NewBalance)))
	return Home(sb.String())
}

// PurchaseFailure explains a refused purchase; insufficient balance points to
// the wallet and out of stock states the balance was not charged.
func PurchaseFailure(err error) chat.Reply {
	rej, ok := commerce.AsRejection(err)
	if !ok {
		return Home("❌ Ocorreu um erro ao processar a sua compra. Tente novamente mais tarde.")
	}

	text := "❌ <b>Falha na Compra</b>\n\n"
	switch {
	case rej.InsufficientBalance():
		text += fmt.Sprintf("Motivo: %s\n\n%s", esc(rej.Detail), msgTopUpHint)
	case rej.OutOfStock():
		text += fmt.Sprintf("Motivo: %s\n\n%s", msgOutOfStock, msgNotCharged)
	default:
		text += fmt.Sprintf("Motivo: %s\nPor favor, tente novamente.", esc(rej.Detail))
	}
	return Home(text)
}

func EmailPrompt(p entity.Product) chat.Reply {
	return chat.Reply{
		Text: fmt.Sprintf("O produto <b>%s</b> é entregue por e-mail.\n\n", esc(p.Name)) +
			"Por favor, digite o e-mail onde deseja receber o acesso:",
		Keyboard: CancelKeyboard(),
	}
}

func InvalidEmail() chat.Reply {
	return chat.Reply{
		Text:     "❌ E-mail inválido!\nPor favor, digite um e-mail válido (ex: <code>nome@exemplo.com</code>).",
		Keyboard: CancelKeyboard(),
	}
}

func EmailConfirm(email string) chat.Reply {
	return chat.Reply{
		Text: fmt.Sprintf("Confirma que o e-mail <b>%s</b> está correto?", esc(email)),
		Keyboard: chat.Keyboard{Inline: [][]chat.InlineButton{
			{
				{Text: "✅ Sim, comprar", Data: chat.CallbackData(chat.NsBuyEmail, chat.ActionYes)},
				{Text: "✏️ Corrigir", Data: chat.CallbackData(chat.NsBuyEmail, chat.ActionRetry)},
			},
			{
				{Text: chat.CancelButton, Data: chat.CallbackData(chat.NsBuyEmail, chat.CancelPayload)},
			},
		}},
	}
}

// Support

func OrdersUnavailable() chat.Reply {
	return Home("❌ Não consegui buscar o seu histórico de pedidos. Tente novamente mais tarde.")
}

func NoOrders() chat.Reply {
	return Home("😕 Não encontrei pedidos recentes na sua conta.")
}

func SupportOrders(orders []entity.Order) chat.Reply {
	items := make([]SelectableItem, len(orders))
	for i, o := range orders {
		text := o.ProductName
		if o.PurchasedAt != "" {
			text = fmt.Sprintf("%s (%s)", o.ProductName, shortDate(o.PurchasedAt))
		}
		items[i] = SelectableItem{ID: o.ID.String(), Text: text}
	}
	rows := SelectionRows(chat.NsSupportOrder, items)
	rows = append(rows, []chat.InlineButton{
		{Text: chat.CancelButton, Data: chat.CallbackData(chat.NsSupport, chat.CancelPayload)},
	})
	return chat.Reply{
		Text:     "Selecione o pedido com o qual você está a ter problemas:",
		Keyboard: chat.Keyboard{Inline: rows},
	}
}

var reasonLabels = map[string]string{
	entity.ReasonInvalidLogin:   "🔑 Login ou senha inválidos",
	entity.ReasonNoSubscription: "💳 Conta sem assinatura",
	entity.ReasonServiceDown:    "📴 Serviço fora do ar",
	entity.ReasonOther:          "❓ Outro motivo",
}

func SupportReasons() chat.Reply {
	items := make([]SelectableItem, len(entity.TicketReasons))
	for i, code := range entity.TicketReasons {
		items[i] = SelectableItem{ID: code, Text: reasonLabels[code]}
	}
	rows := SelectionRows(chat.NsSupportReason, items)
	rows = append(rows, []chat.InlineButton{
		{Text: chat.CancelButton, Data: chat.CallbackData(chat.NsSupport, chat.CancelPayload)},
	})
	return chat.Reply{
		Text:     "Pedido selecionado. Agora, por favor, informe o motivo do problema:",
		Keyboard: chat.Keyboard{Inline: rows},
	}
}

func TicketOpened() chat.Reply {
	return chat.Reply{Text: "✅ <b>Ticket aberto com sucesso!</b>\n\n" +
		"A nossa equipa de suporte irá analisar o seu caso. A conta problemática já foi bloqueada."}
}

func TicketFailed(err error) chat.Reply {
	return chat.Reply{Text: Failure("Não foi possível abrir o ticket.", err)}
}

func SupportCancelled() chat.Reply {
	return chat.Reply{Text: "Fluxo de suporte cancelado."}
}

// Suggestion

func SuggestionPrompt() chat.Reply {
	return chat.Reply{
		Text: "Qual serviço de streaming você gostaria que o <b>Ferreira Streamings</b> adicionasse à loja?\n\n" +
			"(Use /cancelar ou o botão abaixo para sair)",
		Keyboard: CancelKeyboard(),
	}
}

func SuggestionSending(name string) chat.Reply {
	return chat.Reply{Text: fmt.Sprintf("A enviar a sua sugestão: '%s'... ⏳", esc(name))}
}

func SuggestionThanks(name string) chat.Reply {
	return Home(fmt.Sprintf("✅ <b>Obrigado!</b>\n\nA sua sugestão para '%s' foi registrada com sucesso.", esc(name)))
}

func SuggestionFailed(err error) chat.Reply {
	return Home(Failure("Falha ao enviar a sugestão.", err))
}

// Broadcast

func BroadcastPrompt() chat.Reply {
	return chat.Reply{
		Text: "Ok, admin. Por favor, <b>encaminhe ou envie</b> a mensagem que você deseja transmitir para todos os clientes.\n\n" +
			"(Use /cancelar ou o botão abaixo para sair)",
		Keyboard: CancelKeyboard(),
	}
}

func BroadcastPreviewHeader() chat.Reply {
	return chat.Reply{Text: "Esta é a mensagem que será enviada. <b>Confirmar envio?</b>\n👇👇👇"}
}

func BroadcastConfirm() chat.Reply {
	return chat.Reply{
		Text: "Tem certeza que deseja enviar esta mensagem para <b>TODOS</b> os clientes?\n\nEsta ação não pode ser desfeita.",
		Keyboard: chat.Keyboard{Inline: [][]chat.InlineButton{
			ConfirmCancelRow(chat.NsBroadcast, "✅ Sim, enviar", chat.CancelButton),
		}},
	}
}

func BroadcastStarting() chat.Reply {
	return chat.Reply{Text: "Iniciando envio... ⏳"}
}

func BroadcastNoUsers() chat.Reply {
	return Home("Nenhum cliente encontrado para enviar.")
}

func BroadcastUsersFailed() chat.Reply {
	return Home("❌ Falha ao buscar lista de usuários na API.")
}

func BroadcastLaunched(total int) chat.Reply {
	return Home(fmt.Sprintf("📣 Envio iniciado para %d clientes. Acompanhe o progresso acima.", total))
}

func BroadcastProgress(p broadcast.Progress) chat.Reply {
	if p.Done {
		return chat.Reply{Text: fmt.Sprintf(
			"✅ <b>Broadcast Concluído!</b>\n\nEnviado com sucesso: %d\nFalhas (bot bloqueado): %d\nTotal de Clientes: %d",
			p.Succeeded, p.Failed, p.Total,
		)}
	}
	return chat.Reply{Text: fmt.Sprintf(
		"Enviando para %d clientes... (%d%%)\n\nEnviados: %d\nFalhas: %d",
		p.Total, p.Percent(), p.Succeeded, p.Failed,
	)}
}

// Affiliate

func AffiliateLink(botName string, userID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botName, chat.ReferralPayload(userID))
}

func Affiliate(botName string, userID int64) chat.Reply {
	return chat.Reply{Text: fmt.Sprintf(
		"👥 <b>Programa de Afiliados</b>\n\n"+
			"Convide seus amigos para o bot e ganhe prêmios!\n\n"+
			"Seu link de convite pessoal é:\n<code>%s</code>\n\n"+
			"<b>Como funciona?</b>\n"+
			"1. Seu amigo deve entrar no bot pela primeira vez usando o seu link.\n"+
			"2. Quando ele fizer a primeira recarga ou compra, você ganha um super prêmio!\n\n"+
			"Compartilhe seu link e comece a ganhar!",
		esc(AffiliateLink(botName, userID)),
	)}
}

func shortDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
