package home

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"context"
	"strconv"
	"strings"
)

type Catalog interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

// Products shows the product grid, pages through it and opens product details.
type Products struct {
	catalog Catalog
}

func NewProducts(catalog Catalog) *Products {
	return &Products{catalog: catalog}
}

func (h *Products) Match(ev chat.Event) bool {
	switch ev.Kind {
	case chat.EventCommand:
		return ev.Command == "produtos"
	case chat.EventText:
		return strings.TrimSpace(ev.Text) == ui.BtnProducts
	case chat.EventCallback:
		ns := ev.Namespace()
		return ns == chat.NsCatalog || ns == chat.NsBuy
	}
	return false
}

func (h *Products) Handle(ctx context.Context, m chat.Messenger, ev chat.Event) error {
	if ev.Kind == chat.EventCallback && ev.Payload() == chat.ActionNoop {
		return nil
	}

	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		_, err = m.Send(ev.ChatID, ui.Home(ui.Failure("Não consegui carregar os produtos.", err)))
		return err
	}

	if ev.Kind == chat.EventCallback && ev.Namespace() == chat.NsBuy {
		product, ok := entity.FindProduct(products, ev.Payload())
		if !ok {
			_, err = m.Send(ev.ChatID, ui.ProductGone())
			return err
		}
		_, err = m.Send(ev.ChatID, ui.ProductDetail(*product))
		return err
	}

	if len(products) == 0 {
		_, err = m.Send(ev.ChatID, ui.CatalogEmpty())
		return err
	}

	if ev.Kind == chat.EventCallback {
		return m.Edit(ev.ChatID, ev.MessageID, ui.ProductGrid(products, pageOf(ev.Payload())))
	}
	_, err = m.Send(ev.ChatID, ui.ProductGrid(products, 1))
	return err
}

// pageOf reads "page:N"; anything else is the first page.
func pageOf(payload string) int {
	action, value, _ := strings.Cut(payload, ":")
	if action != chat.ActionPage {
		return 1
	}
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
