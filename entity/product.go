package entity

import "github.com/shopspring/decimal"

type Product struct {
	ID            ID              `json:"id"`
	Name          string          `json:"nome"`
	Description   string          `json:"descricao"`
	Price         decimal.Decimal `json:"preco"`
	RequiresEmail bool            `json:"requer_email_cliente"`
}

// FindProduct looks a product up by id in a catalog listing.
func FindProduct(products []Product, id string) (*Product, bool) {
	for i := range products {
		if products[i].ID.String() == id {
			return &products[i], true
		}
	}
	return nil, false
}
