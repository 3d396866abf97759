package entity

type Order struct {
	ID          ID     `json:"pedido_id"`
	ProductName string `json:"produto_nome"`
	PurchasedAt string `json:"data_compra"`
}
