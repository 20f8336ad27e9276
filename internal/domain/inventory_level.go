package domain

import "time"

// InventoryLevel representa o saldo de um produto em uma localização do armazém.
// Inclui uma coluna 'version' para controle de concorrência otimista.
type InventoryLevel struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Location    string    `json:"location"`
	Zone        string    `json:"zone"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InventoryFilter restringe a listagem de saldos por zona e/ou categoria.
type InventoryFilter struct {
	Zone     string
	Category string
}
