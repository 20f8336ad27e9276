package domain

import "time"

// ScopeType discrimina o escopo de uma sessão de inventário: por zona ou por categoria.
type ScopeType string

const (
	ScopeZone     ScopeType = "zone"
	ScopeCategory ScopeType = "category"
)

// SessionStatus é o ciclo de vida da sessão: draft -> open -> completed.
type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionOpen      SessionStatus = "open"
	SessionCompleted SessionStatus = "completed"
)

// ItemStatus é o estado de uma linha de contagem.
type ItemStatus string

const (
	ItemPending  ItemStatus = "pending"
	ItemCounted  ItemStatus = "counted"
	ItemRecount  ItemStatus = "recount"
	ItemApproved ItemStatus = "approved"
	ItemAdjusted ItemStatus = "adjusted"
)

// Valid informa se o status é um dos estados conhecidos do item.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemCounted, ItemRecount, ItemApproved, ItemAdjusted:
		return true
	}
	return false
}

// Finalized indica os estados em que a variância já foi tratada.
func (s ItemStatus) Finalized() bool {
	return s == ItemApproved || s == ItemAdjusted
}

// StocktakeSession representa uma sessão de inventário (contagem física vs. sistema).
// Os agregados (TotalItems, CountedItems, VarianceCount, ProgressPercent) são sempre
// derivados dos itens da sessão e nunca definidos diretamente.
type StocktakeSession struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Type            ScopeType     `json:"type"`
	Zone            string        `json:"zone,omitempty"`
	Category        string        `json:"category,omitempty"`
	Status          SessionStatus `json:"status"`
	CreatedBy       string        `json:"created_by"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	TotalItems      int           `json:"total_items"`
	CountedItems    int           `json:"counted_items"`
	VarianceCount   int           `json:"variance_count"`
	ProgressPercent int           `json:"progress_percent"`
	Version         int           `json:"version"` // Para Controle de Concorrência Otimista (OCC)
}

// ScopeValue retorna a zona ou a categoria, conforme o Type da sessão.
func (s StocktakeSession) ScopeValue() string {
	switch s.Type {
	case ScopeZone:
		return s.Zone
	case ScopeCategory:
		return s.Category
	}
	return ""
}

// StocktakeItem é uma linha de contagem pertencente a exatamente uma sessão.
// ActualQty nulo significa "ainda não contado"; Variance é sempre ActualQty - SystemQty.
type StocktakeItem struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	SKU         string     `json:"sku"`
	Location    string     `json:"location"`
	SystemQty   int        `json:"system_qty"`
	ActualQty   *int       `json:"actual_qty"`
	Variance    *int       `json:"variance"`
	Status      ItemStatus `json:"status"`
	CountedBy   string     `json:"counted_by,omitempty"`
	CountedAt   *time.Time `json:"counted_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// HasVariance indica uma contagem divergente do saldo do sistema.
func (i StocktakeItem) HasVariance() bool {
	return i.Variance != nil && *i.Variance != 0
}

// ItemDescriptor é o que o catálogo de estoque fornece para gerar as linhas de uma sessão.
type ItemDescriptor struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Location    string `json:"location"`
	SystemQty   int    `json:"system_qty"`
}

// CreateSessionRequest é o payload de criação de uma sessão.
type CreateSessionRequest struct {
	Name      string           `json:"name"`
	Type      ScopeType        `json:"type"`
	Zone      string           `json:"zone,omitempty"`
	Category  string           `json:"category,omitempty"`
	Status    SessionStatus    `json:"status"` // draft (padrão) ou open
	CreatedBy string           `json:"-"`
	Items     []ItemDescriptor `json:"items,omitempty"` // opcional; se vazio, o catálogo é consultado
}

// SubmitCountRequest é o payload de envio de contagem física.
type SubmitCountRequest struct {
	ActualQty *int `json:"actual_qty"`
}

// RecountRequest é o payload opcional do pedido de recontagem.
type RecountRequest struct {
	Note string `json:"note"`
}

// SessionFilter define os filtros da listagem de sessões.
type SessionFilter struct {
	Search string
	Status SessionStatus
}

// ItemFilter define os filtros da tabela de variâncias.
type ItemFilter struct {
	Search       string     // nome do produto ou SKU
	Status       ItemStatus // vazio = todos
	VarianceOnly bool
}

// Adjustment é a intenção de ajuste de estoque gerada por um item aprovado.
type Adjustment struct {
	ItemID    string `json:"item_id"`
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Location  string `json:"location"`
	Delta     int    `json:"delta"`
}

// BulkApproveResult resume a aprovação em lote.
type BulkApproveResult struct {
	Session  StocktakeSession `json:"session"`
	Approved int              `json:"approved"`
}

// AdjustmentResult resume a aplicação dos ajustes no estoque.
type AdjustmentResult struct {
	Session  StocktakeSession `json:"session"`
	Adjusted int              `json:"adjusted"`
}

// ItemUpdateResult devolve o item alterado junto com os agregados atualizados da sessão.
type ItemUpdateResult struct {
	Session StocktakeSession `json:"session"`
	Item    StocktakeItem    `json:"item"`
}
