// Package reconcile implementa a máquina de estados da reconciliação de inventário:
// sessões (draft -> open -> completed) e itens (pending -> counted -> recount/approved -> adjusted).
//
// Todas as operações são puras: recebem um Sheet e devolvem um novo Sheet. O valor de
// entrada nunca é alterado, então uma operação rejeitada não deixa estado parcial.
// A serialização de mutações concorrentes é responsabilidade do chamador (OCC via Version).
package reconcile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
)

// DefaultRecountNote é anotada no item quando o revisor não informa o motivo.
const DefaultRecountNote = "Recontagem solicitada"

// Sheet é uma sessão junto com os itens que ela possui.
type Sheet struct {
	Session domain.StocktakeSession
	Items   []domain.StocktakeItem
}

func (s Sheet) clone() Sheet {
	items := make([]domain.StocktakeItem, len(s.Items))
	copy(items, s.Items)
	return Sheet{Session: s.Session, Items: items}
}

// Aggregates são os contadores derivados de uma sessão.
type Aggregates struct {
	TotalItems      int
	CountedItems    int
	VarianceCount   int
	ProgressPercent int
}

// Engine aplica as transições. Relógio e gerador de IDs são injetáveis para testes.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option configura o Engine.
type Option func(*Engine)

// WithClock substitui o relógio usado em CountedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator substitui o gerador de IDs de sessões e itens.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New cria um Engine com relógio UTC e IDs UUID v4.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Ciclo de vida da sessão ---

// NewSheet cria uma sessão em draft ou open. Uma sessão criada já aberta passa pelas
// mesmas regras de Start e recebe os itens descritos; um rascunho não possui itens e
// rejeita itens informados na requisição.
func (e *Engine) NewSheet(req domain.CreateSessionRequest, items []domain.ItemDescriptor) (Sheet, error) {
	status := req.Status
	if status == "" {
		status = domain.SessionDraft
	}
	if status != domain.SessionDraft && status != domain.SessionOpen {
		return Sheet{}, apperror.NewInvalidStateTransitionError("", string(status), "uma sessão só pode ser criada como draft ou open")
	}
	if status == domain.SessionDraft && len(req.Items) > 0 {
		return Sheet{}, apperror.NewValidationError("itens só podem ser informados em sessões criadas como open; um rascunho recebe o snapshot do estoque ao iniciar.")
	}

	zone := strings.TrimSpace(req.Zone)
	category := strings.TrimSpace(req.Category)
	if err := validateScope(req.Type, zone, category); err != nil {
		return Sheet{}, err
	}

	now := e.now()
	sheet := Sheet{
		Session: domain.StocktakeSession{
			ID:        e.newID(),
			Name:      strings.TrimSpace(req.Name),
			Type:      req.Type,
			Zone:      zone,
			Category:  category,
			Status:    domain.SessionDraft,
			CreatedBy: req.CreatedBy,
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
	}

	if status == domain.SessionOpen {
		return e.Start(sheet, items)
	}
	return Recalculate(sheet), nil
}

func validateScope(t domain.ScopeType, zone, category string) error {
	switch t {
	case domain.ScopeZone:
		if category != "" {
			return apperror.NewValidationError("sessões por zona não aceitam categoria.")
		}
	case domain.ScopeCategory:
		if zone != "" {
			return apperror.NewValidationError("sessões por categoria não aceitam zona.")
		}
	default:
		return apperror.NewValidationError(fmt.Sprintf("tipo de sessão '%s' inválido (use zone ou category).", t))
	}
	return nil
}

// Start abre uma sessão em draft. Exige nome e o valor do escopo (zona ou categoria) e
// materializa os itens a partir dos descritores do catálogo.
func (e *Engine) Start(sheet Sheet, items []domain.ItemDescriptor) (Sheet, error) {
	s := sheet.Session
	if s.Status != domain.SessionDraft {
		return Sheet{}, apperror.NewInvalidStateTransitionError(string(s.Status), string(domain.SessionOpen), "apenas sessões em draft podem ser iniciadas")
	}
	if strings.TrimSpace(s.Name) == "" {
		return Sheet{}, apperror.NewScopeRequiredError("o nome da sessão é obrigatório.")
	}
	if s.ScopeValue() == "" {
		return Sheet{}, apperror.NewScopeRequiredError(fmt.Sprintf("sessões do tipo %s exigem o campo %s.", s.Type, s.Type))
	}

	out := sheet.clone()
	if len(out.Items) == 0 {
		built, err := e.buildItems(s.ID, items)
		if err != nil {
			return Sheet{}, err
		}
		out.Items = built
	}

	out.Session.Status = domain.SessionOpen
	out.Session.UpdatedAt = e.now()
	return Recalculate(out), nil
}

func (e *Engine) buildItems(sessionID string, descriptors []domain.ItemDescriptor) ([]domain.StocktakeItem, error) {
	items := make([]domain.StocktakeItem, 0, len(descriptors))
	for _, d := range descriptors {
		if d.SystemQty < 0 {
			return nil, apperror.NewInvalidQuantityError(d.SystemQty)
		}
		if strings.TrimSpace(d.ProductID) == "" {
			return nil, apperror.NewValidationError("todo item precisa de product_id.")
		}
		items = append(items, domain.StocktakeItem{
			ID:          e.newID(),
			SessionID:   sessionID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			SKU:         d.SKU,
			Location:    d.Location,
			SystemQty:   d.SystemQty,
			Status:      domain.ItemPending,
		})
	}
	return items, nil
}

// Complete fecha uma sessão aberta. Nunca é disparado automaticamente, mesmo com
// todos os itens contados e sem variâncias pendentes.
func (e *Engine) Complete(sheet Sheet) (Sheet, error) {
	if sheet.Session.Status != domain.SessionOpen {
		return Sheet{}, apperror.NewInvalidStateTransitionError(string(sheet.Session.Status), string(domain.SessionCompleted), "apenas sessões abertas podem ser concluídas")
	}
	out := sheet.clone()
	out.Session.Status = domain.SessionCompleted
	out.Session.UpdatedAt = e.now()
	return Recalculate(out), nil
}

// CanDiscard informa se a sessão (e seus itens) pode ser descartada.
func CanDiscard(sheet Sheet) error {
	if sheet.Session.Status == domain.SessionCompleted {
		return apperror.NewInvalidStateTransitionError(string(domain.SessionCompleted), "discarded", "sessões concluídas não podem ser descartadas")
	}
	return nil
}

// --- Transições dos itens ---

// SubmitCount registra a quantidade física de um item pendente ou em recontagem.
func (e *Engine) SubmitCount(sheet Sheet, itemID string, qty int, countedBy string) (Sheet, error) {
	idx, err := findItem(sheet, itemID)
	if err != nil {
		return Sheet{}, err
	}
	if err := requireOpen(sheet.Session, "registrar contagens"); err != nil {
		return Sheet{}, err
	}

	item := sheet.Items[idx]
	if item.Status != domain.ItemPending && item.Status != domain.ItemRecount {
		return Sheet{}, apperror.NewInvalidStateTransitionError(string(item.Status), string(domain.ItemCounted), "apenas itens pendentes ou em recontagem aceitam contagem")
	}
	if qty < 0 {
		return Sheet{}, apperror.NewInvalidQuantityError(qty)
	}
	if strings.TrimSpace(countedBy) == "" {
		return Sheet{}, apperror.NewValidationError("o responsável pela contagem é obrigatório.")
	}

	now := e.now()
	actual := qty
	if item.Status == domain.ItemRecount {
		item.Notes = ""
	}
	item.ActualQty = &actual
	item.Variance = Variance(item)
	item.Status = domain.ItemCounted
	item.CountedBy = countedBy
	item.CountedAt = &now

	return e.replace(sheet, idx, item), nil
}

// RequestRecount devolve um item contado com variância para uma nova contagem.
func (e *Engine) RequestRecount(sheet Sheet, itemID, note string) (Sheet, error) {
	idx, item, err := reconcilable(sheet, itemID, domain.ItemRecount, "solicitar recontagem")
	if err != nil {
		return Sheet{}, err
	}

	item.Status = domain.ItemRecount
	item.Notes = strings.TrimSpace(note)
	if item.Notes == "" {
		item.Notes = DefaultRecountNote
	}
	return e.replace(sheet, idx, item), nil
}

// Approve aprova o ajuste de um item contado com variância. Aprovar um item sem
// variância é rejeitado com NothingToReconcile.
func (e *Engine) Approve(sheet Sheet, itemID string) (Sheet, error) {
	idx, item, err := reconcilable(sheet, itemID, domain.ItemApproved, "aprovar variâncias")
	if err != nil {
		return Sheet{}, err
	}

	item.Status = domain.ItemApproved
	return e.replace(sheet, idx, item), nil
}

// BulkApprove aprova todos os itens contados com variância diferente de zero e
// retorna quantos foram aprovados. Os agregados são recalculados uma única vez sobre
// o resultado; chamar duas vezes seguidas produz o mesmo estado.
func (e *Engine) BulkApprove(sheet Sheet) (Sheet, int, error) {
	if err := requireOpen(sheet.Session, "aprovar variâncias"); err != nil {
		return Sheet{}, 0, err
	}

	out := sheet.clone()
	approved := 0
	for i, item := range out.Items {
		item.Variance = Variance(item)
		if item.Status == domain.ItemCounted && item.HasVariance() {
			item.Status = domain.ItemApproved
			out.Items[i] = item
			approved++
		}
	}
	if approved > 0 {
		out.Session.UpdatedAt = e.now()
	}
	return Recalculate(out), approved, nil
}

// MarkAdjusted registra que o estoque confirmou o ajuste de um item aprovado.
// É permitido também após a conclusão da sessão.
func (e *Engine) MarkAdjusted(sheet Sheet, itemID string) (Sheet, error) {
	idx, err := findItem(sheet, itemID)
	if err != nil {
		return Sheet{}, err
	}
	if sheet.Session.Status == domain.SessionDraft {
		return Sheet{}, apperror.NewInvalidStateTransitionError(string(domain.SessionDraft), string(domain.SessionOpen), "a sessão ainda não foi iniciada")
	}

	item := sheet.Items[idx]
	if item.Status != domain.ItemApproved {
		return Sheet{}, apperror.NewInvalidStateTransitionError(string(item.Status), string(domain.ItemAdjusted), "apenas itens aprovados podem ser marcados como ajustados")
	}
	item.Status = domain.ItemAdjusted
	return e.replace(sheet, idx, item), nil
}

// PendingAdjustments lista os itens aprovados como deltas de estoque (variância).
func PendingAdjustments(sheet Sheet) []domain.Adjustment {
	var out []domain.Adjustment
	for _, item := range sheet.Items {
		v := Variance(item)
		if item.Status != domain.ItemApproved || v == nil {
			continue
		}
		out = append(out, domain.Adjustment{
			ItemID:    item.ID,
			SessionID: item.SessionID,
			ProductID: item.ProductID,
			Location:  item.Location,
			Delta:     *v,
		})
	}
	return out
}

func reconcilable(sheet Sheet, itemID string, to domain.ItemStatus, action string) (int, domain.StocktakeItem, error) {
	idx, err := findItem(sheet, itemID)
	if err != nil {
		return 0, domain.StocktakeItem{}, err
	}
	if err := requireOpen(sheet.Session, action); err != nil {
		return 0, domain.StocktakeItem{}, err
	}

	item := sheet.Items[idx]
	if item.Status != domain.ItemCounted {
		return 0, domain.StocktakeItem{}, apperror.NewInvalidStateTransitionError(string(item.Status), string(to), "apenas itens contados podem ser reconciliados")
	}
	item.Variance = Variance(item)
	if !item.HasVariance() {
		return 0, domain.StocktakeItem{}, apperror.NewNothingToReconcileError(item.ID)
	}
	return idx, item, nil
}

func findItem(sheet Sheet, itemID string) (int, error) {
	for i := range sheet.Items {
		if sheet.Items[i].ID == itemID {
			return i, nil
		}
	}
	return 0, apperror.NewNotFoundError(fmt.Sprintf("item %s não pertence à sessão %s.", itemID, sheet.Session.ID))
}

func requireOpen(s domain.StocktakeSession, action string) error {
	if s.Status != domain.SessionOpen {
		return apperror.NewInvalidStateTransitionError(string(s.Status), string(domain.SessionOpen), fmt.Sprintf("não é possível %s em uma sessão %s", action, s.Status))
	}
	return nil
}

func (e *Engine) replace(sheet Sheet, idx int, item domain.StocktakeItem) Sheet {
	out := sheet.clone()
	out.Items[idx] = item
	out.Session.UpdatedAt = e.now()
	return Recalculate(out)
}

// --- Derivações ---

// Variance calcula ActualQty - SystemQty, ou nil quando o item ainda não foi contado.
func Variance(item domain.StocktakeItem) *int {
	if item.ActualQty == nil {
		return nil
	}
	v := *item.ActualQty - item.SystemQty
	return &v
}

// Summarize recalcula os agregados a partir dos itens. VarianceCount conta apenas as
// variâncias ainda pendentes de revisão (itens aprovados ou ajustados ficam de fora).
func Summarize(items []domain.StocktakeItem) Aggregates {
	agg := Aggregates{TotalItems: len(items)}
	for _, item := range items {
		if item.Status != domain.ItemPending {
			agg.CountedItems++
		}
		if v := Variance(item); v != nil && *v != 0 && !item.Status.Finalized() {
			agg.VarianceCount++
		}
	}
	agg.ProgressPercent = Progress(agg.CountedItems, agg.TotalItems)
	return agg
}

// Progress retorna round(counted/total*100), ou 0 para sessões sem itens.
func Progress(counted, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(counted) / float64(total) * 100))
}

// Recalculate deriva novamente a variância de cada item e os agregados da sessão.
// Valores armazenados nunca são reaproveitados.
func Recalculate(sheet Sheet) Sheet {
	out := sheet.clone()
	for i := range out.Items {
		out.Items[i].Variance = Variance(out.Items[i])
	}
	agg := Summarize(out.Items)
	out.Session.TotalItems = agg.TotalItems
	out.Session.CountedItems = agg.CountedItems
	out.Session.VarianceCount = agg.VarianceCount
	out.Session.ProgressPercent = agg.ProgressPercent
	return out
}

// FilterItems aplica os filtros da tabela de variâncias: busca por nome ou SKU,
// status e somente itens com variância.
func FilterItems(items []domain.StocktakeItem, f domain.ItemFilter) []domain.StocktakeItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.StocktakeItem, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.ProductName), search) &&
			!strings.Contains(strings.ToLower(item.SKU), search) {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.VarianceOnly {
			if v := Variance(item); v == nil || *v == 0 {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
