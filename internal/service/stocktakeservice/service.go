package stocktakeservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/reconcile"
)

// SessionRepository define o contrato de persistência das sessões de inventário.
type SessionRepository interface {
	Create(ctx context.Context, sheet reconcile.Sheet) error
	Load(ctx context.Context, sessionID string) (reconcile.Sheet, error)
	FindSessionIDByItem(ctx context.Context, itemID string) (string, error)
	GetSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error)
	List(ctx context.Context, filter domain.SessionFilter) ([]domain.StocktakeSession, error)
	Save(ctx context.Context, sheet reconcile.Sheet, expectedVersion int) (reconcile.Sheet, error)
	Delete(ctx context.Context, sessionID string, expectedVersion int) error
}

// InventoryRepository é o estoque do sistema: fornece o snapshot do escopo e recebe os ajustes.
type InventoryRepository interface {
	ListByScope(ctx context.Context, scope domain.ScopeType, value string) ([]domain.ItemDescriptor, error)
	ApplyAdjustments(ctx context.Context, adjustments []domain.Adjustment) (int, error)
}

// ActivityRepository guarda o histórico de contagens, aprovações e ajustes.
type ActivityRepository interface {
	Record(ctx context.Context, activity domain.Activity) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)
}

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// Service orquestra o motor de reconciliação, a persistência e o estoque.
type Service struct {
	repo       SessionRepository
	inventory  InventoryRepository
	activities ActivityRepository
	engine     *reconcile.Engine
	logger     logger.Logger
}

// NewService cria uma nova instância do serviço de inventário.
func NewService(repo SessionRepository, inventory InventoryRepository, activities ActivityRepository, engine *reconcile.Engine, logger logger.Logger) *Service {
	return &Service{
		repo:       repo,
		inventory:  inventory,
		activities: activities,
		engine:     engine,
		logger:     logger,
	}
}

// operation descreve uma mutação de sessão para o log e para o histórico.
type operation struct {
	sessionID string
	itemID    string
	action    string
	describe  func(saved reconcile.Sheet) string
}

// requireSessionID rejeita IDs que não podem existir (as chaves são UUID).
func requireSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewNotFoundError(fmt.Sprintf("Sessão %s não encontrada.", id))
	}
	return nil
}

func requireItemID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewNotFoundError(fmt.Sprintf("Item %s não encontrado.", id))
	}
	return nil
}

// CreateSession cria uma sessão em draft ou já aberta. Uma sessão aberta sem itens
// informados recebe o snapshot do catálogo para o escopo.
func (s *Service) CreateSession(ctx context.Context, req domain.CreateSessionRequest) (domain.StocktakeSession, error) {
	s.logger.Debug("Iniciando criação de sessão de inventário.", map[string]interface{}{
		"name":   req.Name,
		"type":   req.Type,
		"status": req.Status,
	})

	var items []domain.ItemDescriptor
	if req.Status == domain.SessionOpen {
		items = req.Items
		if len(items) == 0 {
			scopeValue := req.Zone
			if req.Type == domain.ScopeCategory {
				scopeValue = req.Category
			}
			var err error
			if items, err = s.snapshot(ctx, req.Type, scopeValue); err != nil {
				return domain.StocktakeSession{}, err
			}
		}
	}

	sheet, err := s.engine.NewSheet(req, items)
	if err != nil {
		s.logger.Info("Criação de sessão rejeitada.", map[string]interface{}{"name": req.Name, "error": err.Error()})
		return domain.StocktakeSession{}, err
	}

	if err := s.repo.Create(ctx, sheet); err != nil {
		s.logger.Error("Falha ao persistir nova sessão.", err)
		return domain.StocktakeSession{}, err
	}

	s.logger.Info("Sessão de inventário criada com sucesso.", map[string]interface{}{
		"session_id": sheet.Session.ID,
		"status":     sheet.Session.Status,
		"items":      sheet.Session.TotalItems,
	})
	s.record(ctx, "create", sheet.Session.ID, "", fmt.Sprintf("Sessão '%s' criada em %s com %d itens.",
		sheet.Session.Name, sheet.Session.Status, sheet.Session.TotalItems))
	return sheet.Session, nil
}

// snapshot consulta o catálogo. Sem valor de escopo não há consulta: o motor rejeita a abertura.
func (s *Service) snapshot(ctx context.Context, scope domain.ScopeType, value string) ([]domain.ItemDescriptor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	items, err := s.inventory.ListByScope(ctx, scope, value)
	if err != nil {
		s.logger.Error("Falha ao consultar o catálogo de estoque.", err)
		return nil, err
	}
	return items, nil
}

// StartSession abre uma sessão em draft, gerando os itens a partir do catálogo.
func (s *Service) StartSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error) {
	op := operation{sessionID: sessionID, action: "start", describe: func(saved reconcile.Sheet) string {
		return fmt.Sprintf("Sessão '%s' aberta com %d itens.", saved.Session.Name, saved.Session.TotalItems)
	}}
	saved, err := s.mutate(ctx, op, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		var items []domain.ItemDescriptor
		if sheet.Session.Status == domain.SessionDraft && len(sheet.Items) == 0 {
			var err error
			if items, err = s.snapshot(ctx, sheet.Session.Type, sheet.Session.ScopeValue()); err != nil {
				return reconcile.Sheet{}, err
			}
		}
		return s.engine.Start(sheet, items)
	})
	if err != nil {
		return domain.StocktakeSession{}, err
	}
	return saved.Session, nil
}

// CompleteSession conclui uma sessão aberta.
func (s *Service) CompleteSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error) {
	op := operation{sessionID: sessionID, action: "complete", describe: func(saved reconcile.Sheet) string {
		return fmt.Sprintf("Sessão '%s' concluída: %d de %d itens contados, %d variâncias pendentes.",
			saved.Session.Name, saved.Session.CountedItems, saved.Session.TotalItems, saved.Session.VarianceCount)
	}}
	saved, err := s.mutate(ctx, op, s.engine.Complete)
	if err != nil {
		return domain.StocktakeSession{}, err
	}
	return saved.Session, nil
}

// DiscardSession remove uma sessão em draft ou aberta, junto com seus itens.
func (s *Service) DiscardSession(ctx context.Context, sessionID string) error {
	if err := requireSessionID(sessionID); err != nil {
		return err
	}
	sheet, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := reconcile.CanDiscard(sheet); err != nil {
		s.logger.Info("Descarte de sessão rejeitado.", map[string]interface{}{"session_id": sessionID, "status": sheet.Session.Status})
		return err
	}
	if err := s.repo.Delete(ctx, sessionID, sheet.Session.Version); err != nil {
		return err
	}
	s.logger.Info("Sessão de inventário descartada.", map[string]interface{}{"session_id": sessionID})
	s.record(ctx, "discard", sessionID, "", fmt.Sprintf("Sessão '%s' descartada (%s).", sheet.Session.Name, sheet.Session.Status))
	return nil
}

// GetSession retorna o cabeçalho da sessão com os agregados.
func (s *Service) GetSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error) {
	if err := requireSessionID(sessionID); err != nil {
		return domain.StocktakeSession{}, err
	}
	return s.repo.GetSession(ctx, sessionID)
}

// ListSessions lista as sessões por nome e status.
func (s *Service) ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.StocktakeSession, error) {
	switch filter.Status {
	case "", domain.SessionDraft, domain.SessionOpen, domain.SessionCompleted:
	default:
		return nil, apperror.NewValidationError(fmt.Sprintf("status de sessão '%s' inválido.", filter.Status))
	}
	return s.repo.List(ctx, filter)
}

// ListItems retorna os itens da sessão aplicando os filtros da tabela de variâncias.
func (s *Service) ListItems(ctx context.Context, sessionID string, filter domain.ItemFilter) ([]domain.StocktakeItem, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewValidationError(fmt.Sprintf("status de item '%s' inválido.", filter.Status))
	}
	if err := requireSessionID(sessionID); err != nil {
		return nil, err
	}
	sheet, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return reconcile.FilterItems(sheet.Items, filter), nil
}

// SubmitCount registra a quantidade física contada de um item.
func (s *Service) SubmitCount(ctx context.Context, itemID string, qty int, countedBy string) (domain.ItemUpdateResult, error) {
	describe := func(item domain.StocktakeItem) string {
		return fmt.Sprintf("%s (%s) contado por %s: %d, variância %+d.", item.SKU, item.Location, item.CountedBy, qty, deref(item.Variance))
	}
	return s.mutateItem(ctx, itemID, "count", describe, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		return s.engine.SubmitCount(sheet, itemID, qty, countedBy)
	})
}

// RequestRecount devolve um item contado com variância para uma nova contagem.
func (s *Service) RequestRecount(ctx context.Context, itemID, note string) (domain.ItemUpdateResult, error) {
	describe := func(item domain.StocktakeItem) string {
		return fmt.Sprintf("Recontagem solicitada para %s (%s): %s", item.SKU, item.Location, item.Notes)
	}
	return s.mutateItem(ctx, itemID, "recount", describe, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		return s.engine.RequestRecount(sheet, itemID, note)
	})
}

// Approve aceita a variância de um item contado.
func (s *Service) Approve(ctx context.Context, itemID string) (domain.ItemUpdateResult, error) {
	describe := func(item domain.StocktakeItem) string {
		return fmt.Sprintf("Variância %+d aprovada para %s (%s).", deref(item.Variance), item.SKU, item.Location)
	}
	return s.mutateItem(ctx, itemID, "approve", describe, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		return s.engine.Approve(sheet, itemID)
	})
}

// BulkApprove aprova todos os itens contados com variância da sessão.
func (s *Service) BulkApprove(ctx context.Context, sessionID string) (domain.BulkApproveResult, error) {
	var approved int
	op := operation{sessionID: sessionID, action: "bulk-approve", describe: func(saved reconcile.Sheet) string {
		return fmt.Sprintf("%d variâncias aprovadas em lote na sessão '%s'.", approved, saved.Session.Name)
	}}
	saved, err := s.mutate(ctx, op, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		next, n, err := s.engine.BulkApprove(sheet)
		approved = n
		return next, err
	})
	if err != nil {
		return domain.BulkApproveResult{}, err
	}
	return domain.BulkApproveResult{Session: saved.Session, Approved: approved}, nil
}

// ApplyAdjustments envia as variâncias aprovadas ao estoque e marca os itens como ajustados.
// Reaplicar é seguro: o estoque ignora itens já ajustados.
func (s *Service) ApplyAdjustments(ctx context.Context, sessionID string) (domain.AdjustmentResult, error) {
	var adjusted, net int
	op := operation{sessionID: sessionID, action: "adjust", describe: func(saved reconcile.Sheet) string {
		return fmt.Sprintf("%d ajustes de estoque aplicados pela sessão '%s' (saldo líquido %+d).", adjusted, saved.Session.Name, net)
	}}
	saved, err := s.mutate(ctx, op, func(sheet reconcile.Sheet) (reconcile.Sheet, error) {
		if sheet.Session.Status == domain.SessionDraft {
			return reconcile.Sheet{}, apperror.NewInvalidStateTransitionError(string(domain.SessionDraft), string(domain.SessionOpen), "a sessão ainda não foi iniciada")
		}
		pending := reconcile.PendingAdjustments(sheet)
		if len(pending) == 0 {
			return sheet, nil
		}

		applied, err := s.inventory.ApplyAdjustments(ctx, pending)
		if err != nil {
			s.logger.Error("Falha ao aplicar ajustes no estoque.", err)
			return reconcile.Sheet{}, err
		}
		if applied < len(pending) {
			s.logger.Warn("Parte dos ajustes já havia sido aplicada.", map[string]interface{}{
				"session_id": sheet.Session.ID,
				"pending":    len(pending),
				"applied":    applied,
			})
		}

		next := sheet
		for _, adj := range pending {
			if next, err = s.engine.MarkAdjusted(next, adj.ItemID); err != nil {
				return reconcile.Sheet{}, err
			}
		}
		adjusted = len(pending)
		for _, adj := range pending {
			net += adj.Delta
		}
		return next, nil
	})
	if err != nil {
		return domain.AdjustmentResult{}, err
	}
	return domain.AdjustmentResult{Session: saved.Session, Adjusted: adjusted}, nil
}

func (s *Service) mutateItem(ctx context.Context, itemID, action string, describe func(domain.StocktakeItem) string, fn func(reconcile.Sheet) (reconcile.Sheet, error)) (domain.ItemUpdateResult, error) {
	if err := requireItemID(itemID); err != nil {
		return domain.ItemUpdateResult{}, err
	}
	sessionID, err := s.repo.FindSessionIDByItem(ctx, itemID)
	if err != nil {
		return domain.ItemUpdateResult{}, err
	}

	op := operation{sessionID: sessionID, itemID: itemID, action: action, describe: func(saved reconcile.Sheet) string {
		if item, ok := findItem(saved, itemID); ok {
			return describe(item)
		}
		return ""
	}}
	saved, err := s.mutate(ctx, op, fn)
	if err != nil {
		return domain.ItemUpdateResult{}, err
	}

	item, ok := findItem(saved, itemID)
	if !ok {
		return domain.ItemUpdateResult{}, apperror.NewInternalError(fmt.Sprintf("item %s ausente após a gravação", itemID), nil)
	}
	return domain.ItemUpdateResult{Session: saved.Session, Item: item}, nil
}

// mutate carrega o sheet, aplica a transição, grava com a versão lida e registra a
// atividade. Uma versão desatualizada é devolvida como ConflictError, sem nova tentativa.
func (s *Service) mutate(ctx context.Context, op operation, fn func(reconcile.Sheet) (reconcile.Sheet, error)) (reconcile.Sheet, error) {
	if err := requireSessionID(op.sessionID); err != nil {
		return reconcile.Sheet{}, err
	}
	s.logger.Debug("Aplicando operação na sessão.", map[string]interface{}{"session_id": op.sessionID, "action": op.action})

	sheet, err := s.repo.Load(ctx, op.sessionID)
	if err != nil {
		return reconcile.Sheet{}, err
	}

	next, err := fn(sheet)
	if err != nil {
		var appErr apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus() < 500 {
			s.logger.Info("Operação rejeitada.", map[string]interface{}{
				"session_id": op.sessionID,
				"action":     op.action,
				"category":   appErr.Category(),
			})
		}
		return reconcile.Sheet{}, err
	}

	saved, err := s.repo.Save(ctx, next, sheet.Session.Version)
	if err != nil {
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			s.logger.Warn("Conflito de versão ao gravar a sessão.", map[string]interface{}{"session_id": op.sessionID, "action": op.action})
		}
		return reconcile.Sheet{}, err
	}

	s.logger.Info("Operação aplicada na sessão.", map[string]interface{}{
		"session_id": op.sessionID,
		"action":     op.action,
		"version":    saved.Session.Version,
	})
	if op.describe != nil {
		s.record(ctx, op.action, op.sessionID, op.itemID, op.describe(saved))
	}
	return saved, nil
}

// record grava a atividade no histórico. A mutação já foi gravada, então uma falha
// aqui só é registrada no log.
func (s *Service) record(ctx context.Context, action, sessionID, itemID, description string) {
	actor, ok := domain.ActorFrom(ctx)
	if !ok {
		actor = domain.SystemActor
	}
	activityType := domain.ActivityStocktake
	if action == "adjust" {
		activityType = domain.ActivityAdjustment
	}

	err := s.activities.Record(ctx, domain.Activity{
		Type:        activityType,
		Action:      action,
		Description: description,
		User:        actor,
		SessionID:   sessionID,
		ItemID:      itemID,
	})
	if err != nil {
		s.logger.Warn("Falha ao registrar atividade.", map[string]interface{}{
			"session_id": sessionID,
			"action":     action,
			"error":      err.Error(),
		})
	}
}

// ListActivities lista o histórico, mais recente primeiro.
func (s *Service) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	switch filter.Type {
	case "", domain.ActivityStocktake, domain.ActivityAdjustment:
	default:
		return nil, apperror.NewValidationError(fmt.Sprintf("tipo de atividade '%s' inválido.", filter.Type))
	}
	if filter.SessionID != "" {
		if err := requireSessionID(filter.SessionID); err != nil {
			return nil, err
		}
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultActivityLimit
	case filter.Limit > maxActivityLimit:
		filter.Limit = maxActivityLimit
	}
	return s.activities.List(ctx, filter)
}

func findItem(sheet reconcile.Sheet, itemID string) (domain.StocktakeItem, bool) {
	for _, item := range sheet.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return domain.StocktakeItem{}, false
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
