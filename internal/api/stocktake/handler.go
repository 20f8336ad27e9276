package stocktake

import (
	"context"
	"net/http"
	"strconv"

	"gostocktake/internal/api/response"
	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/pkg/middleware"
)

// StocktakeService define o contrato que o Handler espera da camada de Serviço.
type StocktakeService interface {
	CreateSession(ctx context.Context, req domain.CreateSessionRequest) (domain.StocktakeSession, error)
	StartSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error)
	CompleteSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error)
	DiscardSession(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error)
	ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.StocktakeSession, error)
	ListItems(ctx context.Context, sessionID string, filter domain.ItemFilter) ([]domain.StocktakeItem, error)
	SubmitCount(ctx context.Context, itemID string, qty int, countedBy string) (domain.ItemUpdateResult, error)
	RequestRecount(ctx context.Context, itemID, note string) (domain.ItemUpdateResult, error)
	Approve(ctx context.Context, itemID string) (domain.ItemUpdateResult, error)
	BulkApprove(ctx context.Context, sessionID string) (domain.BulkApproveResult, error)
	ApplyAdjustments(ctx context.Context, sessionID string) (domain.AdjustmentResult, error)
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error)
}

// Handler agrupa todos os métodos de Handler de inventário.
type Handler struct {
	Service StocktakeService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StocktakeService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, h.Logger, successStatus, data)
}

// CreateSessionHandler lida com a requisição POST /v1/stocktakes.
// @Summary Cria uma sessão de inventário
// @Description Cria uma sessão em draft (padrão) ou já aberta. Sessões abertas sem itens recebem o snapshot do estoque do escopo.
// @Tags stocktakes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body domain.CreateSessionRequest true "Dados da sessão"
// @Success 201 {object} domain.StocktakeSession
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou escopo ausente"
// @Failure 409 {object} domain.ErrorResponse "Status inicial inválido"
// @Router /stocktakes [post]
func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSessionRequest
	if err := response.Decode(r, &req, false); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		req.CreatedBy = claims.Email
	}

	session, err := h.Service.CreateSession(r.Context(), req)
	h.respond(w, r, session, err, http.StatusCreated)
}

// ListSessionsHandler lida com a requisição GET /v1/stocktakes.
// @Summary Lista as sessões de inventário
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca por nome"
// @Param status query string false "draft, open ou completed"
// @Success 200 {array} domain.StocktakeSession
// @Failure 400 {object} domain.ErrorResponse
// @Router /stocktakes [get]
func (h *Handler) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessions, err := h.Service.ListSessions(r.Context(), domain.SessionFilter{
		Search: q.Get("search"),
		Status: domain.SessionStatus(q.Get("status")),
	})
	h.respond(w, r, sessions, err, http.StatusOK)
}

// GetSessionHandler lida com a requisição GET /v1/stocktakes/{id}.
// @Summary Busca uma sessão com seus agregados
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} domain.StocktakeSession
// @Failure 404 {object} domain.ErrorResponse
// @Router /stocktakes/{id} [get]
func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.GetSession(r.Context(), r.PathValue("id"))
	h.respond(w, r, session, err, http.StatusOK)
}

// DiscardSessionHandler lida com a requisição DELETE /v1/stocktakes/{id}.
// @Summary Descarta uma sessão em draft ou aberta
// @Tags stocktakes
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Sessão concluída ou modificada concorrentemente"
// @Router /stocktakes/{id} [delete]
func (h *Handler) DiscardSessionHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DiscardSession(r.Context(), r.PathValue("id"))
	h.respond(w, r, nil, err, http.StatusNoContent)
}

// StartSessionHandler lida com a requisição POST /v1/stocktakes/{id}/start.
// @Summary Inicia uma sessão em draft
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} domain.StocktakeSession
// @Failure 400 {object} domain.ErrorResponse "Nome ou escopo ausente"
// @Failure 409 {object} domain.ErrorResponse "Transição de estado inválida"
// @Router /stocktakes/{id}/start [post]
func (h *Handler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.StartSession(r.Context(), r.PathValue("id"))
	h.respond(w, r, session, err, http.StatusOK)
}

// CompleteSessionHandler lida com a requisição POST /v1/stocktakes/{id}/complete.
// @Summary Conclui uma sessão aberta
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} domain.StocktakeSession
// @Failure 409 {object} domain.ErrorResponse "Transição de estado inválida"
// @Router /stocktakes/{id}/complete [post]
func (h *Handler) CompleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.CompleteSession(r.Context(), r.PathValue("id"))
	h.respond(w, r, session, err, http.StatusOK)
}

// BulkApproveHandler lida com a requisição POST /v1/stocktakes/{id}/bulk-approve.
// @Summary Aprova todas as variâncias contadas da sessão
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} domain.BulkApproveResult
// @Failure 409 {object} domain.ErrorResponse
// @Router /stocktakes/{id}/bulk-approve [post]
func (h *Handler) BulkApproveHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.BulkApprove(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err, http.StatusOK)
}

// ApplyAdjustmentsHandler lida com a requisição POST /v1/stocktakes/{id}/adjustments.
// @Summary Aplica no estoque as variâncias aprovadas
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} domain.AdjustmentResult
// @Failure 400 {object} domain.ErrorResponse "Ajuste resultaria em estoque negativo"
// @Failure 409 {object} domain.ErrorResponse
// @Router /stocktakes/{id}/adjustments [post]
func (h *Handler) ApplyAdjustmentsHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.ApplyAdjustments(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err, http.StatusOK)
}

// ListItemsHandler lida com a requisição GET /v1/stocktakes/{id}/items.
// @Summary Lista os itens (tabela de variâncias) da sessão
// @Tags stocktakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Param search query string false "Nome do produto ou SKU"
// @Param status query string false "pending, counted, recount, approved ou adjusted"
// @Param variance_only query bool false "Somente itens com variância"
// @Success 200 {array} domain.StocktakeItem
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /stocktakes/{id}/items [get]
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Search: q.Get("search"),
		Status: domain.ItemStatus(q.Get("status")),
	}
	if raw := q.Get("variance_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.respond(w, r, nil, apperror.NewValidationError("variance_only deve ser true ou false."), 0)
			return
		}
		filter.VarianceOnly = v
	}

	items, err := h.Service.ListItems(r.Context(), r.PathValue("id"), filter)
	h.respond(w, r, items, err, http.StatusOK)
}

// ListActivitiesHandler lida com a requisição GET /v1/activities.
// @Summary Lista o histórico de contagens, aprovações e ajustes
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param session_id query string false "ID da sessão"
// @Param type query string false "stocktake ou adjustment"
// @Param limit query int false "Máximo de entradas (padrão 50, máximo 200)"
// @Success 200 {array} domain.Activity
// @Failure 400 {object} domain.ErrorResponse
// @Router /activities [get]
func (h *Handler) ListActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ActivityFilter{
		SessionID: q.Get("session_id"),
		Type:      domain.ActivityType(q.Get("type")),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.respond(w, r, nil, apperror.NewValidationError("limit deve ser um inteiro positivo."), 0)
			return
		}
		filter.Limit = limit
	}

	activities, err := h.Service.ListActivities(r.Context(), filter)
	h.respond(w, r, activities, err, http.StatusOK)
}

// SubmitCountHandler lida com a requisição POST /v1/stocktake-items/{id}/count.
// @Summary Registra a contagem física de um item
// @Tags stocktake-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Param count body domain.SubmitCountRequest true "Quantidade contada"
// @Success 200 {object} domain.ItemUpdateResult
// @Failure 400 {object} domain.ErrorResponse "Quantidade inválida"
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /stocktake-items/{id}/count [post]
func (h *Handler) SubmitCountHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitCountRequest
	if err := response.Decode(r, &req, false); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	if req.ActualQty == nil {
		h.respond(w, r, nil, apperror.NewValidationError("actual_qty é obrigatório."), 0)
		return
	}

	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		h.respond(w, r, nil, apperror.NewUnauthorizedError("Autorização necessária."), 0)
		return
	}

	result, err := h.Service.SubmitCount(r.Context(), r.PathValue("id"), *req.ActualQty, claims.Email)
	h.respond(w, r, result, err, http.StatusOK)
}

// RequestRecountHandler lida com a requisição POST /v1/stocktake-items/{id}/recount.
// @Summary Solicita a recontagem de um item com variância
// @Tags stocktake-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Param recount body domain.RecountRequest false "Motivo da recontagem"
// @Success 200 {object} domain.ItemUpdateResult
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Item sem variância"
// @Router /stocktake-items/{id}/recount [post]
func (h *Handler) RequestRecountHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RecountRequest
	if err := response.Decode(r, &req, true); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	result, err := h.Service.RequestRecount(r.Context(), r.PathValue("id"), req.Note)
	h.respond(w, r, result, err, http.StatusOK)
}

// ApproveHandler lida com a requisição POST /v1/stocktake-items/{id}/approve.
// @Summary Aprova a variância de um item
// @Tags stocktake-items
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do item"
// @Success 200 {object} domain.ItemUpdateResult
// @Failure 409 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Item sem variância"
// @Router /stocktake-items/{id}/approve [post]
func (h *Handler) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Approve(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err, http.StatusOK)
}
