package inventory

import (
	"context"
	"net/http"

	"gostocktake/internal/api/response"
	"gostocktake/internal/domain"
	"gostocktake/internal/pkg/logger"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	ListLevels(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryLevel, error)
	UpsertLevel(ctx context.Context, level domain.InventoryLevel) (domain.InventoryLevel, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListLevelsHandler lida com a requisição GET /v1/inventory.
// @Summary Lista os saldos do sistema
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param zone query string false "Zona"
// @Param category query string false "Categoria"
// @Success 200 {array} domain.InventoryLevel
// @Router /inventory [get]
func (h *Handler) ListLevelsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	levels, err := h.Service.ListLevels(r.Context(), domain.InventoryFilter{
		Zone:     q.Get("zone"),
		Category: q.Get("category"),
	})
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, h.Logger, http.StatusOK, levels)
}

// UpsertLevelHandler lida com a requisição PUT /v1/inventory.
// @Summary Cadastra ou substitui o saldo de um produto em uma localização
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param level body domain.InventoryLevel true "Saldo"
// @Success 200 {object} domain.InventoryLevel
// @Failure 400 {object} domain.ErrorResponse
// @Router /inventory [put]
func (h *Handler) UpsertLevelHandler(w http.ResponseWriter, r *http.Request) {
	var level domain.InventoryLevel
	if err := response.Decode(r, &level, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	saved, err := h.Service.UpsertLevel(r.Context(), level)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, h.Logger, http.StatusOK, saved)
}
