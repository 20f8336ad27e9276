package inventoryservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
)

// InventoryRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type InventoryRepository interface {
	ListLevels(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryLevel, error)
	UpsertLevel(ctx context.Context, level domain.InventoryLevel) (domain.InventoryLevel, error)
}

// Service mantém os saldos do sistema que alimentam as sessões de inventário.
type Service struct {
	repo   InventoryRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo InventoryRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListLevels lista os saldos por zona e/ou categoria.
func (s *Service) ListLevels(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryLevel, error) {
	filter.Zone = strings.TrimSpace(filter.Zone)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.ListLevels(ctx, filter)
}

// UpsertLevel cadastra ou substitui o saldo de um produto em uma localização.
func (s *Service) UpsertLevel(ctx context.Context, level domain.InventoryLevel) (domain.InventoryLevel, error) {
	s.logger.Debug("Iniciando gravação de saldo no serviço.", map[string]interface{}{
		"product_id": level.ProductID,
		"location":   level.Location,
		"quantity":   level.Quantity,
	})

	level.ProductID = strings.TrimSpace(level.ProductID)
	level.Location = strings.TrimSpace(level.Location)
	level.Zone = strings.TrimSpace(level.Zone)
	level.Category = strings.TrimSpace(level.Category)

	switch {
	case level.ProductID == "":
		return domain.InventoryLevel{}, apperror.NewValidationError("O campo 'product_id' é obrigatório.")
	case level.Location == "":
		return domain.InventoryLevel{}, apperror.NewValidationError("O campo 'location' é obrigatório.")
	case level.Zone == "" || level.Category == "":
		return domain.InventoryLevel{}, apperror.NewValidationError("Os campos 'zone' e 'category' são obrigatórios.")
	case level.Quantity < 0:
		return domain.InventoryLevel{}, apperror.NewInvalidQuantityError(level.Quantity)
	}

	saved, err := s.repo.UpsertLevel(ctx, level)
	if err != nil {
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return domain.InventoryLevel{}, err
		}
		return domain.InventoryLevel{}, apperror.NewInternalError(fmt.Sprintf("Falha ao gravar saldo do produto %s.", level.ProductID), err)
	}

	s.logger.Info("Saldo gravado com sucesso.", map[string]interface{}{
		"product_id":  saved.ProductID,
		"location":    saved.Location,
		"new_version": saved.Version,
	})
	return saved, nil
}
