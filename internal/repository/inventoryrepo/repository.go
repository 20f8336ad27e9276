package inventoryrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gostocktake/internal/domain"
	"gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
)

// InventoryRepository lê e ajusta os níveis de estoque por produto e localização.
type InventoryRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewInventoryRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewInventoryRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *InventoryRepository {
	return &InventoryRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// ListByScope retorna o snapshot do estoque de uma zona ou categoria, na ordem de localização.
func (r *InventoryRepository) ListByScope(ctx context.Context, scope domain.ScopeType, value string) ([]domain.ItemDescriptor, error) {
	r.logger.Debug("Buscando estoque do escopo.", map[string]interface{}{"scope": scope, "value": value})

	var column string
	switch scope {
	case domain.ScopeZone:
		column = "zone"
	case domain.ScopeCategory:
		column = "category"
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("Tipo de escopo '%s' inválido.", scope))
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT product_id, product_name, sku, location, quantity
        FROM inventory_levels
        WHERE ` + column + ` = $1
        ORDER BY location, sku`

	rows, err := r.DB.QueryContext(ctxTimeout, query, value)
	if err != nil {
		r.logger.Error("Falha ao buscar estoque do escopo.", err)
		return nil, errors.NewDBError("Falha ao buscar estoque", err)
	}
	defer rows.Close()

	items := []domain.ItemDescriptor{}
	for rows.Next() {
		var d domain.ItemDescriptor
		if err := rows.Scan(&d.ProductID, &d.ProductName, &d.SKU, &d.Location, &d.SystemQty); err != nil {
			return nil, errors.NewDBError("Falha ao ler nível de estoque", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar níveis de estoque", err)
	}

	r.logger.Debug("Estoque do escopo carregado.", map[string]interface{}{"scope": scope, "value": value, "items": len(items)})
	return items, nil
}

// ApplyAdjustments aplica os deltas em uma única transação, com FOR UPDATE e controle de
// concorrência otimista. Ajustes cujo item já foi registrado em stock_adjustments são ignorados.
// Retorna quantos ajustes foram efetivamente aplicados.
func (r *InventoryRepository) ApplyAdjustments(ctx context.Context, adjustments []domain.Adjustment) (int, error) {
	if len(adjustments) == 0 {
		return 0, nil
	}
	r.logger.Debug("Iniciando aplicação de ajustes de estoque.", map[string]interface{}{"adjustments": len(adjustments)})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de ajuste.", err)
		return 0, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	applied := 0
	for _, adj := range adjustments {
		ok, err := r.applyOne(ctxTimeout, tx, adj)
		if err != nil {
			return 0, err
		}
		if ok {
			applied++
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação de ajuste.", err)
		return 0, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Ajustes de estoque aplicados.", map[string]interface{}{"applied": applied, "skipped": len(adjustments) - applied})
	return applied, nil
}

func (r *InventoryRepository) applyOne(ctx context.Context, tx *sql.Tx, adj domain.Adjustment) (bool, error) {
	// 1. Registra o ajuste; se o item já foi ajustado antes, não faz nada.
	result, err := tx.ExecContext(ctx, `
        INSERT INTO stock_adjustments (item_id, session_id, product_id, location, delta, applied_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (item_id) DO NOTHING`,
		adj.ItemID, adj.SessionID, adj.ProductID, adj.Location, adj.Delta, time.Now(),
	)
	if err != nil {
		r.logger.Error("Falha ao registrar ajuste de estoque.", err)
		return false, errors.NewDBError("Falha ao registrar ajuste", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if inserted == 0 {
		r.logger.Debug("Ajuste já aplicado anteriormente.", map[string]interface{}{"item_id": adj.ItemID})
		return false, nil
	}

	// 2. Bloqueia o nível de estoque e lê a versão atual.
	var level domain.InventoryLevel
	err = tx.QueryRowContext(ctx, `
        SELECT id, quantity, version
        FROM inventory_levels
        WHERE product_id = $1 AND location = $2 FOR UPDATE`,
		adj.ProductID, adj.Location,
	).Scan(&level.ID, &level.Quantity, &level.Version)
	if err == sql.ErrNoRows {
		return false, errors.NewNotFoundError(fmt.Sprintf("Estoque do produto %s em %s não encontrado.", adj.ProductID, adj.Location))
	}
	if err != nil {
		r.logger.Error("Falha ao selecionar nível de estoque para ajuste.", err)
		return false, errors.NewDBError("Falha ao buscar estoque para ajuste", err)
	}

	newQuantity := level.Quantity + adj.Delta
	if newQuantity < 0 {
		r.logger.Warn("Ajuste resultaria em estoque negativo.", map[string]interface{}{
			"product_id":       adj.ProductID,
			"location":         adj.Location,
			"current_quantity": level.Quantity,
			"delta":            adj.Delta,
		})
		return false, errors.NewValidationError("Ajuste resultaria em quantidade de estoque negativa.")
	}

	// 3. Atualiza com OCC.
	result, err = tx.ExecContext(ctx, `
        UPDATE inventory_levels
        SET quantity = $1, version = $2, updated_at = $3
        WHERE id = $4 AND version = $5`,
		newQuantity, level.Version+1, time.Now(), level.ID, level.Version,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar nível de estoque.", err)
		return false, errors.NewDBError("Falha ao atualizar estoque", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão do estoque desatualizada.", map[string]interface{}{
			"product_id":       adj.ProductID,
			"location":         adj.Location,
			"expected_version": level.Version,
		})
		return false, errors.NewConflictError("O estoque foi modificado por outra operação. Tente novamente.")
	}
	return true, nil
}

const levelColumns = `id, product_id, product_name, sku, location, zone, category, quantity, version, created_at, updated_at`

func scanLevel(row interface{ Scan(...interface{}) error }) (domain.InventoryLevel, error) {
	var l domain.InventoryLevel
	err := row.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.SKU, &l.Location, &l.Zone, &l.Category,
		&l.Quantity, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// ListLevels lista os saldos cadastrados, filtrando por zona e categoria quando informadas.
func (r *InventoryRepository) ListLevels(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryLevel, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT ` + levelColumns + `
        FROM inventory_levels
        WHERE ($1 = '' OR zone = $1) AND ($2 = '' OR category = $2)
        ORDER BY location, sku`

	rows, err := r.DB.QueryContext(ctxTimeout, query, filter.Zone, filter.Category)
	if err != nil {
		r.logger.Error("Falha ao listar níveis de estoque.", err)
		return nil, errors.NewDBError("Falha ao listar estoque", err)
	}
	defer rows.Close()

	levels := []domain.InventoryLevel{}
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler nível de estoque", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar níveis de estoque", err)
	}
	return levels, nil
}

// UpsertLevel cadastra ou substitui o saldo de um produto em uma localização, incrementando a versão.
func (r *InventoryRepository) UpsertLevel(ctx context.Context, level domain.InventoryLevel) (domain.InventoryLevel, error) {
	r.logger.Debug("Gravando nível de estoque.", map[string]interface{}{"product_id": level.ProductID, "location": level.Location})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	now := time.Now()
	query := `
        INSERT INTO inventory_levels (` + levelColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $9)
        ON CONFLICT (product_id, location) DO UPDATE
        SET product_name = EXCLUDED.product_name, sku = EXCLUDED.sku, zone = EXCLUDED.zone,
            category = EXCLUDED.category, quantity = EXCLUDED.quantity,
            version = inventory_levels.version + 1, updated_at = EXCLUDED.updated_at
        RETURNING ` + levelColumns

	saved, err := scanLevel(r.DB.QueryRowContext(ctxTimeout, query,
		uuid.NewString(), level.ProductID, level.ProductName, level.SKU, level.Location,
		level.Zone, level.Category, level.Quantity, now,
	))
	if err != nil {
		r.logger.Error("Falha ao gravar nível de estoque.", err)
		return domain.InventoryLevel{}, errors.NewDBError("Falha ao gravar nível de estoque", err)
	}

	r.logger.Info("Nível de estoque gravado.", map[string]interface{}{
		"product_id": saved.ProductID,
		"location":   saved.Location,
		"quantity":   saved.Quantity,
		"version":    saved.Version,
	})
	return saved, nil
}
