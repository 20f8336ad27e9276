package stocktakerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gostocktake/internal/domain"
	"gostocktake/internal/errors"
	"gostocktake/internal/pkg/cache"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/reconcile"
)

// Define a chave de cache para o cabeçalho das sessões.
const sessionCacheKey = "stocktake:session:%s"

// Repository persiste sessões de inventário e seus itens no PostgreSQL.
// A gravação usa controle de concorrência otimista (coluna version).
type Repository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewRepository cria e retorna uma nova instância do Repositório de Inventário.
func NewRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *Repository {
	return &Repository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

const sessionColumns = `id, name, scope_type, zone, category, status, created_by,
        total_items, counted_items, variance_count, version, created_at, updated_at`

const itemColumns = `id, session_id, product_id, product_name, sku, location,
        system_qty, actual_qty, status, counted_by, counted_at, notes`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (domain.StocktakeSession, error) {
	var s domain.StocktakeSession
	err := row.Scan(
		&s.ID, &s.Name, &s.Type, &s.Zone, &s.Category, &s.Status, &s.CreatedBy,
		&s.TotalItems, &s.CountedItems, &s.VarianceCount, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.StocktakeSession{}, err
	}
	s.ProgressPercent = reconcile.Progress(s.CountedItems, s.TotalItems)
	return s, nil
}

func scanItem(row rowScanner) (domain.StocktakeItem, error) {
	var (
		item      domain.StocktakeItem
		actualQty sql.NullInt64
		countedAt sql.NullTime
	)
	err := row.Scan(
		&item.ID, &item.SessionID, &item.ProductID, &item.ProductName, &item.SKU, &item.Location,
		&item.SystemQty, &actualQty, &item.Status, &item.CountedBy, &countedAt, &item.Notes,
	)
	if err != nil {
		return domain.StocktakeItem{}, err
	}
	if actualQty.Valid {
		v := int(actualQty.Int64)
		item.ActualQty = &v
	}
	if countedAt.Valid {
		t := countedAt.Time
		item.CountedAt = &t
	}
	return item, nil
}

// Create insere uma nova sessão e seus itens em uma única transação.
func (r *Repository) Create(ctx context.Context, sheet reconcile.Sheet) error {
	r.logger.Debug("Inserindo sessão de inventário.", map[string]interface{}{"session_id": sheet.Session.ID, "items": len(sheet.Items)})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	s := sheet.Session
	const insertSession = `
        INSERT INTO stocktake_sessions (` + sessionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = tx.ExecContext(ctxTimeout, insertSession,
		s.ID, s.Name, s.Type, s.Zone, s.Category, s.Status, s.CreatedBy,
		s.TotalItems, s.CountedItems, s.VarianceCount, s.Version, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir sessão de inventário.", err)
		return errors.NewDBError("Falha ao inserir sessão", err)
	}

	if err := r.upsertItems(ctxTimeout, tx, sheet.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDBError("Falha ao commitar transação", err)
	}
	return nil
}

// Load carrega a sessão com todos os itens. Variância e agregados são recalculados a
// partir de system_qty/actual_qty; nada derivado é lido do banco.
func (r *Repository) Load(ctx context.Context, sessionID string) (reconcile.Sheet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	session, err := scanSession(r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+sessionColumns+` FROM stocktake_sessions WHERE id = $1`, sessionID))
	if err == sql.ErrNoRows {
		return reconcile.Sheet{}, errors.NewNotFoundError(fmt.Sprintf("Sessão %s não encontrada.", sessionID))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar sessão de inventário.", err)
		return reconcile.Sheet{}, errors.NewDBError("Falha ao buscar sessão", err)
	}

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT `+itemColumns+` FROM stocktake_items WHERE session_id = $1 ORDER BY position`, sessionID)
	if err != nil {
		return reconcile.Sheet{}, errors.NewDBError("Falha ao buscar itens da sessão", err)
	}
	defer rows.Close()

	items := []domain.StocktakeItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return reconcile.Sheet{}, errors.NewDBError("Falha ao ler item da sessão", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return reconcile.Sheet{}, errors.NewDBError("Falha ao iterar itens da sessão", err)
	}

	return reconcile.Recalculate(reconcile.Sheet{Session: session, Items: items}), nil
}

// FindSessionIDByItem resolve a sessão dona de um item.
func (r *Repository) FindSessionIDByItem(ctx context.Context, itemID string) (string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sessionID string
	err := r.DB.QueryRowContext(ctxTimeout, `SELECT session_id FROM stocktake_items WHERE id = $1`, itemID).Scan(&sessionID)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError(fmt.Sprintf("Item %s não encontrado.", itemID))
	}
	if err != nil {
		return "", errors.NewDBError("Falha ao buscar item", err)
	}
	return sessionID, nil
}

// Save grava a sessão e os itens se a versão no banco ainda for expectedVersion.
// Retorna o sheet com a nova versão ou ConflictError se outra operação gravou antes.
func (r *Repository) Save(ctx context.Context, sheet reconcile.Sheet, expectedVersion int) (reconcile.Sheet, error) {
	r.logger.Debug("Gravando sessão de inventário.", map[string]interface{}{
		"session_id":       sheet.Session.ID,
		"expected_version": expectedVersion,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return reconcile.Sheet{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	s := sheet.Session
	const updateSession = `
        UPDATE stocktake_sessions
        SET name = $1, status = $2, total_items = $3, counted_items = $4, variance_count = $5,
            version = $6, updated_at = $7
        WHERE id = $8 AND version = $9`

	result, err := tx.ExecContext(ctxTimeout, updateSession,
		s.Name, s.Status, s.TotalItems, s.CountedItems, s.VarianceCount,
		expectedVersion+1, s.UpdatedAt, s.ID, expectedVersion,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar sessão de inventário.", err)
		return reconcile.Sheet{}, errors.NewDBError("Falha ao atualizar sessão", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return reconcile.Sheet{}, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Falha no controle de concorrência otimista (OCC). Versão da sessão desatualizada.", map[string]interface{}{
			"session_id":       s.ID,
			"expected_version": expectedVersion,
		})
		return reconcile.Sheet{}, errors.NewConflictError("A sessão foi modificada por outra operação. Recarregue e tente novamente.")
	}

	if err := r.upsertItems(ctxTimeout, tx, sheet.Items); err != nil {
		return reconcile.Sheet{}, err
	}

	if err := tx.Commit(); err != nil {
		return reconcile.Sheet{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.invalidate(ctx, s.ID)

	sheet.Session.Version = expectedVersion + 1
	return sheet, nil
}

// upsertItems insere itens novos e atualiza os campos mutáveis dos existentes.
// system_qty nunca é alterado depois da criação do item.
func (r *Repository) upsertItems(ctx context.Context, tx *sql.Tx, items []domain.StocktakeItem) error {
	if len(items) == 0 {
		return nil
	}

	const upsertItem = `
        INSERT INTO stocktake_items (id, session_id, position, product_id, product_name, sku, location,
            system_qty, actual_qty, status, counted_by, counted_at, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (id) DO UPDATE
        SET actual_qty = EXCLUDED.actual_qty, status = EXCLUDED.status, counted_by = EXCLUDED.counted_by,
            counted_at = EXCLUDED.counted_at, notes = EXCLUDED.notes`

	stmt, err := tx.PrepareContext(ctx, upsertItem)
	if err != nil {
		return errors.NewDBError("Falha ao preparar gravação dos itens", err)
	}
	defer stmt.Close()

	for pos, item := range items {
		var actualQty sql.NullInt64
		if item.ActualQty != nil {
			actualQty = sql.NullInt64{Int64: int64(*item.ActualQty), Valid: true}
		}
		var countedAt sql.NullTime
		if item.CountedAt != nil {
			countedAt = sql.NullTime{Time: *item.CountedAt, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			item.ID, item.SessionID, pos, item.ProductID, item.ProductName, item.SKU, item.Location,
			item.SystemQty, actualQty, item.Status, item.CountedBy, countedAt, item.Notes,
		); err != nil {
			r.logger.Error("Falha ao gravar item da sessão.", err)
			return errors.NewDBError("Falha ao gravar item", err)
		}
	}
	return nil
}

// GetSession busca o cabeçalho da sessão usando a estratégia Cache-Aside.
func (r *Repository) GetSession(ctx context.Context, sessionID string) (domain.StocktakeSession, error) {
	key := fmt.Sprintf(sessionCacheKey, sessionID)

	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, key)
		if err == nil {
			var session domain.StocktakeSession
			if json.Unmarshal([]byte(cached), &session) == nil {
				return session, nil
			}
		} else if err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao ler sessão do cache.", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		}
	}

	sheet, err := r.Load(ctx, sessionID)
	if err != nil {
		return domain.StocktakeSession{}, err
	}

	if r.Cache != nil {
		if payload, err := json.Marshal(sheet.Session); err == nil {
			if err := r.Cache.Set(ctx, key, payload, r.CacheTTL); err != nil {
				r.logger.Warn("Falha ao gravar sessão no cache.", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
			}
		}
	}
	return sheet.Session, nil
}

// List retorna as sessões mais recentes primeiro, filtrando por nome e status.
func (r *Repository) List(ctx context.Context, filter domain.SessionFilter) ([]domain.StocktakeSession, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		conditions []string
		args       []interface{}
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + sessionColumns + ` FROM stocktake_sessions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar sessões de inventário.", err)
		return nil, errors.NewDBError("Falha ao listar sessões", err)
	}
	defer rows.Close()

	sessions := []domain.StocktakeSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao ler sessão", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar sessões", err)
	}
	return sessions, nil
}

// Delete descarta a sessão e, por cascata, os seus itens.
func (r *Repository) Delete(ctx context.Context, sessionID string, expectedVersion int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM stocktake_sessions WHERE id = $1 AND version = $2`, sessionID, expectedVersion)
	if err != nil {
		return errors.NewDBError("Falha ao remover sessão", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewConflictError("A sessão foi modificada por outra operação. Recarregue e tente novamente.")
	}

	r.invalidate(ctx, sessionID)
	return nil
}

func (r *Repository) invalidate(ctx context.Context, sessionID string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(sessionCacheKey, sessionID)); err != nil {
		r.logger.Warn("Falha ao invalidar sessão no cache.", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
	}
}
