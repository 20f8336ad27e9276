package activityrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"gostocktake/internal/domain"
	"gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
)

const insertActivitySQL = `INSERT INTO activity_log (id, type, action, description, actor, session_id, item_id, created_at)
                  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8)`

// ActivityRepository persiste o histórico de operações de inventário.
type ActivityRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewActivityRepository cria uma nova instância do ActivityRepository.
func NewActivityRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ActivityRepository {
	return &ActivityRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Record grava uma entrada do histórico.
func (r *ActivityRepository) Record(ctx context.Context, activity domain.Activity) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctxTimeout, insertActivitySQL,
		activity.ID,
		activity.Type,
		activity.Action,
		activity.Description,
		activity.User,
		activity.SessionID,
		activity.ItemID,
		activity.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao gravar atividade no DB.", err)
		return errors.NewDBError("Falha ao gravar atividade", err)
	}
	return nil
}

// List retorna as entradas mais recentes primeiro.
func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, type, action, description, actor, session_id, COALESCE(item_id::text, ''), created_at
        FROM activity_log
        WHERE ($1 = '' OR session_id::text = $1)
          AND ($2 = '' OR type = $2)
        ORDER BY created_at DESC
        LIMIT $3`

	rows, err := r.DB.QueryContext(ctxTimeout, query, filter.SessionID, string(filter.Type), filter.Limit)
	if err != nil {
		r.logger.Error("Falha ao listar atividades.", err)
		return nil, errors.NewDBError("Falha ao listar atividades", err)
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Action, &a.Description, &a.User, &a.SessionID, &a.ItemID, &a.CreatedAt); err != nil {
			return nil, errors.NewDBError("Falha ao ler atividade", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar atividades", err)
	}
	return activities, nil
}
