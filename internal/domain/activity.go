package domain

import (
	"context"
	"time"
)

// ActivityType agrupa as entradas do histórico exibido no painel.
type ActivityType string

const (
	ActivityStocktake  ActivityType = "stocktake"
	ActivityAdjustment ActivityType = "adjustment"
)

// SystemActor é o autor registrado quando a operação não vem de um usuário autenticado.
const SystemActor = "sistema"

// Activity é uma entrada do histórico de operações de inventário.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Action      string       `json:"action" example:"approve"`
	Description string       `json:"description" example:"Variância -2 aprovada para SKU-001 (A-01-01)."`
	User        string       `json:"user" example:"supervisor@gostocktake.io"`
	SessionID   string       `json:"session_id"`
	ItemID      string       `json:"item_id,omitempty"`
	CreatedAt   time.Time    `json:"timestamp"`
}

// ActivityFilter restringe a listagem do histórico.
type ActivityFilter struct {
	SessionID string
	Type      ActivityType
	Limit     int
}

type actorKey struct{}

// WithActor anexa ao contexto o autor das operações da requisição.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom devolve o autor anexado por WithActor.
func ActorFrom(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey{}).(string)
	return actor, ok && actor != ""
}
