package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gostocktake/config"
	"gostocktake/internal/api/inventory"
	"gostocktake/internal/api/stocktake"
	"gostocktake/internal/api/user"
	"gostocktake/internal/domain"
	"gostocktake/internal/pkg/cache"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/pkg/middleware"

	_ "gostocktake/docs" // registra a especificação Swagger gerada pelo swag
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	stocktakeHandler *stocktake.Handler,
	inventoryHandler *inventory.Handler,
	userHandler *user.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	cfg *config.Config,
	log logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(tokenSvc, log)
	managers := middleware.PermissionMiddleware(log, domain.RoleSupervisor, domain.RoleAdmin)
	admins := middleware.PermissionMiddleware(log, domain.RoleAdmin)

	// auth exige apenas um JWT válido; managed exige também supervisor ou admin.
	managed := func(h http.HandlerFunc) http.HandlerFunc { return auth(managers(h)) }

	// --- 1. Rotas públicas ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.HandleFunc("POST /v1/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("POST /v1/login", userHandler.LoginUserHandler)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- 2. Sessões de inventário ---
	mux.HandleFunc("POST /v1/stocktakes", managed(stocktakeHandler.CreateSessionHandler))
	mux.HandleFunc("GET /v1/stocktakes", auth(stocktakeHandler.ListSessionsHandler))
	mux.HandleFunc("GET /v1/stocktakes/{id}", auth(stocktakeHandler.GetSessionHandler))
	mux.HandleFunc("DELETE /v1/stocktakes/{id}", managed(stocktakeHandler.DiscardSessionHandler))
	mux.HandleFunc("POST /v1/stocktakes/{id}/start", managed(stocktakeHandler.StartSessionHandler))
	mux.HandleFunc("POST /v1/stocktakes/{id}/complete", managed(stocktakeHandler.CompleteSessionHandler))
	mux.HandleFunc("POST /v1/stocktakes/{id}/bulk-approve", managed(stocktakeHandler.BulkApproveHandler))
	mux.HandleFunc("POST /v1/stocktakes/{id}/adjustments", managed(stocktakeHandler.ApplyAdjustmentsHandler))
	mux.HandleFunc("GET /v1/stocktakes/{id}/items", auth(stocktakeHandler.ListItemsHandler))
	mux.HandleFunc("GET /v1/activities", auth(stocktakeHandler.ListActivitiesHandler))

	// --- 3. Itens de inventário ---
	mux.HandleFunc("POST /v1/stocktake-items/{id}/count", auth(stocktakeHandler.SubmitCountHandler))
	mux.HandleFunc("POST /v1/stocktake-items/{id}/recount", managed(stocktakeHandler.RequestRecountHandler))
	mux.HandleFunc("POST /v1/stocktake-items/{id}/approve", managed(stocktakeHandler.ApproveHandler))

	// --- 4. Saldos do sistema ---
	mux.HandleFunc("GET /v1/inventory", auth(inventoryHandler.ListLevelsHandler))
	mux.HandleFunc("PUT /v1/inventory", auth(admins(inventoryHandler.UpsertLevelHandler)))

	// --- 5. Usuários ---
	mux.HandleFunc("PUT /v1/users/{id}/role", auth(admins(userHandler.AssignRoleHandler)))

	// --- 6. Middlewares globais ---
	return middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
