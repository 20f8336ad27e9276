package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gostocktake/config"
	"gostocktake/internal/api/inventory"
	"gostocktake/internal/api/router"
	"gostocktake/internal/api/stocktake"
	"gostocktake/internal/api/user"
	"gostocktake/internal/pkg/cache"
	"gostocktake/internal/pkg/database"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/pkg/token"
	"gostocktake/internal/reconcile"
	"gostocktake/internal/repository/activityrepo"
	"gostocktake/internal/repository/inventoryrepo"
	"gostocktake/internal/repository/stocktakerepo"
	"gostocktake/internal/repository/userrepo"
	"gostocktake/internal/service/inventoryservice"
	"gostocktake/internal/service/stocktakeservice"
	"gostocktake/internal/service/userservice"
)

// @title GoStocktake API
// @version 1.0
// @description API de reconciliação de inventário: sessões de contagem, variâncias, aprovação e ajustes de estoque.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	stdlog.Println("⚡ Inicializando serviço GoStocktake...")

	// 0. Variáveis de ambiente (.env). Sem o arquivo, seguimos com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("❌ %v", err)
	}

	var log logger.Logger
	if cfg.IsDevelopment() {
		log = logger.NewDevelopmentLogger(cfg.LogLevel)
	} else {
		log = logger.NewLogger(cfg.LogLevel)
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.DefaultPoolConfig)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis o serviço segue: o cache é ignorado e o rate limiter libera o tráfego.
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	if err != nil {
		log.Warn("Redis indisponível, seguindo sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	defer cacheClient.Close()

	// 3. Injeção de Dependências
	// Ordem: Repository -> Service -> Handler

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	sessionRepo := stocktakerepo.NewRepository(db, cacheClient, cfg.DBTimeout, cfg.SessionCacheTTL, log)
	inventoryRepo := inventoryrepo.NewInventoryRepository(db, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	activityRepo := activityrepo.NewActivityRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	stocktakeSvc := stocktakeservice.NewService(sessionRepo, inventoryRepo, activityRepo, reconcile.New(), log)
	inventorySvc := inventoryservice.NewService(inventoryRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	stocktakeHandler := stocktake.NewHandler(stocktakeSvc, log)
	inventoryHandler := inventory.NewHandler(inventorySvc, log)
	userHandler := user.NewHandler(userSvc, log)

	// 4. Roteador e Servidor
	r := router.NewRouter(stocktakeHandler, inventoryHandler, userHandler, tokenSvc, cacheClient, cfg, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Servidor GoStocktake ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Servidor encerrado com erro.", err)
		return
	}
	log.Info("Servidor encerrado com sucesso.", nil)
}
