// Executável principal da API: carrega a configuração, inicializa dependências e sobe o servidor HTTP.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rutsatz/desafio-votacao/docs"
	"github.com/rutsatz/desafio-votacao/internal/app/httpapi"
	"github.com/rutsatz/desafio-votacao/internal/app/votacao"
	"github.com/rutsatz/desafio-votacao/internal/domain"
	"github.com/rutsatz/desafio-votacao/internal/platform/antifraude"
	"github.com/rutsatz/desafio-votacao/internal/platform/clock"
	"github.com/rutsatz/desafio-votacao/internal/platform/config"
	"github.com/rutsatz/desafio-votacao/internal/platform/cpf"
	"github.com/rutsatz/desafio-votacao/internal/platform/health"
	"github.com/rutsatz/desafio-votacao/internal/platform/ids"
	"github.com/rutsatz/desafio-votacao/internal/platform/logger"
	"github.com/rutsatz/desafio-votacao/internal/platform/migrations"
	postgresstorage "github.com/rutsatz/desafio-votacao/internal/platform/storage/postgres"
	redisstorage "github.com/rutsatz/desafio-votacao/internal/platform/storage/redis"
)

// @title        API de Votação
// @version      1.0
// @description  API REST para pautas, sessões de votação e apuração de resultados.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuracao invalida", "err", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("fuso horario invalido", "err", err)
	}

	// Mantemos a conexão compartilhada em todo o ciclo para reaproveitar pool e checar readiness.
	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("falha ao conectar no postgres", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao resgatar sql.DB", "err", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		// Migrations automáticas apenas se habilitado, para evitar surpresas em produção.
		if err := migrations.Run(db); err != nil {
			logger.Fatal("falha na migracao automatica", "err", err)
		}
	}

	// Redis sustenta cache de resultados e antifraude.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("falha ao conectar no redis", "err", err)
	}
	defer redisClient.Close()

	dbPauta := postgresstorage.NewPautaRepository(db)
	dbSessao := postgresstorage.NewSessaoRepository(db)
	dbVoto := postgresstorage.NewVotoRepository(db)
	cache := redisstorage.NewResultadoCache(redisClient, cfg.ResultadoKeyPrefix)
	clockSystem := clock.NewSystemClock(loc)
	idGen := ids.NewGenerator()

	// Sem URL configurada a verificação de CPF fica permissiva (execução local).
	var cpfService domain.CPFService = cpf.NewAllowAll()
	if cfg.CPFAPIURL != "" {
		cpfService = cpf.NewClient(cfg.CPFAPIURL, cfg.CPFTimeout())
	}

	var antifraudeSvc domain.Antifraude = antifraude.NewNoop()
	if cfg.RateLimitEnabled {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		antifraudeSvc = antifraude.NewRedisRateLimiter(redisClient, cfg.RateLimitMaxTentativas, window, cfg.RateLimitKeyPrefix)
	}

	// Serviço agrega repositórios, consulta de CPF e cache para guardar a lógica de negócio.
	servico := votacao.NewService(
		dbPauta,
		dbSessao,
		dbVoto,
		cpfService,
		cache,
		antifraudeSvc,
		clockSystem,
		idGen,
	)

	mux := http.NewServeMux()
	checker := health.NewChecker(sqlDB, redisClient)

	// HTTP expõe API, health check, métricas e a documentação OpenAPI.
	api := httpapi.New(servico, logger.L(), loc)
	api.Register(mux)
	mux.HandleFunc("GET /readyz", checker.ReadyHandler())
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	logger.Info("api ouvindo", "addr", cfg.HTTPAddress)
	if err := http.ListenAndServe(cfg.HTTPAddress, mux); err != nil {
		logger.Fatal("erro no servidor", "err", err)
	}
}
