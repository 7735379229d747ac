// Worker assíncrono que apura sessões encerradas e publica os resultados na fila Redis.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rutsatz/desafio-votacao/internal/app/votacao"
	"github.com/rutsatz/desafio-votacao/internal/app/worker"
	"github.com/rutsatz/desafio-votacao/internal/platform/clock"
	"github.com/rutsatz/desafio-votacao/internal/platform/config"
	"github.com/rutsatz/desafio-votacao/internal/platform/cpf"
	"github.com/rutsatz/desafio-votacao/internal/platform/health"
	"github.com/rutsatz/desafio-votacao/internal/platform/logger"
	"github.com/rutsatz/desafio-votacao/internal/platform/migrations"
	postgresstorage "github.com/rutsatz/desafio-votacao/internal/platform/storage/postgres"
	redisstorage "github.com/rutsatz/desafio-votacao/internal/platform/storage/redis"
)

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

	// Worker usa a mesma conexão GORM da API para compartilhar migrations e modelos.
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
		// Evitamos divergência de schema rodando a mesma migração condicional da API.
		if err := migrations.Run(db); err != nil {
			logger.Fatal("falha na migracao automatica", "err", err)
		}
	}

	// Redis é obrigatório aqui porque fila e cache de resultados vivem sobre a mesma instância.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("falha ao conectar no redis", "err", err)
	}
	defer redisClient.Close()

	dbPauta := postgresstorage.NewPautaRepository(db)
	dbSessao := postgresstorage.NewSessaoRepository(db)
	dbVoto := postgresstorage.NewVotoRepository(db)
	cache := redisstorage.NewResultadoCache(redisClient, cfg.ResultadoKeyPrefix)
	fila := redisstorage.NewFila(redisClient, cfg.FilaResultadosKey)
	clockSystem := clock.NewSystemClock(loc)
	checker := health.NewChecker(sqlDB, redisClient)

	if cfg.WorkerMetricsAddress != "" {
		go func() {
			// Metrics expõe observabilidade enquanto a goroutine principal apura sessões.
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/readyz", checker.ReadyHandler())
			logger.Info("worker metrics ouvindo", "addr", cfg.WorkerMetricsAddress)
			if err := http.ListenAndServe(cfg.WorkerMetricsAddress, mux); err != nil {
				logger.Error("erro no servidor de metrics do worker", "err", err)
			}
		}()
	}

	// A apuração não consulta o serviço de CPF, então o worker usa o modo permissivo.
	servico := votacao.NewService(dbPauta, dbSessao, dbVoto, cpf.NewAllowAll(), cache, nil, clockSystem, nil)
	publisher := worker.NewResultadoPublisher(servico, dbSessao, fila, clockSystem)

	logger.Info("worker iniciado", "intervalo", cfg.WorkerInterval().String())
	ticker := time.NewTicker(cfg.WorkerInterval())
	defer ticker.Stop()

	for {
		sessoes, err := publisher.Pendentes(ctx)
		if err != nil {
			logger.Error("erro ao listar sessoes pendentes", "err", err)
		}
		for _, sessao := range sessoes {
			// Publicamos sessão a sessão; falha numa não bloqueia as demais.
			if err := publisher.Publicar(ctx, sessao); err != nil {
				logger.Error("erro ao publicar resultado", "sessao", sessao.ID, "err", err)
				continue
			}
			logger.Info("resultado publicado", "sessao", sessao.ID, "pauta", sessao.PautaID)
		}

		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				logger.Error("worker finalizado com erro", "err", ctx.Err())
			}
			logger.Info("worker finalizado")
			return
		case <-ticker.C:
		}
	}
}
