package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// ResultadoCache memoriza o resumo de sessões encerradas. O valor nunca
// expira sozinho: votos de sessão encerrada são imutáveis, então o resumo
// também é.
type ResultadoCache struct {
	client *redis.Client
	prefix string
}

func NewResultadoCache(client *redis.Client, prefix string) *ResultadoCache {
	if prefix == "" {
		prefix = "resultado"
	}
	return &ResultadoCache{
		client: client,
		prefix: prefix,
	}
}

func (c *ResultadoCache) Obter(ctx context.Context, sessaoID domain.SessaoID) (domain.ResumoVotacao, bool, error) {
	payload, err := c.client.Get(ctx, c.key(sessaoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResumoVotacao{}, false, nil
	}
	if err != nil {
		return domain.ResumoVotacao{}, false, fmt.Errorf("redis resultado: obter: %w", err)
	}

	var resumo domain.ResumoVotacao
	if err := json.Unmarshal(payload, &resumo); err != nil {
		return domain.ResumoVotacao{}, false, fmt.Errorf("redis resultado: payload invalido: %w", err)
	}
	return resumo, true, nil
}

func (c *ResultadoCache) Salvar(ctx context.Context, sessaoID domain.SessaoID, resumo domain.ResumoVotacao) error {
	payload, err := json.Marshal(resumo)
	if err != nil {
		return fmt.Errorf("redis resultado: serializar: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sessaoID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis resultado: salvar: %w", err)
	}
	return nil
}

func (c *ResultadoCache) key(sessaoID domain.SessaoID) string {
	return fmt.Sprintf("%s:%s", c.prefix, sessaoID)
}

var _ domain.ResultadoCache = (*ResultadoCache)(nil)
