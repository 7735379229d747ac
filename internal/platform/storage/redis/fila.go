// Pacote redis implementa a fila de resultados e o cache de resumos sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// Fila usa listas Redis para publicar os resultados das sessões encerradas
// a consumidores externos (contabilidade, notificações).
type Fila struct {
	client *redis.Client
	key    string
}

func NewFila(client *redis.Client, key string) *Fila {
	return &Fila{
		client: client,
		key:    key,
	}
}

func (f *Fila) Publicar(ctx context.Context, resultado domain.ResultadoSessao) error {
	payload, err := json.Marshal(resultado)
	if err != nil {
		return fmt.Errorf("redis fila: falha serializando resultado: %w", err)
	}
	if err := f.client.LPush(ctx, f.key, payload).Err(); err != nil {
		return fmt.Errorf("redis fila: falha ao enfileirar resultado: %w", err)
	}
	return nil
}

func (f *Fila) Consumir(ctx context.Context, handler func(context.Context, domain.ResultadoSessao) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// BRPOP mantém o consumo bloqueado mas com timeout curto para respeitar o contexto.
		res, err := f.client.BRPop(ctx, 5*time.Second, f.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("redis fila: falha ao consumir resultado: %w", err)
		}

		if len(res) != 2 {
			continue
		}

		var resultado domain.ResultadoSessao
		if err := json.Unmarshal([]byte(res[1]), &resultado); err != nil {
			return fmt.Errorf("redis fila: payload invalido: %w", err)
		}

		if err := handler(ctx, resultado); err != nil {
			return err
		}
	}
}

var _ domain.FilaResultados = (*Fila)(nil)
