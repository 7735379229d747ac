// Pacote antifraude limita tentativas de voto suspeitas (rate limit Redis e modo noop).
package antifraude

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

var ErrRateLimitExceeded = fmt.Errorf("limite de tentativas de voto atingido")

// RedisRateLimiter conta tentativas por (sessão, CPF, IP) em janelas fixas.
// Limita abuso do endpoint de voto sem interferir na regra de voto único,
// que é responsabilidade do índice do banco.
type RedisRateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisRateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: prefix,
	}
}

func (r *RedisRateLimiter) Validar(ctx context.Context, sessaoID domain.SessaoID, cpf, origemIP string) error {
	if r.client == nil || r.limit <= 0 || r.window <= 0 {
		// Configurações inválidas caem automaticamente no modo permissivo.
		return nil
	}

	key := r.buildKey(sessaoID, cpf, origemIP)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("antifraude: falha ao incrementar chave: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return fmt.Errorf("antifraude: falha ao definir expiracao: %w", err)
		}
	}

	if int(count) > r.limit {
		return ErrRateLimitExceeded
	}

	return nil
}

func (r *RedisRateLimiter) buildKey(sessaoID domain.SessaoID, cpf, origemIP string) string {
	// Hash SHA-1 evita expor CPF/IP diretamente no Redis.
	base := fmt.Sprintf("%s|%s|%s", sessaoID, cpf, origemIP)
	hash := sha1.Sum([]byte(base))
	return fmt.Sprintf("%s:%s", r.keyPrefix, hex.EncodeToString(hash[:]))
}

var _ domain.Antifraude = (*RedisRateLimiter)(nil)
