package antifraude

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRateLimiter(client, limit, window, "ratelimit"), mr
}

func TestRedisRateLimiterDentroDoLimite(t *testing.T) {
	limiter, _ := newLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
	}
}

func TestRedisRateLimiterBloqueiaAcimaDoLimite(t *testing.T) {
	limiter, _ := newLimiter(t, 2, time.Minute)

	require.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
	require.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))

	err := limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1")
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
}

func TestRedisRateLimiterChavesIndependentes(t *testing.T) {
	limiter, _ := newLimiter(t, 1, time.Minute)

	require.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))

	// CPF, IP ou sessão diferentes contam em janelas separadas.
	assert.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "52998224725", "10.0.0.1"))
	assert.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.2"))
	assert.NoError(t, limiter.Validar(context.Background(), "02SESSAO", "33546206096", "10.0.0.1"))
}

func TestRedisRateLimiterJanelaExpira(t *testing.T) {
	limiter, mr := newLimiter(t, 1, time.Minute)

	require.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
	require.ErrorIs(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"), ErrRateLimitExceeded)

	mr.FastForward(2 * time.Minute)

	assert.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
}

func TestRedisRateLimiterDesativadoSemConfiguracao(t *testing.T) {
	limiter, _ := newLimiter(t, 0, time.Minute)

	for i := 0; i < 10; i++ {
		assert.NoError(t, limiter.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
	}
}

func TestNoopNuncaBloqueia(t *testing.T) {
	noop := NewNoop()
	for i := 0; i < 10; i++ {
		assert.NoError(t, noop.Validar(context.Background(), "01SESSAO", "33546206096", "10.0.0.1"))
	}
}
