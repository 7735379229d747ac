// Pacote worker contém a publicação assíncrona dos resultados de sessões encerradas.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rutsatz/desafio-votacao/internal/domain"
	"github.com/rutsatz/desafio-votacao/internal/platform/metrics"
)

// ResultadoPublisher apura sessões encerradas ainda não publicadas e envia o
// resumo para a fila de resultados. Cada sessão é publicada no máximo uma vez:
// o flag resultado_publicado só é marcado depois do envio à fila.
type ResultadoPublisher struct {
	service domain.VotacaoService
	sessoes domain.SessaoRepository
	fila    domain.FilaResultados
	clock   domain.Clock
}

func NewResultadoPublisher(
	service domain.VotacaoService,
	sessoes domain.SessaoRepository,
	fila domain.FilaResultados,
	clock domain.Clock,
) *ResultadoPublisher {
	return &ResultadoPublisher{
		service: service,
		sessoes: sessoes,
		fila:    fila,
		clock:   clock,
	}
}

// Pendentes lista as sessões com data de fim já alcançada e resultado ainda
// não publicado.
func (p *ResultadoPublisher) Pendentes(ctx context.Context) ([]domain.SessaoVotacao, error) {
	return p.sessoes.ListarEncerradasNaoPublicadas(ctx, p.clock.Agora())
}

func (p *ResultadoPublisher) Publicar(ctx context.Context, sessao domain.SessaoVotacao) error {
	start := time.Now()

	resumo, err := p.service.ApurarResultado(ctx, sessao.ID)
	if err != nil {
		return fmt.Errorf("worker: apurar sessao %s: %w", sessao.ID, err)
	}

	agora := p.clock.Agora()
	resultado := domain.ResultadoSessao{
		SessaoID:  sessao.ID,
		PautaID:   sessao.PautaID,
		Resumo:    resumo,
		ApuradoEm: agora,
	}

	if err := p.fila.Publicar(ctx, resultado); err != nil {
		return fmt.Errorf("worker: publicar resultado %s: %w", sessao.ID, err)
	}

	sessao.ResultadoPublicado = true
	sessao.AtualizadoEm = agora
	if err := p.sessoes.Atualizar(ctx, sessao); err != nil {
		return fmt.Errorf("worker: marcar sessao %s publicada: %w", sessao.ID, err)
	}

	metrics.IncResultadoPublicado()
	metrics.ObservePublicacaoDuration(time.Since(start).Seconds())

	return nil
}
