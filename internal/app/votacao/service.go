// Pacote votacao implementa as regras de negócio da assembleia: cadastro de
// pautas, ciclo de vida das sessões de votação e apuração do resultado.
package votacao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rutsatz/desafio-votacao/internal/domain"
	"github.com/rutsatz/desafio-votacao/internal/platform/ids"
)

var (
	ErrPautaInvalida         = errors.New("pauta invalida")
	ErrPautaNaoEncontrada    = errors.New("pauta nao encontrada")
	ErrSessaoJaCadastrada    = errors.New("pauta ja possui sessao de votacao")
	ErrDataInvalida          = errors.New("data de inicio posterior a data de fim")
	ErrSessaoNaoEncontrada   = errors.New("sessao de votacao nao encontrada")
	ErrSessaoNaoIniciada     = errors.New("sessao de votacao nao iniciada")
	ErrSessaoEncerrada       = errors.New("sessao de votacao encerrada")
	ErrSessaoNaoEncerrada    = errors.New("sessao de votacao ainda em andamento")
	ErrAssociadoJaVotou      = errors.New("associado ja votou nessa sessao")
	ErrAssociadoSemPermissao = errors.New("associado sem permissao para votar")
)

// DuracaoPadraoSessao é aplicada quando a data de fim não é informada.
const DuracaoPadraoSessao = time.Minute

// Service concentra as regras de votação e delega acesso a repositórios,
// serviço de CPF e cache de resultados.
type Service struct {
	pautas     domain.PautaRepository
	sessoes    domain.SessaoRepository
	votos      domain.VotoRepository
	cpf        domain.CPFService
	cache      domain.ResultadoCache
	antifraude domain.Antifraude
	clock      domain.Clock
	ids        *ids.Generator
}

func NewService(
	pautas domain.PautaRepository,
	sessoes domain.SessaoRepository,
	votos domain.VotoRepository,
	cpf domain.CPFService,
	cache domain.ResultadoCache,
	antifraude domain.Antifraude,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		pautas:     pautas,
		sessoes:    sessoes,
		votos:      votos,
		cpf:        cpf,
		cache:      cache,
		antifraude: antifraude,
		clock:      clock,
		ids:        idsGen,
	}
}

func (s *Service) CriarPauta(ctx context.Context, pauta domain.Pauta) (domain.Pauta, error) {
	if pauta.Assunto == "" {
		return domain.Pauta{}, fmt.Errorf("%w: assunto obrigatorio", ErrPautaInvalida)
	}

	pauta.ID = domain.PautaID(s.ids.New())
	pauta.CriadoEm = s.clock.Agora()

	if err := s.pautas.Criar(ctx, pauta); err != nil {
		return domain.Pauta{}, err
	}
	return pauta, nil
}

func (s *Service) ListarPautas(ctx context.Context) ([]domain.Pauta, error) {
	return s.pautas.Listar(ctx)
}

// CriarSessao valida a pauta, normaliza as datas e grava a sessão. A
// normalização acontece antes da checagem de intervalo, então datas
// calculadas automaticamente nunca são rejeitadas como inválidas.
func (s *Service) CriarSessao(ctx context.Context, sessao domain.SessaoVotacao) (domain.SessaoVotacao, error) {
	if _, err := s.pautas.BuscarPorID(ctx, sessao.PautaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessaoVotacao{}, ErrPautaNaoEncontrada
		}
		return domain.SessaoVotacao{}, err
	}

	if _, err := s.sessoes.BuscarPorPauta(ctx, sessao.PautaID); err == nil {
		return domain.SessaoVotacao{}, ErrSessaoJaCadastrada
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.SessaoVotacao{}, err
	}

	agora := s.clock.Agora()
	if sessao.DataInicio.IsZero() {
		sessao.DataInicio = agora
	}
	if sessao.DataFim.IsZero() {
		sessao.DataFim = sessao.DataInicio.Add(DuracaoPadraoSessao)
	}
	if sessao.DataInicio.After(sessao.DataFim) {
		return domain.SessaoVotacao{}, ErrDataInvalida
	}

	sessao.ID = domain.SessaoID(s.ids.New())
	sessao.ResultadoPublicado = false
	sessao.Votos = nil
	sessao.CriadoEm = agora
	sessao.AtualizadoEm = agora

	if err := s.sessoes.Criar(ctx, sessao); err != nil {
		// Duas criações concorrentes podem passar pela checagem acima; o
		// índice único em pauta_id decide quem vence.
		if errors.Is(err, domain.ErrDuplicado) {
			return domain.SessaoVotacao{}, ErrSessaoJaCadastrada
		}
		return domain.SessaoVotacao{}, err
	}
	return sessao, nil
}

func (s *Service) BuscarSessao(ctx context.Context, id domain.SessaoID) (domain.SessaoVotacao, error) {
	sessao, err := s.sessoes.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SessaoVotacao{}, ErrSessaoNaoEncontrada
		}
		return domain.SessaoVotacao{}, err
	}
	return sessao, nil
}

func (s *Service) ListarSessoes(ctx context.Context) ([]domain.SessaoVotacao, error) {
	return s.sessoes.Listar(ctx)
}

// Votar aplica as regras de admissão na ordem fixa do contrato: permissão do
// CPF antes de qualquer checagem de sessão, depois existência, janela de
// tempo, duplicidade e, por fim, a gravação.
func (s *Service) Votar(ctx context.Context, sessaoID domain.SessaoID, cpf string, opcao bool, origemIP string) (domain.Voto, error) {
	if s.antifraude != nil {
		if err := s.antifraude.Validar(ctx, sessaoID, cpf, origemIP); err != nil {
			return domain.Voto{}, err
		}
	}

	// Fail-closed: sem resposta definitiva de "pode votar", o voto é negado.
	pode, err := s.cpf.PodeVotar(ctx, cpf)
	if err != nil || !pode {
		return domain.Voto{}, ErrAssociadoSemPermissao
	}

	sessao, err := s.sessoes.BuscarPorID(ctx, sessaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Voto{}, ErrSessaoNaoEncontrada
		}
		return domain.Voto{}, err
	}

	agora := s.clock.Agora()
	if agora.Before(sessao.DataInicio) {
		return domain.Voto{}, ErrSessaoNaoIniciada
	}
	if agora.After(sessao.DataFim) {
		return domain.Voto{}, ErrSessaoEncerrada
	}

	if _, err := s.votos.BuscarPorSessaoECpf(ctx, sessaoID, cpf); err == nil {
		return domain.Voto{}, ErrAssociadoJaVotou
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Voto{}, err
	}

	voto := domain.Voto{
		ID:           domain.VotoID(s.ids.New()),
		SessaoID:     sessaoID,
		CpfAssociado: cpf,
		Opcao:        opcao,
		CriadoEm:     agora,
	}

	if err := s.votos.Registrar(ctx, voto); err != nil {
		// Dois votos concorrentes do mesmo CPF podem passar pela busca acima;
		// o índice único (sessao_id, cpf_associado) rejeita o segundo.
		if errors.Is(err, domain.ErrDuplicado) {
			return domain.Voto{}, ErrAssociadoJaVotou
		}
		return domain.Voto{}, err
	}
	return voto, nil
}

// ApurarResultado calcula o resumo de uma sessão encerrada. Sessões em
// andamento não têm apuração parcial. Como os votos de uma sessão encerrada
// são imutáveis, o resumo pode ser servido do cache quando disponível.
func (s *Service) ApurarResultado(ctx context.Context, sessaoID domain.SessaoID) (domain.ResumoVotacao, error) {
	sessao, err := s.sessoes.BuscarPorID(ctx, sessaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ResumoVotacao{}, ErrSessaoNaoEncontrada
		}
		return domain.ResumoVotacao{}, err
	}

	if s.clock.Agora().Before(sessao.DataFim) {
		return domain.ResumoVotacao{}, ErrSessaoNaoEncerrada
	}

	if s.cache != nil {
		// Falha no cache não impede a apuração; tratamos como miss.
		if resumo, ok, cacheErr := s.cache.Obter(ctx, sessaoID); cacheErr == nil && ok {
			return resumo, nil
		}
	}

	pauta, err := s.pautas.BuscarPorID(ctx, sessao.PautaID)
	if err != nil {
		return domain.ResumoVotacao{}, err
	}

	contagem, err := s.votos.ContarPorSessao(ctx, sessaoID)
	if err != nil {
		return domain.ResumoVotacao{}, err
	}

	resumo := domain.ResumoVotacao{
		Assunto:  pauta.Assunto,
		Pros:     contagem.Pros,
		Contra:   contagem.Contra,
		// Maioria simples: empate não aprova.
		Aprovado: contagem.Pros > contagem.Contra,
	}

	if s.cache != nil {
		_ = s.cache.Salvar(ctx, sessaoID, resumo)
	}
	return resumo, nil
}

var _ domain.VotacaoService = (*Service)(nil)
