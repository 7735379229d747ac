package domain

import (
	"context"
	"time"
)

type PautaRepository interface {
	Criar(ctx context.Context, p Pauta) error
	BuscarPorID(ctx context.Context, id PautaID) (Pauta, error)
	Listar(ctx context.Context) ([]Pauta, error)
}

type SessaoRepository interface {
	Criar(ctx context.Context, s SessaoVotacao) error
	Atualizar(ctx context.Context, s SessaoVotacao) error
	BuscarPorID(ctx context.Context, id SessaoID) (SessaoVotacao, error)
	BuscarPorPauta(ctx context.Context, pautaID PautaID) (SessaoVotacao, error)
	Listar(ctx context.Context) ([]SessaoVotacao, error)
	ListarEncerradasNaoPublicadas(ctx context.Context, ate time.Time) ([]SessaoVotacao, error)
}

type VotoRepository interface {
	Registrar(ctx context.Context, voto Voto) error
	BuscarPorSessaoECpf(ctx context.Context, sessaoID SessaoID, cpf string) (Voto, error)
	ContarPorSessao(ctx context.Context, sessaoID SessaoID) (ContagemVotos, error)
}

// CPFService consulta a autoridade externa que diz se um CPF pode votar.
// Qualquer falha na consulta deve ser tratada como "não pode votar".
type CPFService interface {
	PodeVotar(ctx context.Context, cpf string) (bool, error)
}

// ResultadoCache memoriza o resumo de sessões já encerradas; como os votos
// de uma sessão encerrada são imutáveis, o valor nunca fica obsoleto.
type ResultadoCache interface {
	Obter(ctx context.Context, sessaoID SessaoID) (ResumoVotacao, bool, error)
	Salvar(ctx context.Context, sessaoID SessaoID, resumo ResumoVotacao) error
}

type FilaResultados interface {
	Publicar(ctx context.Context, resultado ResultadoSessao) error
	Consumir(ctx context.Context, handler func(context.Context, ResultadoSessao) error) error
}

type Antifraude interface {
	Validar(ctx context.Context, sessaoID SessaoID, cpf, origemIP string) error
}

type Clock interface {
	Agora() time.Time
}

type VotacaoService interface {
	CriarPauta(ctx context.Context, pauta Pauta) (Pauta, error)
	ListarPautas(ctx context.Context) ([]Pauta, error)
	CriarSessao(ctx context.Context, sessao SessaoVotacao) (SessaoVotacao, error)
	BuscarSessao(ctx context.Context, id SessaoID) (SessaoVotacao, error)
	ListarSessoes(ctx context.Context) ([]SessaoVotacao, error)
	Votar(ctx context.Context, sessaoID SessaoID, cpf string, opcao bool, origemIP string) (Voto, error)
	ApurarResultado(ctx context.Context, sessaoID SessaoID) (ResumoVotacao, error)
}
