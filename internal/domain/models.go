package domain

import (
	"time"
)

type (
	PautaID  string
	SessaoID string
	VotoID   string
)

// Pauta é o assunto colocado em discussão numa assembleia. Imutável após criada.
type Pauta struct {
	ID       PautaID   `gorm:"column:id;type:char(26);primaryKey"`
	Assunto  string    `gorm:"column:assunto;type:text;not null"`
	CriadoEm time.Time `gorm:"column:criado_em;autoCreateTime"`
}

// SessaoVotacao é a janela de tempo em que uma pauta recebe votos.
// O índice único em pauta_id garante no máximo uma sessão por pauta,
// mesmo com criações concorrentes.
type SessaoVotacao struct {
	ID                 SessaoID  `gorm:"column:id;type:char(26);primaryKey"`
	PautaID            PautaID   `gorm:"column:pauta_id;type:char(26);not null;uniqueIndex:idx_sessoes_pauta"`
	DataInicio         time.Time `gorm:"column:data_inicio;not null"`
	DataFim            time.Time `gorm:"column:data_fim;not null"`
	ResultadoPublicado bool      `gorm:"column:resultado_publicado;not null;default:false"`
	Votos              []Voto    `gorm:"foreignKey:SessaoID;constraint:OnDelete:CASCADE"`
	CriadoEm           time.Time `gorm:"column:criado_em;autoCreateTime"`
	AtualizadoEm       time.Time `gorm:"column:atualizado_em;autoUpdateTime"`
}

// Voto registra a escolha de um associado numa sessão (true = sim, false = não).
// O índice único composto impede voto duplicado do mesmo CPF na mesma sessão.
type Voto struct {
	ID           VotoID    `gorm:"column:id;type:char(26);primaryKey"`
	SessaoID     SessaoID  `gorm:"column:sessao_id;type:char(26);not null;uniqueIndex:idx_votos_sessao_cpf,priority:1"`
	CpfAssociado string    `gorm:"column:cpf_associado;type:varchar(11);not null;uniqueIndex:idx_votos_sessao_cpf,priority:2"`
	Opcao        bool      `gorm:"column:opcao;not null"`
	CriadoEm     time.Time `gorm:"column:criado_em;autoCreateTime"`
}

// ResumoVotacao é o resultado apurado de uma sessão encerrada. Nunca é persistido.
type ResumoVotacao struct {
	Assunto  string
	Pros     int64
	Contra   int64
	Aprovado bool
}

// ContagemVotos agrega os totais lidos do repositório de votos.
type ContagemVotos struct {
	Pros   int64
	Contra int64
}

// ResultadoSessao é a mensagem publicada na fila quando uma sessão encerra.
type ResultadoSessao struct {
	SessaoID  SessaoID      `json:"sessao_id"`
	PautaID   PautaID       `json:"pauta_id"`
	Resumo    ResumoVotacao `json:"resumo"`
	ApuradoEm time.Time     `json:"apurado_em"`
}

func (Pauta) TableName() string { return "pautas" }

func (SessaoVotacao) TableName() string { return "sessoes" }

func (Voto) TableName() string { return "votos" }
