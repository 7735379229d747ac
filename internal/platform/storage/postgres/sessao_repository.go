package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// SessaoRepository persiste as sessões de votação. O índice único em
// pauta_id é o árbitro final da regra "uma sessão por pauta".
type SessaoRepository struct {
	db *gorm.DB
}

func NewSessaoRepository(db *gorm.DB) *SessaoRepository {
	return &SessaoRepository{db: db}
}

type sessaoModel struct {
	ID                 string      `gorm:"column:id;primaryKey"`
	PautaID            string      `gorm:"column:pauta_id"`
	DataInicio         time.Time   `gorm:"column:data_inicio"`
	DataFim            time.Time   `gorm:"column:data_fim"`
	ResultadoPublicado bool        `gorm:"column:resultado_publicado"`
	CriadoEm           time.Time   `gorm:"column:criado_em"`
	AtualizadoEm       time.Time   `gorm:"column:atualizado_em"`
	Votos              []votoModel `gorm:"foreignKey:SessaoID;references:ID"`
}

func (sessaoModel) TableName() string {
	return "sessoes"
}

func (m sessaoModel) toDomain(includeVotos bool) domain.SessaoVotacao {
	s := domain.SessaoVotacao{
		ID:                 domain.SessaoID(m.ID),
		PautaID:            domain.PautaID(m.PautaID),
		DataInicio:         m.DataInicio,
		DataFim:            m.DataFim,
		ResultadoPublicado: m.ResultadoPublicado,
		CriadoEm:           m.CriadoEm,
		AtualizadoEm:       m.AtualizadoEm,
	}

	if includeVotos {
		votos := make([]domain.Voto, len(m.Votos))
		for i, v := range m.Votos {
			votos[i] = v.toDomain()
		}
		s.Votos = votos
	}

	return s
}

func fromDomainSessao(s domain.SessaoVotacao) sessaoModel {
	return sessaoModel{
		ID:                 string(s.ID),
		PautaID:            string(s.PautaID),
		DataInicio:         s.DataInicio,
		DataFim:            s.DataFim,
		ResultadoPublicado: s.ResultadoPublicado,
		CriadoEm:           s.CriadoEm,
		AtualizadoEm:       s.AtualizadoEm,
	}
}

func (r *SessaoRepository) Criar(ctx context.Context, s domain.SessaoVotacao) error {
	model := fromDomainSessao(s)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("gorm sessao: inserir: %w", err)
	}
	return nil
}

func (r *SessaoRepository) Atualizar(ctx context.Context, s domain.SessaoVotacao) error {
	model := fromDomainSessao(s)
	if err := r.db.WithContext(ctx).Model(&sessaoModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"data_inicio":         model.DataInicio,
			"data_fim":            model.DataFim,
			"resultado_publicado": model.ResultadoPublicado,
			"atualizado_em":       model.AtualizadoEm,
		}).Error; err != nil {
		return fmt.Errorf("gorm sessao: atualizar: %w", err)
	}
	return nil
}

func (r *SessaoRepository) BuscarPorID(ctx context.Context, id domain.SessaoID) (domain.SessaoVotacao, error) {
	var model sessaoModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SessaoVotacao{}, domain.ErrNotFound
		}
		return domain.SessaoVotacao{}, fmt.Errorf("gorm sessao: buscar id: %w", err)
	}
	return model.toDomain(false), nil
}

func (r *SessaoRepository) BuscarPorPauta(ctx context.Context, pautaID domain.PautaID) (domain.SessaoVotacao, error) {
	var model sessaoModel
	if err := r.db.WithContext(ctx).
		First(&model, "pauta_id = ?", pautaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SessaoVotacao{}, domain.ErrNotFound
		}
		return domain.SessaoVotacao{}, fmt.Errorf("gorm sessao: buscar pauta: %w", err)
	}
	return model.toDomain(false), nil
}

func (r *SessaoRepository) Listar(ctx context.Context) ([]domain.SessaoVotacao, error) {
	var models []sessaoModel
	if err := r.db.WithContext(ctx).
		Order("data_inicio ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm sessao: listar: %w", err)
	}

	result := make([]domain.SessaoVotacao, len(models))
	for i, model := range models {
		result[i] = model.toDomain(false)
	}
	return result, nil
}

func (r *SessaoRepository) ListarEncerradasNaoPublicadas(ctx context.Context, ate time.Time) ([]domain.SessaoVotacao, error) {
	var models []sessaoModel
	if err := r.db.WithContext(ctx).
		Where("data_fim <= ? AND resultado_publicado = ?", ate, false).
		Order("data_fim ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm sessao: listar encerradas: %w", err)
	}

	result := make([]domain.SessaoVotacao, len(models))
	for i, model := range models {
		result[i] = model.toDomain(false)
	}
	return result, nil
}

var _ domain.SessaoRepository = (*SessaoRepository)(nil)
