package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// VotoRepository guarda votos e expõe a contagem agregada usada na apuração.
// O índice único (sessao_id, cpf_associado) garante voto único por associado
// mesmo com requisições concorrentes.
type VotoRepository struct {
	db *gorm.DB
}

func NewVotoRepository(db *gorm.DB) *VotoRepository {
	return &VotoRepository{db: db}
}

type votoModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SessaoID     string    `gorm:"column:sessao_id"`
	CpfAssociado string    `gorm:"column:cpf_associado"`
	Opcao        bool      `gorm:"column:opcao"`
	CriadoEm     time.Time `gorm:"column:criado_em"`
}

func (votoModel) TableName() string {
	return "votos"
}

func (m votoModel) toDomain() domain.Voto {
	return domain.Voto{
		ID:           domain.VotoID(m.ID),
		SessaoID:     domain.SessaoID(m.SessaoID),
		CpfAssociado: m.CpfAssociado,
		Opcao:        m.Opcao,
		CriadoEm:     m.CriadoEm,
	}
}

func fromDomainVoto(v domain.Voto) votoModel {
	return votoModel{
		ID:           string(v.ID),
		SessaoID:     string(v.SessaoID),
		CpfAssociado: v.CpfAssociado,
		Opcao:        v.Opcao,
		CriadoEm:     v.CriadoEm,
	}
}

func (r *VotoRepository) Registrar(ctx context.Context, voto domain.Voto) error {
	model := fromDomainVoto(voto)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("gorm votos: inserir: %w", err)
	}
	return nil
}

func (r *VotoRepository) BuscarPorSessaoECpf(ctx context.Context, sessaoID domain.SessaoID, cpf string) (domain.Voto, error) {
	var model votoModel
	if err := r.db.WithContext(ctx).
		First(&model, "sessao_id = ? AND cpf_associado = ?", sessaoID, cpf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Voto{}, domain.ErrNotFound
		}
		return domain.Voto{}, fmt.Errorf("gorm votos: buscar sessao/cpf: %w", err)
	}
	return model.toDomain(), nil
}

func (r *VotoRepository) ContarPorSessao(ctx context.Context, sessaoID domain.SessaoID) (domain.ContagemVotos, error) {
	type resultado struct {
		Opcao bool
		Total int64
	}

	var res []resultado
	if err := r.db.WithContext(ctx).
		Model(&votoModel{}).
		Select("opcao as opcao, COUNT(*) as total").
		Where("sessao_id = ?", sessaoID).
		Group("opcao").
		Scan(&res).Error; err != nil {
		return domain.ContagemVotos{}, fmt.Errorf("gorm votos: contar sessao: %w", err)
	}

	var contagem domain.ContagemVotos
	for _, item := range res {
		if item.Opcao {
			contagem.Pros = item.Total
		} else {
			contagem.Contra = item.Total
		}
	}
	return contagem, nil
}

var _ domain.VotoRepository = (*VotoRepository)(nil)
