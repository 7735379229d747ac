package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// PautaRepository mapeia pautas para a tabela GORM correspondente.
type PautaRepository struct {
	db *gorm.DB
}

func NewPautaRepository(db *gorm.DB) *PautaRepository {
	return &PautaRepository{db: db}
}

type pautaModel struct {
	ID       string    `gorm:"column:id;primaryKey"`
	Assunto  string    `gorm:"column:assunto"`
	CriadoEm time.Time `gorm:"column:criado_em"`
}

func (pautaModel) TableName() string {
	return "pautas"
}

func (m pautaModel) toDomain() domain.Pauta {
	return domain.Pauta{
		ID:       domain.PautaID(m.ID),
		Assunto:  m.Assunto,
		CriadoEm: m.CriadoEm,
	}
}

func fromDomainPauta(p domain.Pauta) pautaModel {
	return pautaModel{
		ID:       string(p.ID),
		Assunto:  p.Assunto,
		CriadoEm: p.CriadoEm,
	}
}

func (r *PautaRepository) Criar(ctx context.Context, p domain.Pauta) error {
	model := fromDomainPauta(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("gorm pauta: inserir: %w", err)
	}
	return nil
}

func (r *PautaRepository) BuscarPorID(ctx context.Context, id domain.PautaID) (domain.Pauta, error) {
	var model pautaModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Pauta{}, domain.ErrNotFound
		}
		return domain.Pauta{}, fmt.Errorf("gorm pauta: buscar id: %w", err)
	}
	return model.toDomain(), nil
}

func (r *PautaRepository) Listar(ctx context.Context) ([]domain.Pauta, error) {
	var models []pautaModel
	if err := r.db.WithContext(ctx).
		Order("criado_em ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("gorm pauta: listar: %w", err)
	}

	result := make([]domain.Pauta, len(models))
	for i, model := range models {
		result[i] = model.toDomain()
	}
	return result, nil
}

var _ domain.PautaRepository = (*PautaRepository)(nil)
