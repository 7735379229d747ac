// Pacote migrations centraliza as versões gormigrate aplicadas na inicialização.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nulo")
	}

	// Os índices únicos de sessoes.pauta_id e votos(sessao_id, cpf_associado)
	// nascem aqui junto com o schema; eles sustentam as regras de unicidade
	// sob concorrência.
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202501150001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&domain.Pauta{}, &domain.SessaoVotacao{}, &domain.Voto{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("votos", "sessoes", "pautas")
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: falha ao aplicar: %w", err)
	}

	return nil
}
