package antifraude

import (
	"context"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// Noop representa uma estratégia de antifraude desabilitada.
type Noop struct{}

func NewNoop() Noop {
	return Noop{}
}

func (Noop) Validar(ctx context.Context, sessaoID domain.SessaoID, cpf, origemIP string) error {
	return nil
}

var _ domain.Antifraude = Noop{}
