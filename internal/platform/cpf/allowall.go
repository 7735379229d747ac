package cpf

import (
	"context"

	"github.com/rutsatz/desafio-votacao/internal/domain"
)

// AllowAll libera qualquer CPF. Usado em execução local quando o serviço
// externo não está configurado.
type AllowAll struct{}

func NewAllowAll() AllowAll {
	return AllowAll{}
}

func (AllowAll) PodeVotar(ctx context.Context, cpf string) (bool, error) {
	return true, nil
}

var _ domain.CPFService = AllowAll{}
