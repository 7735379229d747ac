package domain

import "errors"

var (
	// ErrNotFound é devolvido pelos repositórios quando o registro não existe.
	ErrNotFound = errors.New("registro nao encontrado")

	// ErrDuplicado é devolvido quando um índice único da camada de storage
	// rejeita a escrita (sessão duplicada para a pauta ou voto repetido).
	ErrDuplicado = errors.New("registro duplicado")
)
