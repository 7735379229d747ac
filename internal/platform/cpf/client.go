// Pacote cpf consulta a autoridade externa que decide se um associado pode
// votar e valida o formato do CPF informado.
package cpf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rutsatz/desafio-votacao/internal/domain"
	"github.com/rutsatz/desafio-votacao/internal/platform/metrics"
)

const (
	StatusAbleToVote   = "ABLE_TO_VOTE"
	StatusUnableToVote = "UNABLE_TO_VOTE"
)

// Client consome a API externa de CPF. A consulta é fail-closed: timeout,
// erro de transporte, status HTTP de falha ou resposta fora do contrato
// contam como "não pode votar".
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *Client) PodeVotar(ctx context.Context, cpf string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, cpf), nil)
	if err != nil {
		return false, fmt.Errorf("cpf: montar requisicao: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveCPFConsulta("erro")
		return false, fmt.Errorf("cpf: consultar servico: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveCPFConsulta("erro")
		return false, fmt.Errorf("cpf: servico respondeu status %d", resp.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ObserveCPFConsulta("erro")
		return false, fmt.Errorf("cpf: resposta invalida: %w", err)
	}

	if body.Status != StatusAbleToVote {
		metrics.ObserveCPFConsulta("unable")
		return false, nil
	}

	metrics.ObserveCPFConsulta("able")
	return true, nil
}

var _ domain.CPFService = (*Client)(nil)
