package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rutsatz/desafio-votacao/internal/app/votacao"
	"github.com/rutsatz/desafio-votacao/internal/domain"
)

type MockVotacaoService struct {
	mock.Mock
}

func (m *MockVotacaoService) CriarPauta(ctx context.Context, pauta domain.Pauta) (domain.Pauta, error) {
	args := m.Called(ctx, pauta)
	return args.Get(0).(domain.Pauta), args.Error(1)
}

func (m *MockVotacaoService) ListarPautas(ctx context.Context) ([]domain.Pauta, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Pauta), args.Error(1)
}

func (m *MockVotacaoService) CriarSessao(ctx context.Context, sessao domain.SessaoVotacao) (domain.SessaoVotacao, error) {
	args := m.Called(ctx, sessao)
	return args.Get(0).(domain.SessaoVotacao), args.Error(1)
}

func (m *MockVotacaoService) BuscarSessao(ctx context.Context, id domain.SessaoID) (domain.SessaoVotacao, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.SessaoVotacao), args.Error(1)
}

func (m *MockVotacaoService) ListarSessoes(ctx context.Context) ([]domain.SessaoVotacao, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SessaoVotacao), args.Error(1)
}

func (m *MockVotacaoService) Votar(ctx context.Context, sessaoID domain.SessaoID, cpf string, opcao bool, origemIP string) (domain.Voto, error) {
	args := m.Called(ctx, sessaoID, cpf, opcao, origemIP)
	return args.Get(0).(domain.Voto), args.Error(1)
}

func (m *MockVotacaoService) ApurarResultado(ctx context.Context, sessaoID domain.SessaoID) (domain.ResumoVotacao, error) {
	args := m.Called(ctx, sessaoID)
	return args.Get(0).(domain.ResumoVotacao), args.Error(1)
}

func newTestServer(t *testing.T) (*MockVotacaoService, *httptest.Server) {
	t.Helper()

	service := new(MockVotacaoService)
	api := New(service, slog.New(slog.NewTextHandler(io.Discard, nil)), time.UTC)

	mux := http.NewServeMux()
	api.Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return service, server
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	_, server := newTestServer(t)

	resp := getURL(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCriarPauta(t *testing.T) {
	service, server := newTestServer(t)

	criadoEm := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	service.On("CriarPauta", mock.Anything, domain.Pauta{Assunto: "Novo estatuto"}).
		Return(domain.Pauta{ID: "01PAUTA", Assunto: "Novo estatuto", CriadoEm: criadoEm}, nil)

	resp := postJSON(t, server.URL+"/pautas", `{"subject":"Novo estatuto"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body pautaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "01PAUTA", body.ID)
	assert.Equal(t, "Novo estatuto", body.Subject)
	assert.Equal(t, "2025-01-15T10:00:00", body.CreatedAt)
	service.AssertExpectations(t)
}

func TestCriarPautaSemAssunto(t *testing.T) {
	service, server := newTestServer(t)

	service.On("CriarPauta", mock.Anything, domain.Pauta{}).
		Return(domain.Pauta{}, votacao.ErrPautaInvalida)

	resp := postJSON(t, server.URL+"/pautas", `{"subject":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCriarSessao(t *testing.T) {
	service, server := newTestServer(t)

	inicio := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	fim := inicio.Add(time.Minute)
	esperada := domain.SessaoVotacao{
		PautaID:    "01PAUTA",
		DataInicio: inicio,
		DataFim:    fim,
	}
	criada := esperada
	criada.ID = "01SESSAO"

	service.On("CriarSessao", mock.Anything, esperada).Return(criada, nil)

	resp := postJSON(t, server.URL+"/sessions", `{
		"agendaItemId": "01PAUTA",
		"startTime": "2025-01-15T10:00:00",
		"endTime": "2025-01-15T10:01:00"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body sessaoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "01SESSAO", body.ID)
	assert.Equal(t, "01PAUTA", body.AgendaItemID)
	assert.Equal(t, "2025-01-15T10:00:00", body.StartTime)
	assert.Equal(t, "2025-01-15T10:01:00", body.EndTime)
	service.AssertExpectations(t)
}

func TestCriarSessaoSemDatas(t *testing.T) {
	service, server := newTestServer(t)

	service.On("CriarSessao", mock.Anything, domain.SessaoVotacao{PautaID: "01PAUTA"}).
		Return(domain.SessaoVotacao{ID: "01SESSAO", PautaID: "01PAUTA"}, nil)

	resp := postJSON(t, server.URL+"/sessions", `{"agendaItemId":"01PAUTA"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	service.AssertExpectations(t)
}

func TestCriarSessaoDataMalFormada(t *testing.T) {
	_, server := newTestServer(t)

	resp := postJSON(t, server.URL+"/sessions", `{"agendaItemId":"01PAUTA","startTime":"15/01/2025 10:00"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCriarSessaoPautaInexistente(t *testing.T) {
	service, server := newTestServer(t)

	service.On("CriarSessao", mock.Anything, mock.Anything).
		Return(domain.SessaoVotacao{}, votacao.ErrPautaNaoEncontrada)

	resp := postJSON(t, server.URL+"/sessions", `{"agendaItemId":"inexistente"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCriarSessaoDuplicada(t *testing.T) {
	service, server := newTestServer(t)

	service.On("CriarSessao", mock.Anything, mock.Anything).
		Return(domain.SessaoVotacao{}, votacao.ErrSessaoJaCadastrada)

	resp := postJSON(t, server.URL+"/sessions", `{"agendaItemId":"01PAUTA"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuscarSessao(t *testing.T) {
	service, server := newTestServer(t)

	service.On("BuscarSessao", mock.Anything, domain.SessaoID("01SESSAO")).
		Return(domain.SessaoVotacao{ID: "01SESSAO", PautaID: "01PAUTA"}, nil)

	resp := getURL(t, server.URL+"/sessions/01SESSAO")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuscarSessaoInexistente(t *testing.T) {
	service, server := newTestServer(t)

	service.On("BuscarSessao", mock.Anything, domain.SessaoID("nada")).
		Return(domain.SessaoVotacao{}, votacao.ErrSessaoNaoEncontrada)

	resp := getURL(t, server.URL+"/sessions/nada")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVotar(t *testing.T) {
	service, server := newTestServer(t)

	service.On("Votar", mock.Anything, domain.SessaoID("01SESSAO"), "33546206096", true, mock.Anything).
		Return(domain.Voto{ID: "01VOTO", SessaoID: "01SESSAO", CpfAssociado: "33546206096", Opcao: true}, nil)

	resp := postJSON(t, server.URL+"/sessions/01SESSAO/votes", `{"voterId":"33546206096","choice":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body votoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "01VOTO", body.ID)
	assert.Equal(t, "33546206096", body.VoterID)
	assert.True(t, body.Choice)
	service.AssertExpectations(t)
}

func TestVotarSemChoiceRejeitadoNaBorda(t *testing.T) {
	service, server := newTestServer(t)

	resp := postJSON(t, server.URL+"/sessions/01SESSAO/votes", `{"voterId":"33546206096"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "Votar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVotarCpfMalFormadoRejeitadoNaBorda(t *testing.T) {
	service, server := newTestServer(t)

	resp := postJSON(t, server.URL+"/sessions/01SESSAO/votes", `{"voterId":"12345678900","choice":true}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "Votar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVotarMapeamentoDeErros(t *testing.T) {
	casos := []struct {
		nome   string
		erro   error
		status int
	}{
		{"sem permissao", votacao.ErrAssociadoSemPermissao, http.StatusBadRequest},
		{"sessao nao encontrada", votacao.ErrSessaoNaoEncontrada, http.StatusNotFound},
		{"sessao nao iniciada", votacao.ErrSessaoNaoIniciada, http.StatusBadRequest},
		{"sessao encerrada", votacao.ErrSessaoEncerrada, http.StatusBadRequest},
		{"ja votou", votacao.ErrAssociadoJaVotou, http.StatusConflict},
	}

	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			service, server := newTestServer(t)
			service.On("Votar", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(domain.Voto{}, caso.erro)

			resp := postJSON(t, server.URL+"/sessions/01SESSAO/votes", `{"voterId":"33546206096","choice":false}`)
			assert.Equal(t, caso.status, resp.StatusCode)
		})
	}
}

func TestApurarResultado(t *testing.T) {
	service, server := newTestServer(t)

	service.On("ApurarResultado", mock.Anything, domain.SessaoID("01SESSAO")).
		Return(domain.ResumoVotacao{Assunto: "Novo estatuto", Pros: 3, Contra: 2, Aprovado: true}, nil)

	resp := getURL(t, server.URL+"/sessions/01SESSAO/result")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body resumoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Novo estatuto", body.Subject)
	assert.Equal(t, int64(3), body.FavorCount)
	assert.Equal(t, int64(2), body.AgainstCount)
	assert.True(t, body.Approved)
}

func TestApurarResultadoSessaoEmAndamento(t *testing.T) {
	service, server := newTestServer(t)

	service.On("ApurarResultado", mock.Anything, domain.SessaoID("01SESSAO")).
		Return(domain.ResumoVotacao{}, votacao.ErrSessaoNaoEncerrada)

	resp := getURL(t, server.URL+"/sessions/01SESSAO/result")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListarSessoes(t *testing.T) {
	service, server := newTestServer(t)

	service.On("ListarSessoes", mock.Anything).
		Return([]domain.SessaoVotacao{{ID: "01SESSAO", PautaID: "01PAUTA"}}, nil)

	resp := getURL(t, server.URL+"/sessions")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []sessaoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "01SESSAO", body[0].ID)
}

func TestListarPautas(t *testing.T) {
	service, server := newTestServer(t)

	service.On("ListarPautas", mock.Anything).
		Return([]domain.Pauta{{ID: "01PAUTA", Assunto: "Novo estatuto"}}, nil)

	resp := getURL(t, server.URL+"/pautas")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []pautaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "Novo estatuto", body[0].Subject)
}
