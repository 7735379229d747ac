// Pacote httpapi expõe os handlers REST e traduz requisições HTTP para o serviço de votação.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rutsatz/desafio-votacao/internal/app/votacao"
	"github.com/rutsatz/desafio-votacao/internal/domain"
	"github.com/rutsatz/desafio-votacao/internal/platform/antifraude"
	"github.com/rutsatz/desafio-votacao/internal/platform/cpf"
	"github.com/rutsatz/desafio-votacao/internal/platform/metrics"
)

// As datas trafegam como ISO-8601 local, sem offset, no fuso do processo.
const timeLayout = "2006-01-02T15:04:05"

// API empacota handlers HTTP ligados ao serviço de votação e ao logger.
type API struct {
	service domain.VotacaoService
	logger  *slog.Logger
	loc     *time.Location
}

func New(service domain.VotacaoService, logger *slog.Logger, loc *time.Location) *API {
	if loc == nil {
		loc = time.UTC
	}
	return &API{service: service, logger: logger, loc: loc}
}

func (a *API) Register(mux *http.ServeMux) {
	// Rotas centralizadas para facilitar testes e reuso em servidores diferentes.
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("POST /pautas", a.criarPauta)
	mux.HandleFunc("GET /pautas", a.listarPautas)
	mux.HandleFunc("POST /sessions", a.criarSessao)
	mux.HandleFunc("GET /sessions", a.listarSessoes)
	mux.HandleFunc("GET /sessions/{id}", a.buscarSessao)
	mux.HandleFunc("POST /sessions/{id}/votes", a.votar)
	mux.HandleFunc("GET /sessions/{id}/result", a.apurarResultado)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type pautaRequest struct {
	Subject string `json:"subject"`
}

type pautaResponse struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
}

// criarPauta godoc
// @Summary  Cadastrar pauta
// @Tags     pautas
// @Accept   json
// @Produce  json
// @Param    pauta body pautaRequest true "Pauta"
// @Success  201 {object} pautaResponse
// @Router   /pautas [post]
func (a *API) criarPauta(w http.ResponseWriter, r *http.Request) {
	var req pautaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload invalido", http.StatusBadRequest)
		return
	}

	pauta, err := a.service.CriarPauta(r.Context(), domain.Pauta{Assunto: strings.TrimSpace(req.Subject)})
	if err != nil {
		a.logger.Warn("falha ao criar pauta", "err", err)
		a.responderErro(w, err)
		return
	}

	a.logger.Info("pauta criada", "pauta", pauta.ID)
	responderJSON(w, http.StatusCreated, a.toPautaResponse(pauta))
}

// listarPautas godoc
// @Summary  Listar pautas
// @Tags     pautas
// @Produce  json
// @Success  200 {array} pautaResponse
// @Router   /pautas [get]
func (a *API) listarPautas(w http.ResponseWriter, r *http.Request) {
	pautas, err := a.service.ListarPautas(r.Context())
	if err != nil {
		a.logger.Error("erro ao listar pautas", "err", err)
		a.responderErro(w, err)
		return
	}

	resposta := make([]pautaResponse, len(pautas))
	for i, p := range pautas {
		resposta[i] = a.toPautaResponse(p)
	}
	responderJSON(w, http.StatusOK, resposta)
}

type sessaoRequest struct {
	AgendaItemID string `json:"agendaItemId"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
}

type sessaoResponse struct {
	ID              string `json:"id"`
	AgendaItemID    string `json:"agendaItemId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	ResultPublished bool   `json:"resultPublished"`
}

// criarSessao godoc
// @Summary  Abrir sessão de votação
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    session body sessaoRequest true "Sessão"
// @Success  201 {object} sessaoResponse
// @Router   /sessions [post]
func (a *API) criarSessao(w http.ResponseWriter, r *http.Request) {
	var req sessaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload invalido", http.StatusBadRequest)
		return
	}

	sessao := domain.SessaoVotacao{PautaID: domain.PautaID(req.AgendaItemID)}

	var err error
	if sessao.DataInicio, err = a.parseHora(req.StartTime); err != nil {
		http.Error(w, "startTime invalido", http.StatusBadRequest)
		return
	}
	if sessao.DataFim, err = a.parseHora(req.EndTime); err != nil {
		http.Error(w, "endTime invalido", http.StatusBadRequest)
		return
	}

	criada, err := a.service.CriarSessao(r.Context(), sessao)
	if err != nil {
		a.logger.Warn("falha ao criar sessao", "err", err, "pauta", req.AgendaItemID)
		a.responderErro(w, err)
		return
	}

	a.logger.Info("sessao criada", "sessao", criada.ID, "pauta", criada.PautaID)
	responderJSON(w, http.StatusCreated, a.toSessaoResponse(criada))
}

// listarSessoes godoc
// @Summary  Listar sessões de votação
// @Tags     sessions
// @Produce  json
// @Success  200 {array} sessaoResponse
// @Router   /sessions [get]
func (a *API) listarSessoes(w http.ResponseWriter, r *http.Request) {
	sessoes, err := a.service.ListarSessoes(r.Context())
	if err != nil {
		a.logger.Error("erro ao listar sessoes", "err", err)
		a.responderErro(w, err)
		return
	}

	resposta := make([]sessaoResponse, len(sessoes))
	for i, s := range sessoes {
		resposta[i] = a.toSessaoResponse(s)
	}
	responderJSON(w, http.StatusOK, resposta)
}

// buscarSessao godoc
// @Summary  Buscar sessão de votação por ID
// @Tags     sessions
// @Produce  json
// @Param    id path string true "ID da sessão"
// @Success  200 {object} sessaoResponse
// @Router   /sessions/{id} [get]
func (a *API) buscarSessao(w http.ResponseWriter, r *http.Request) {
	id := domain.SessaoID(r.PathValue("id"))

	sessao, err := a.service.BuscarSessao(r.Context(), id)
	if err != nil {
		a.responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, a.toSessaoResponse(sessao))
}

type votoRequest struct {
	VoterID string `json:"voterId"`
	Choice  *bool  `json:"choice"`
}

type votoResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	VoterID   string `json:"voterId"`
	Choice    bool   `json:"choice"`
	CreatedAt string `json:"createdAt"`
}

// votar godoc
// @Summary  Votar numa sessão
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    id   path string      true "ID da sessão"
// @Param    vote body votoRequest true "Voto"
// @Success  201 {object} votoResponse
// @Router   /sessions/{id}/votes [post]
func (a *API) votar(w http.ResponseWriter, r *http.Request) {
	id := domain.SessaoID(r.PathValue("id"))

	var req votoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Choice == nil {
		metrics.ObserveVotoRequest("invalid_payload")
		a.logger.Warn("payload invalido ao registrar voto", "sessao", id)
		http.Error(w, "payload invalido", http.StatusBadRequest)
		return
	}

	if !cpf.Valido(req.VoterID) {
		metrics.ObserveVotoRequest("invalid_cpf")
		http.Error(w, "cpf invalido", http.StatusBadRequest)
		return
	}

	origemIP := r.Header.Get("X-Forwarded-For")
	if origemIP == "" {
		origemIP = strings.Split(r.RemoteAddr, ":")[0]
	}

	voto, err := a.service.Votar(r.Context(), id, req.VoterID, *req.Choice, origemIP)
	if err != nil {
		status := statusFromError(err)
		metrics.ObserveVotoRequest(status)
		a.logger.Warn("falha ao registrar voto", "err", err, "sessao", id, "status", status)
		a.responderErro(w, err)
		return
	}

	metrics.ObserveVotoRequest("accepted")
	a.logger.Info("voto registrado", "sessao", id, "voto", voto.ID)
	responderJSON(w, http.StatusCreated, votoResponse{
		ID:        string(voto.ID),
		SessionID: string(voto.SessaoID),
		VoterID:   voto.CpfAssociado,
		Choice:    voto.Opcao,
		CreatedAt: voto.CriadoEm.Format(timeLayout),
	})
}

type resumoResponse struct {
	Subject      string `json:"subject"`
	FavorCount   int64  `json:"favorCount"`
	AgainstCount int64  `json:"againstCount"`
	Approved     bool   `json:"approved"`
}

// apurarResultado godoc
// @Summary  Apurar resultado da sessão
// @Tags     sessions
// @Produce  json
// @Param    id path string true "ID da sessão"
// @Success  200 {object} resumoResponse
// @Router   /sessions/{id}/result [get]
func (a *API) apurarResultado(w http.ResponseWriter, r *http.Request) {
	id := domain.SessaoID(r.PathValue("id"))

	resumo, err := a.service.ApurarResultado(r.Context(), id)
	if err != nil {
		a.logger.Warn("falha ao apurar resultado", "err", err, "sessao", id)
		a.responderErro(w, err)
		return
	}

	responderJSON(w, http.StatusOK, resumoResponse{
		Subject:      resumo.Assunto,
		FavorCount:   resumo.Pros,
		AgainstCount: resumo.Contra,
		Approved:     resumo.Aprovado,
	})
}

func (a *API) toPautaResponse(p domain.Pauta) pautaResponse {
	return pautaResponse{
		ID:        string(p.ID),
		Subject:   p.Assunto,
		CreatedAt: p.CriadoEm.Format(timeLayout),
	}
}

func (a *API) toSessaoResponse(s domain.SessaoVotacao) sessaoResponse {
	return sessaoResponse{
		ID:              string(s.ID),
		AgendaItemID:    string(s.PautaID),
		StartTime:       s.DataInicio.Format(timeLayout),
		EndTime:         s.DataFim.Format(timeLayout),
		ResultPublished: s.ResultadoPublicado,
	}
}

// parseHora aceita campo ausente (string vazia) e devolve o zero value, que o
// serviço interpreta como "usar o default".
func (a *API) parseHora(valor string) (time.Time, error) {
	if valor == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(timeLayout, valor, a.loc)
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *API) responderErro(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, votacao.ErrPautaInvalida),
		errors.Is(err, votacao.ErrSessaoJaCadastrada),
		errors.Is(err, votacao.ErrDataInvalida),
		errors.Is(err, votacao.ErrSessaoNaoIniciada),
		errors.Is(err, votacao.ErrSessaoEncerrada),
		errors.Is(err, votacao.ErrSessaoNaoEncerrada),
		errors.Is(err, votacao.ErrAssociadoSemPermissao):
		status = http.StatusBadRequest
	case errors.Is(err, votacao.ErrPautaNaoEncontrada),
		errors.Is(err, votacao.ErrSessaoNaoEncontrada):
		status = http.StatusNotFound
	case errors.Is(err, votacao.ErrAssociadoJaVotou):
		status = http.StatusConflict
	case errors.Is(err, antifraude.ErrRateLimitExceeded):
		status = http.StatusTooManyRequests
	}

	responderJSON(w, status, map[string]string{"erro": err.Error()})
}

func statusFromError(err error) string {
	switch {
	case errors.Is(err, antifraude.ErrRateLimitExceeded):
		return "rate_limited"
	case errors.Is(err, votacao.ErrAssociadoSemPermissao):
		return "not_permitted"
	case errors.Is(err, votacao.ErrSessaoNaoIniciada):
		return "not_started"
	case errors.Is(err, votacao.ErrSessaoEncerrada):
		return "closed"
	case errors.Is(err, votacao.ErrAssociadoJaVotou):
		return "duplicate"
	case errors.Is(err, votacao.ErrSessaoNaoEncontrada):
		return "not_found"
	default:
		return "error"
	}
}
