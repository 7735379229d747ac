package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "votacao_voto_requests_total",
		Help: "Total de requisicoes de voto recebidas pela API",
	}, []string{"status"})

	cpfConsultasTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "votacao_cpf_consultas_total",
		Help: "Total de consultas ao servico externo de CPF",
	}, []string{"resultado"})

	resultadoPublicadoTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "votacao_resultado_publicado_total",
		Help: "Total de resultados de sessao publicados na fila pelo worker",
	})

	resultadoPublicacaoDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "votacao_resultado_publicacao_duration_seconds",
		Help:    "Tempo para apurar e publicar o resultado de uma sessao",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveVotoRequest(status string) {
	votoRequestsTotal.WithLabelValues(status).Inc()
}

func ObserveCPFConsulta(resultado string) {
	cpfConsultasTotal.WithLabelValues(resultado).Inc()
}

func IncResultadoPublicado() {
	resultadoPublicadoTotal.Inc()
}

func ObservePublicacaoDuration(seconds float64) {
	resultadoPublicacaoDuration.Observe(seconds)
}
