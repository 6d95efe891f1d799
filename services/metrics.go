package services

import "github.com/prometheus/client_golang/prometheus"

var (
	papersImported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "papers_imported_total",
		Help: "Total number of new papers added to the database.",
	})
	papersSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "papers_skipped_total",
		Help: "Total number of fetched papers skipped as duplicates or failed inserts.",
	})
	recommendationsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommendations_generated_total",
		Help: "Total number of recommendation rows written.",
	})
)

func init() {
	prometheus.MustRegister(papersImported, papersSkipped, recommendationsGenerated)
}
