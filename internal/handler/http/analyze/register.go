package analyze

import (
	"net/http"

	"newstrust/internal/repository"
)

// Register registers the analysis HTTP handlers with the given mux.
// The history listing is only registered when a repository is provided;
// without one, analyses are not persisted and there is nothing to list.
func Register(mux *http.ServeMux, svc Analyzer, history repository.AnalysisRepository) {
	mux.Handle("POST   /analyze", Handler{Svc: svc})
	if history != nil {
		mux.Handle("GET    /history", HistoryHandler{Repo: history})
	}
}
