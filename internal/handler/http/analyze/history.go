package analyze

import (
	"errors"
	"net/http"
	"strconv"

	"newstrust/internal/handler/http/respond"
	"newstrust/internal/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryHandler handles GET /history requests. It lists recent persisted
// analyses, newest first. Registered only when history persistence is enabled.
type HistoryHandler struct{ Repo repository.AnalysisRepository }

func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("limit must be a positive integer"))
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	records, err := h.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]HistoryDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, HistoryDTO{
			ID:            rec.ID,
			SourceURL:     rec.SourceURL,
			Query:         rec.Query,
			Verdict:       string(rec.Verdict),
			Confidence:    rec.Confidence,
			Status:        string(rec.Status),
			ReliableCount: rec.ReliableCount,
			Summary:       rec.Summary,
			CreatedAt:     rec.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, map[string]any{"analyses": out})
}
