package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"newstrust/internal/domain/entity"
	"newstrust/internal/handler/http/respond"
	analyzeUC "newstrust/internal/usecase/analyze"
)

// Analyzer runs the analysis pipeline on submitted text or a URL.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*analyzeUC.Result, error)
	AnalyzeURL(ctx context.Context, url string) (*analyzeUC.Result, error)
}

// Handler handles POST /analyze requests.
type Handler struct{ Svc Analyzer }

// ServeHTTP accepts an article as raw text or as a URL to fetch, runs the
// analysis pipeline, and returns the verdict with corroboration evidence.
// Exactly one of "text" and "url" must be provided.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Text == "" && req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("either text or url is required"))
		return
	}
	if req.Text != "" && req.URL != "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("text and url cannot be combined"))
		return
	}

	var (
		result *analyzeUC.Result
		err    error
	)
	if req.URL != "" {
		result, err = h.Svc.AnalyzeURL(r.Context(), req.URL)
	} else {
		result, err = h.Svc.AnalyzeText(r.Context(), req.Text)
	}
	if err != nil {
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		if req.URL != "" {
			// The article behind the URL could not be retrieved.
			respond.SafeErrorV2(w, http.StatusBadGateway,
				respond.NewAppError(http.StatusBadGateway,
					"failed to fetch article content from url", err))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	explanation := result.Explanation
	if explanation == nil {
		explanation = []string{}
	}

	respond.JSON(w, http.StatusOK, ResponseDTO{
		Result:      string(result.Verdict),
		Confidence:  result.Confidence,
		Summary:     result.Summary,
		Explanation: explanation,
		Message:     "Analysis complete.",
		LiveVerification: VerificationDTO{
			Status:        string(result.Corroboration.Status),
			Sources:       toSourceDTOs(result.Corroboration.Sources),
			ReliableCount: result.Corroboration.ReliableCount,
			Message:       result.Corroboration.Message,
		},
	})
}
