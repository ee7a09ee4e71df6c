package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/chess-ratings/internal/domain/result"
	"github.com/riskibarqy/chess-ratings/internal/domain/tournament"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
	"github.com/riskibarqy/chess-ratings/internal/platform/rowspan"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	values := r.URL.Query()
	req := pagination.ParseRequest(values, h.defaultPerPage)
	page, err := h.tournamentService.ListTournaments(ctx, req, r.URL.Path, values)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newPageDTO(page, func(_ int, t tournament.Tournament) tournamentDTO {
		return tournamentToDTO(t)
	}))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	detail, err := h.tournamentService.GetTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentDetailDTO{
		tournamentDTO: tournamentToDTO(detail.Tournament),
		PlayerCount:   detail.PlayerCount,
		GameCount:     detail.GameCount,
	})
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	values := r.URL.Query()
	req := pagination.ParseRequest(values, h.defaultPerPage)
	results, err := h.tournamentService.ListResults(ctx, tournamentID, req, r.URL.Path, values)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newPageDTO(results.Page, func(i int, g result.Game) gameDTO {
		var roundSpan rowspan.Span[int]
		if i < len(results.RoundSpans) {
			roundSpan = results.RoundSpans[i]
		}
		return gameToDTO(g, roundSpan)
	}))
}

func (h *Handler) GetFideMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFideMatches")
	defer span.End()

	h.serveFideMatches(w, r.WithContext(ctx), false)
}

func (h *Handler) RefreshFideMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshFideMatches")
	defer span.End()

	h.serveFideMatches(w, r.WithContext(ctx), true)
}

func (h *Handler) serveFideMatches(w http.ResponseWriter, r *http.Request, update bool) {
	ctx := r.Context()
	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))

	maxSamples, err := h.parseMaxSamples(r.URL.Query().Get("max_samples"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid max_samples", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	report, err := h.tournamentService.FideMatches(ctx, tournamentID, update, maxSamples)
	if err != nil {
		h.logger.WarnContext(ctx, "fide matches failed", "tournament_id", tournamentID, "update", update, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fideMatchReportToDTO(report, maxSamples))
}

// parseMaxSamples treats an empty value and zero as the configured default.
func (h *Handler) parseMaxSamples(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return h.maxSamples, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: max_samples must be a non-negative integer", usecase.ErrInvalidInput)
	}
	if n == 0 {
		return h.maxSamples, nil
	}
	return n, nil
}
