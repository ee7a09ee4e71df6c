package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/chess-ratings/internal/domain/player"
	"github.com/riskibarqy/chess-ratings/internal/platform/pagination"
)

type ratingListQuery struct {
	Federation string `validate:"omitempty,len=3,alpha"`
	Query      string `validate:"max=64"`
}

func (h *Handler) ListRatingList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRatingList")
	defer span.End()

	values := r.URL.Query()
	query := ratingListQuery{
		Federation: strings.TrimSpace(values.Get("federation")),
		Query:      strings.TrimSpace(values.Get("q")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		h.logger.WarnContext(ctx, "invalid rating list query", "federation", query.Federation, "error", err)
		writeError(ctx, w, err)
		return
	}

	req := pagination.ParseRequest(values, h.defaultPerPage)
	filter := player.Filter{Federation: query.Federation, NamePrefix: query.Query}
	page, err := h.playerService.ListRatingList(ctx, filter, req, r.URL.Path, values)
	if err != nil {
		h.logger.WarnContext(ctx, "list rating list failed", "federation", query.Federation, "error", err)
		writeError(ctx, w, err)
		return
	}

	offset := page.Request().Offset()
	writeSuccess(ctx, w, http.StatusOK, newPageDTO(page, func(i int, p player.Player) rankedPlayerDTO {
		return rankedPlayerDTO{Rank: offset + i + 1, playerDTO: playerToDTO(p)}
	}))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	p, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}
