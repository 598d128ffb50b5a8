package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/stumpline/cricket-auction/internal/domain/auction"
	"github.com/stumpline/cricket-auction/internal/usecase"
)

func (h *Handler) GetCurrentLot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentLot")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, lotToDTO(ctx, h.auctionService.Current(ctx)))
}

func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayer")
	defer span.End()

	var req selectPlayerRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lot, err := h.auctionService.Select(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "select player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotToDTO(ctx, lot))
}

func (h *Handler) NextPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextPlayer")
	defer span.End()

	lot, err := h.auctionService.Next(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "pick next player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lotToDTO(ctx, lot))
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	var req placeBidRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bid, err := h.auctionService.PlaceBid(ctx, req.TeamID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed", "team_id", req.TeamID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bidDTO{
		TeamID:        bid.TeamID,
		Amount:        bid.Amount,
		AmountDisplay: auction.FormatAmount(bid.Amount),
	})
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	var req sellPlayerRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.auctionService.Sell(ctx, req.PlayerID, req.TeamID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed",
			"player_id", req.PlayerID,
			"team_id", req.TeamID,
			"amount", req.Amount,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyEntryToDTO(ctx, entry))
}

func (h *Handler) MarkUnsold(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkUnsold")
	defer span.End()

	var req markUnsoldRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.auctionService.MarkUnsold(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark unsold failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyEntryToDTO(ctx, entry))
}

func (h *Handler) ResetAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetAuction")
	defer span.End()

	if err := h.auctionService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset auction failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	history := h.auctionService.History(ctx)
	items := make([]historyEntryDTO, 0, len(history))
	for _, entry := range history {
		items = append(items, historyEntryToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(ctx, h.auctionService.Stats(ctx)))
}
