package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/stumpline/cricket-auction/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	players, err := h.playerService.List(ctx, query, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "query", query, "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req upsertPlayerRequest
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

	item, err := h.playerService.Create(ctx, usecase.PlayerInput{
		Name:      req.Name,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req upsertPlayerRequest
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

	item, err := h.playerService.Update(ctx, playerID, usecase.PlayerInput{
		Name:      req.Name,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": playerID})
}

// GetPlayerPortrait resolves the player's portrait, fetching it from the
// image directory and caching it on the record the first time.
func (h *Handler) GetPlayerPortrait(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerPortrait")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if item.ImageURL != "" {
		writeSuccess(ctx, w, http.StatusOK, portraitDTO{PlayerID: item.ID, URL: item.ImageURL})
		return
	}

	if h.portraits == nil {
		writeError(ctx, w, fmt.Errorf("%w: no portrait for player=%s", usecase.ErrNotFound, playerID))
		return
	}

	url, err := h.portraits.PortraitURL(ctx, item.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "portrait lookup failed", "player_id", playerID, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: portrait directory lookup failed", usecase.ErrDependencyUnavailable))
		return
	}
	if url == "" {
		writeError(ctx, w, fmt.Errorf("%w: no portrait for player=%s", usecase.ErrNotFound, playerID))
		return
	}

	if err := h.playerService.SetImageURL(ctx, item.ID, url); err != nil {
		h.logger.WarnContext(ctx, "store portrait failed", "player_id", playerID, "error", err)
	}

	writeSuccess(ctx, w, http.StatusOK, portraitDTO{PlayerID: item.ID, URL: url})
}
