package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/stumpline/cricket-auction/internal/platform/logging"
	"github.com/stumpline/cricket-auction/internal/usecase"
)

type Handler struct {
	auctionService *usecase.AuctionService
	playerService  *usecase.PlayerService
	teamService    *usecase.TeamService
	rosterService  *usecase.RosterSheetService
	portraits      usecase.PortraitLookup
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	auctionService *usecase.AuctionService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	rosterService *usecase.RosterSheetService,
	portraits usecase.PortraitLookup,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		auctionService: auctionService,
		playerService:  playerService,
		teamService:    teamService,
		rosterService:  rosterService,
		portraits:      portraits,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
