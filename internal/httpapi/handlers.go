package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/pinely/internal/domain"
	"github.com/alexanderramin/pinely/internal/intelligence"
	"github.com/go-chi/chi/v5/middleware"
)

// Error messages shown to the web client.
const (
	msgOrganizeInput = "Please provide more text to organize"
	msgActionInput   = "Please provide an idea"
	msgBadBody       = "Invalid request body"
)

// maxBodyBytes caps request bodies; a brain dump is plain text.
const maxBodyBytes = 1 << 20

// Handlers serves the organize and action endpoints. They are stateless:
// the client owns the session.
type Handlers struct {
	organizer intelligence.OrganizeService
	actions   intelligence.ActionService
	logger    *slog.Logger
}

func NewHandlers(organizer intelligence.OrganizeService, actions intelligence.ActionService, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{organizer: organizer, actions: actions, logger: logger}
}

type OrganizeRequest struct {
	RawDump string `json:"rawDump" validate:"required,max=100000"`
}

type OrganizeResponse struct {
	Clusters []domain.Cluster `json:"clusters"`
	Fallback bool             `json:"fallback,omitempty"`
}

// ActionRequest accepts "energy" or the web client's "mood". Empty time
// and energy default to open and medium.
type ActionRequest struct {
	Idea   string `json:"idea" validate:"required,max=2000"`
	Time   string `json:"time" validate:"omitempty,oneof=short medium open 5min 30min few half any unbounded"`
	Energy string `json:"energy" validate:"omitempty,oneof=low medium high tired neutral focused"`
	Mood   string `json:"mood" validate:"omitempty,oneof=low medium high tired neutral focused"`
}

type ActionResponse struct {
	Action   string `json:"action"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Organize handles POST /api/organize.
func (h *Handlers) Organize(w http.ResponseWriter, r *http.Request) {
	var req OrganizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgOrganizeInput, err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, msgOrganizeInput, err.Error())
		return
	}

	res, err := h.organizer.Organize(r.Context(), req.RawDump)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, msgOrganizeInput, "")
			return
		}
		h.logger.ErrorContext(r.Context(), "organize_failed",
			"request_id", middleware.GetReqID(r.Context()), "error", err.Error())
		respondError(w, http.StatusInternalServerError, "Failed to organize thoughts", "")
		return
	}

	respondJSON(w, http.StatusOK, OrganizeResponse{Clusters: res.Clusters, Fallback: res.Fallback})
}

// Action handles POST /api/action.
func (h *Handlers) Action(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, msgBadBody, err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, msgActionInput, err.Error())
		return
	}

	t, e, err := req.choices()
	if err != nil {
		respondError(w, http.StatusBadRequest, msgActionInput, err.Error())
		return
	}

	res, err := h.actions.NextAction(r.Context(), req.Idea, t, e)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, msgActionInput, "")
			return
		}
		h.logger.ErrorContext(r.Context(), "action_failed",
			"request_id", middleware.GetReqID(r.Context()), "error", err.Error())
		respondError(w, http.StatusInternalServerError, "Failed to generate action", "")
		return
	}

	respondJSON(w, http.StatusOK, ActionResponse{Action: res.Action, Fallback: res.Fallback})
}

func (req ActionRequest) choices() (domain.TimeChoice, domain.EnergyChoice, error) {
	t := domain.TimeOpen
	if req.Time != "" {
		parsed, err := domain.ParseTimeChoice(req.Time)
		if err != nil {
			return "", "", err
		}
		t = parsed
	}

	e := domain.EnergyMedium
	if raw := domain.CoalesceStr(req.Energy, req.Mood); raw != "" {
		parsed, err := domain.ParseEnergyChoice(raw)
		if err != nil {
			return "", "", err
		}
		e = parsed
	}
	return t, e, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
