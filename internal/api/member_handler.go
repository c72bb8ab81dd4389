package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shaxn3/WSTFinalProject/internal/api/shared"
	"github.com/shaxn3/WSTFinalProject/internal/domain"
	"github.com/shaxn3/WSTFinalProject/internal/service/roster"
)

// RosterService is the roster behavior the handler depends on.
type RosterService interface {
	List(ctx context.Context) ([]domain.Member, error)
	Replace(ctx context.Context, members []domain.Member) error
	Add(ctx context.Context, candidate domain.Member) (domain.Member, error)
	Update(ctx context.Context, id string, candidate domain.Member) (domain.Member, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (roster.Stats, error)
}

// Supported action selectors.
const (
	actionRead   = "read"
	actionSave   = "save"
	actionAdd    = "add"
	actionUpdate = "update"
	actionDelete = "delete"
	actionStats  = "stats"
)

const invalidActionMessage = "Invalid action. Supported actions: read, save, add, update, delete, stats"

// MemberHandler serves the roster endpoint. All six operations share one
// route and are selected by the "action" query parameter; update and delete
// additionally take the target "id".
type MemberHandler struct {
	roster RosterService
	logger *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(rosterService RosterService, logger *slog.Logger) *MemberHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MemberHandler")
	}

	return &MemberHandler{
		roster: rosterService,
		logger: logger.With(slog.String("component", "member_handler")),
	}
}

// Handle dispatches a roster request to the selected operation.
func (h *MemberHandler) Handle(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")

	switch action {
	case actionRead:
		h.read(w, r)
	case actionSave:
		h.save(w, r)
	case actionAdd:
		h.add(w, r)
	case actionUpdate:
		h.update(w, r)
	case actionDelete:
		h.delete(w, r)
	case actionStats:
		h.stats(w, r)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, invalidActionMessage)
	}
}

// read returns the entire collection as a bare JSON array.
func (h *MemberHandler) read(w http.ResponseWriter, r *http.Request) {
	members, err := h.roster.List(r.Context())
	if err != nil {
		h.respondOperationError(w, r, err, "Failed to read members")
		return
	}
	if members == nil {
		members = []domain.Member{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, members)
}

// save overwrites the collection wholesale with the request body.
func (h *MemberHandler) save(w http.ResponseWriter, r *http.Request) {
	var members []domain.Member
	if err := shared.DecodeJSON(r, &members); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	if err := h.roster.Replace(r.Context(), members); err != nil {
		h.respondOperationError(w, r, err, "Failed to save members to file")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Success: true,
		Message: "Members saved successfully",
	})
}

// add appends one candidate record, assigning an ID when none is supplied.
func (h *MemberHandler) add(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Member
	if err := shared.DecodeJSON(r, &candidate); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	added, err := h.roster.Add(r.Context(), candidate)
	if err != nil {
		h.respondOperationError(w, r, err, "Failed to save member")
		return
	}

	h.logger.Debug("member added", slog.String("member_id", added.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Success: true,
		Member:  &added,
		Message: "Member added successfully",
	})
}

// update replaces the record with the id given out-of-band in the query.
func (h *MemberHandler) update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Member ID is required")
		return
	}

	var candidate domain.Member
	if err := shared.DecodeJSON(r, &candidate); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	updated, err := h.roster.Update(r.Context(), id, candidate)
	if err != nil {
		h.respondOperationError(w, r, err, "Failed to save member")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Success: true,
		Member:  &updated,
		Message: "Member updated successfully",
	})
}

// delete removes the record with the id given in the query.
func (h *MemberHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Member ID is required")
		return
	}

	if err := h.roster.Delete(r.Context(), id); err != nil {
		h.respondOperationError(w, r, err, "Failed to save changes")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Success: true,
		Message: "Member deleted successfully",
	})
}

// stats returns the aggregate counts as a bare JSON object.
func (h *MemberHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.roster.Stats(r.Context())
	if err != nil {
		h.respondOperationError(w, r, err, "Failed to compute stats")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// respondOperationError translates a roster error into the response
// envelope. Validation failures carry their structured details; everything
// else goes through the central status/message mapping, with internal
// failures replaced by the operation-specific message and the cause logged.
func (h *MemberHandler) respondOperationError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	internalMessage string,
) {
	var verr *roster.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.Details())
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError {
		message = internalMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
