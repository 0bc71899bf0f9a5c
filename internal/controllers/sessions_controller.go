package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guideflow/guideflow/internal/engine"
	"github.com/guideflow/guideflow/internal/util"
	"github.com/guideflow/guideflow/pkg/guideflow/domain"
	"github.com/guideflow/guideflow/pkg/guideflow/models"
)

// SessionsController exposes the preview/run engine over HTTP. Sessions are
// in-memory and expire when idle; clients hold only the session id.
type SessionsController struct {
	FlowRepo engine.FlowRepo
	Sessions *engine.SessionManager
}

func NewSessionsController(flowRepo engine.FlowRepo, sessions *engine.SessionManager) *SessionsController {
	return &SessionsController{FlowRepo: flowRepo, Sessions: sessions}
}

func sessionResponse(id string, doc *domain.FlowDocument, s engine.Session) models.SessionResponse {
	step := doc.FindStep(s.CurrentStepID)
	checked := make([]int, 0)
	if step != nil {
		for i := range step.Checklist {
			if s.Checked[engine.ChecklistKey{StepID: step.ID, Index: i}] {
				checked = append(checked, i)
			}
		}
	}
	return models.SessionResponse{
		SessionID:      id,
		CurrentStepID:  s.CurrentStepID,
		CurrentStep:    step,
		History:        s.History,
		Checked:        checked,
		AdvanceAllowed: engine.AdvanceAllowed(doc, s),
		Terminal:       step != nil && step.IsTerminal(),
	}
}

func (c *SessionsController) handleStartSession(w http.ResponseWriter, r *http.Request) {
	req, err := util.DecodeJSONBody[models.StartSessionRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	var doc *domain.FlowDocument
	switch {
	case req.Document != nil:
		doc = req.Document
		doc.Normalize()
		if err := doc.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case req.FlowID != "":
		doc, err = c.FlowRepo.FindByID(req.FlowID)
		if err != nil {
			writeError(w, http.StatusNotFound, "flow not found")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "flowId or document is required")
		return
	}

	startID := req.StartStepID
	if startID == "" {
		startID = domain.StartStepID
	}
	if doc.FindStep(startID) == nil {
		writeError(w, http.StatusBadRequest, "start step not found: "+startID)
		return
	}

	id, state := c.Sessions.Open(doc, startID)
	slog.InfoContext(r.Context(), "Started session", "session_id", id, "flow_id", doc.ID)
	util.WriteJSONResponse(w, http.StatusCreated, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, state, err := c.Sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleToggleChecklist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	req, err := util.DecodeJSONBody[models.ToggleChecklistRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	doc, state, err := c.Sessions.Apply(id, func(doc *domain.FlowDocument, s engine.Session) (engine.Session, error) {
		step := doc.FindStep(s.CurrentStepID)
		if step == nil || req.Index < 0 || req.Index >= len(step.Checklist) {
			return s, domain.ErrStepNotFound
		}
		return s.ToggleChecklistItem(req.Index), nil
	})
	if err != nil {
		writeSessionError(w, err, "checklist index out of range")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, state, err := c.Sessions.Apply(id, func(doc *domain.FlowDocument, s engine.Session) (engine.Session, error) {
		return engine.Advance(doc, s)
	})
	if err != nil {
		writeSessionError(w, err, "advance failed")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	req, err := util.DecodeJSONBody[models.SelectOptionRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	doc, state, err := c.Sessions.Apply(id, func(doc *domain.FlowDocument, s engine.Session) (engine.Session, error) {
		return engine.SelectOption(doc, s, req.NextStepID)
	})
	if err != nil {
		writeSessionError(w, err, "select failed")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleBack(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, state, err := c.Sessions.Apply(id, func(doc *domain.FlowDocument, s engine.Session) (engine.Session, error) {
		return s.Back(), nil
	})
	if err != nil {
		writeSessionError(w, err, "back failed")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, state, err := c.Sessions.Reset(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, sessionResponse(id, doc, state))
}

func (c *SessionsController) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	c.Sessions.Close(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func writeSessionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, engine.ErrChecklistIncomplete):
		writeError(w, http.StatusConflict, "checklist incomplete")
	case errors.Is(err, engine.ErrBrokenTransition):
		writeError(w, http.StatusUnprocessableEntity, "no such destination step")
	case errors.Is(err, engine.ErrHistoryLimit):
		writeError(w, http.StatusConflict, "history limit reached")
	case errors.Is(err, domain.ErrStepNotFound):
		writeError(w, http.StatusBadRequest, fallback)
	default:
		slog.Error("Session operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
