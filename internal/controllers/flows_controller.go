package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/guideflow/guideflow/internal/engine"
	"github.com/guideflow/guideflow/internal/flow"
	"github.com/guideflow/guideflow/internal/util"
	"github.com/guideflow/guideflow/pkg/guideflow/domain"
	"github.com/guideflow/guideflow/pkg/guideflow/models"
)

// FlowsController holds dependencies for flow document HTTP endpoints.
type FlowsController struct {
	FlowRepo     engine.FlowRepo
	RevisionRepo engine.RevisionRepo
	IDs          flow.IDGenerator
}

func NewFlowsController(flowRepo engine.FlowRepo, revisionRepo engine.RevisionRepo) *FlowsController {
	return &FlowsController{FlowRepo: flowRepo, RevisionRepo: revisionRepo, IDs: flow.UUIDGenerator{}}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	util.WriteJSONResponse(w, status, models.ErrorResponse{Error: msg})
}

func (c *FlowsController) handleListFlows(w http.ResponseWriter, r *http.Request) {
	flows, err := c.FlowRepo.FindAll()
	if err != nil {
		slog.Error("Failed to list flows", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list flows")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, flows)
}

func (c *FlowsController) handleCreateFlow(w http.ResponseWriter, r *http.Request) {
	req, err := util.DecodeJSONBody[models.CreateFlowRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	doc := &domain.FlowDocument{
		ID:              req.ID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		TriggerKeywords: req.TriggerKeywords,
		Steps:           req.Steps,
	}
	if doc.ID == "" {
		doc.ID = c.IDs.NewFlowID()
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if existing, _ := c.FlowRepo.FindByID(doc.ID); existing != nil {
		writeError(w, http.StatusConflict, "flow already exists: "+doc.ID)
		return
	}

	slog.InfoContext(r.Context(), "Creating flow", "id", doc.ID, "title", doc.Title)
	if err := c.FlowRepo.Save(doc); err != nil {
		slog.Error("Failed to save flow", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create flow")
		return
	}
	util.WriteJSONResponse(w, http.StatusCreated, doc)
}

func (c *FlowsController) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	doc, err := c.FlowRepo.FindByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "flow not found")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, doc)
}

// handleUpdateFlow replaces the stored document wholesale. The previous
// version is archived first, then the edit distance between the two versions
// is reported back alongside the stored result.
func (c *FlowsController) handleUpdateFlow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	edited, err := util.DecodeJSONBody[domain.FlowDocument](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	edited.ID = id
	edited.Normalize()
	if err := edited.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	original, err := c.FlowRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrFlowNotFound) {
			writeError(w, http.StatusNotFound, "flow not found")
			return
		}
		slog.Error("Failed to load flow", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load flow")
		return
	}

	changes := flow.Analyze(original, &edited)

	if err := c.RevisionRepo.Archive(original); err != nil {
		// The save still proceeds; losing one archive entry is better
		// than rejecting the edit.
		slog.Warn("Failed to archive flow revision", "id", id, "error", err)
	}

	edited.CreatedAt = original.CreatedAt
	if err := c.FlowRepo.Save(&edited); err != nil {
		slog.Error("Failed to save flow", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save flow")
		return
	}

	// Read back the stored row so the response reflects what persistence
	// actually holds. If the read fails we fall back to the document we
	// just wrote.
	stored, err := c.FlowRepo.FindByID(id)
	if err != nil {
		slog.Warn("Read-back after save failed", "id", id, "error", err)
		stored = &edited
	}

	slog.InfoContext(r.Context(), "Updated flow", "id", id,
		"added", changes.Added, "modified", changes.Modified, "deleted", changes.Deleted)
	util.WriteJSONResponse(w, http.StatusOK, models.SaveFlowResponse{Flow: stored, Changes: changes})
}

func (c *FlowsController) handleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if err := c.FlowRepo.Delete(id); err != nil {
		if errors.Is(err, domain.ErrFlowNotFound) {
			writeError(w, http.StatusNotFound, "flow not found")
			return
		}
		slog.Error("Failed to delete flow", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete flow")
		return
	}
	if err := c.RevisionRepo.Delete(id); err != nil {
		slog.Warn("Failed to delete flow revisions", "id", id, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *FlowsController) handleSearchFlows(w http.ResponseWriter, r *http.Request) {
	req, err := util.DecodeJSONBody[models.SearchFlowsRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	flows, err := c.FlowRepo.Search(req.Query)
	if err != nil {
		slog.Error("Failed to search flows", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to search flows")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, flows)
}

// handleAnalyzeFlows compares two documents without saving either, used by
// editors that want a change preview before committing.
func (c *FlowsController) handleAnalyzeFlows(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeFlowsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Original == nil || req.Edited == nil {
		writeError(w, http.StatusBadRequest, "original and edited are required")
		return
	}
	req.Original.Normalize()
	req.Edited.Normalize()
	util.WriteJSONResponse(w, http.StatusOK, flow.Analyze(req.Original, req.Edited))
}

func (c *FlowsController) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	rows, err := c.RevisionRepo.ListByFlow(id)
	if err != nil {
		slog.Error("Failed to list revisions", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list revisions")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, rows)
}

func (c *FlowsController) handleGetRevision(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	revStr := r.PathValue("rev")
	rev, err := strconv.Atoi(revStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "rev is an integer")
		return
	}
	doc, err := c.RevisionRepo.Get(id, rev)
	if err != nil {
		if errors.Is(err, domain.ErrFlowNotFound) {
			writeError(w, http.StatusNotFound, "revision not found")
			return
		}
		slog.Error("Failed to load revision", "id", id, "rev", rev, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load revision")
		return
	}
	util.WriteJSONResponse(w, http.StatusOK, doc)
}
