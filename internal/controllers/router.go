package controllers

import "net/http"

// RegisterRoutes wires the HTTP routes for this controller.
func (c *FlowsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/flows", c.handleListFlows)
	mux.HandleFunc("POST /api/flows", c.handleCreateFlow)
	mux.HandleFunc("POST /api/flows/search", c.handleSearchFlows)
	mux.HandleFunc("POST /api/flows/analyze", c.handleAnalyzeFlows)
	mux.HandleFunc("GET /api/flows/{id}", c.handleGetFlow)
	mux.HandleFunc("PUT /api/flows/{id}", c.handleUpdateFlow)
	mux.HandleFunc("DELETE /api/flows/{id}", c.handleDeleteFlow)
	mux.HandleFunc("GET /api/flows/{id}/revisions", c.handleListRevisions)
	mux.HandleFunc("GET /api/flows/{id}/revisions/{rev}", c.handleGetRevision)
}

func (c *SessionsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", c.handleStartSession)
	mux.HandleFunc("GET /api/sessions/{id}", c.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/checklist", c.handleToggleChecklist)
	mux.HandleFunc("POST /api/sessions/{id}/advance", c.handleAdvance)
	mux.HandleFunc("POST /api/sessions/{id}/select", c.handleSelectOption)
	mux.HandleFunc("POST /api/sessions/{id}/back", c.handleBack)
	mux.HandleFunc("POST /api/sessions/{id}/reset", c.handleResetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", c.handleCloseSession)
}
