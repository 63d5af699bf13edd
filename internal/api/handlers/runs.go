// Package handlers implements the HTTP status API served alongside the
// scheduled exporter.
package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/shop-catalog-exporter/internal/engine"
)

// RunsProvider defines the history methods required by the runs handler.
type RunsProvider interface {
	Runs() []engine.RunRecord
	Latest() (engine.RunRecord, bool)
}

// RunsHandler serves export run history.
type RunsHandler struct {
	history RunsProvider
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(h RunsProvider) *RunsHandler {
	return &RunsHandler{history: h}
}

// ListRunsOutput is the response body for the run list.
type ListRunsOutput struct {
	Body []engine.RunRecord
}

// GetLatestRunOutput is the response body for the most recent run.
type GetLatestRunOutput struct {
	Body engine.RunRecord
}

// ListRuns returns recorded export runs, newest first.
func (h *RunsHandler) ListRuns(
	_ context.Context,
	_ *struct{},
) (*ListRunsOutput, error) {
	runs := h.history.Runs()
	if runs == nil {
		runs = []engine.RunRecord{}
	}
	return &ListRunsOutput{Body: runs}, nil
}

// GetLatestRun returns the most recent export run.
func (h *RunsHandler) GetLatestRun(
	_ context.Context,
	_ *struct{},
) (*GetLatestRunOutput, error) {
	latest, ok := h.history.Latest()
	if !ok {
		return nil, huma.Error404NotFound("no export runs recorded yet")
	}
	return &GetLatestRunOutput{Body: latest}, nil
}

// RegisterRunRoutes registers run history endpoints with the Huma API.
func RegisterRunRoutes(api huma.API, h *RunsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs",
		Summary:     "List export runs",
		Description: "Returns recorded catalog export runs, newest first.",
		Tags:        []string{"runs"},
	}, h.ListRuns)

	huma.Register(api, huma.Operation{
		OperationID: "get-latest-run",
		Method:      http.MethodGet,
		Path:        "/api/v1/runs/latest",
		Summary:     "Get the latest export run",
		Description: "Returns the most recent catalog export run, failed or not.",
		Tags:        []string{"runs"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetLatestRun)
}
