package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"adpace/internal/model"
	"adpace/internal/publish"
	"adpace/internal/report"

	"github.com/google/uuid"
)

// parseOptions reads the shared query parameters: `from`, `to` (local dates,
// 2006-01-02) and repeatable `campaign_id` UUIDs.
func parseOptions(r *http.Request) (report.Options, error) {
	var opts report.Options
	q := r.URL.Query()

	if fromStr := q.Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return opts, model.NewInputError("from", "invalid date %q", fromStr)
		}
		opts.From = from
	}
	if toStr := q.Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return opts, model.NewInputError("to", "invalid date %q", toStr)
		}
		opts.To = to
	}
	for _, cid := range q["campaign_id"] {
		id, err := uuid.Parse(cid)
		if err != nil {
			return opts, model.NewInputError("campaign_id", "invalid UUID %q", cid)
		}
		opts.CampaignIDs = append(opts.CampaignIDs, id)
	}
	return opts, nil
}

// run executes the report and translates failures: input errors are the
// caller's fault, everything else is ours.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*model.RollupTables, *reportPayload, bool) {
	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	res, err := h.svc.Run(r.Context(), opts)
	if err != nil {
		if model.IsInputError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, nil, false
		}
		h.logger.Error("report error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}
	return &res.Tables, &reportPayload{
		Pacing:      res.Pacing,
		Allocations: res.Allocations,
	}, true
}

type reportPayload struct {
	Pacing      model.PacingSnapshot        `json:"pacing"`
	Allocations []model.WeeklyAllocationRow `json:"allocations"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// handleRollup returns the six rollup views as header+rows sheets.
func (h *Handler) handleRollup(w http.ResponseWriter, r *http.Request) {
	tables, _, ok := h.run(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]any{"sheets": publish.FromRollup(*tables)})
}

// handlePacing returns the pacing snapshot.
func (h *Handler) handlePacing(w http.ResponseWriter, r *http.Request) {
	_, payload, ok := h.run(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, payload.Pacing)
}

// handleAllocations returns the forward weekly budget allocations.
func (h *Handler) handleAllocations(w http.ResponseWriter, r *http.Request) {
	_, payload, ok := h.run(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]any{"allocations": payload.Allocations})
}
