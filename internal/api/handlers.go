package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"unbudget/internal/details"
	"unbudget/internal/layout"
	"unbudget/internal/lollipop"
	"unbudget/internal/model"
	"unbudget/internal/treemap"
	"unbudget/internal/view"

	"github.com/go-chi/chi/v5"
)

// Rectangle payloads. Coordinates are 0–100 percentages of the parent
// container: part rects within the viewport, section rects within their part,
// entity rects within their section.
type entityRect struct {
	treemap.Rect
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Budget       float64 `json:"budget"`
	Approved     float64 `json:"approved_2025"`
	Variance     float64 `json:"variance_vs_approved_pct"`
}

type sectionRect struct {
	treemap.Rect
	ID        string       `json:"id"`
	Section   string       `json:"section"`
	Name      string       `json:"name"`
	Budget    float64      `json:"budget"`
	Synthetic bool         `json:"synthetic,omitempty"`
	Entities  []entityRect `json:"entities"`
}

type partRect struct {
	treemap.Rect
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Budget   float64       `json:"budget"`
	Variance float64       `json:"variance_vs_approved_pct"`
	Sections []sectionRect `json:"sections"`
}

type treemapResponse struct {
	Mode  string     `json:"mode"`
	Total float64    `json:"total"`
	Parts []partRect `json:"parts"`
}

func (s *Server) handleTree(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.tree)
}

func (s *Server) handleTreemap(w http.ResponseWriter, r *http.Request) {
	policy, name := parseMode(r.URL.Query().Get("mode"))

	resp := treemapResponse{Mode: name, Total: s.tree.TotalBudget()}
	for _, pp := range layout.PartRects(s.tree, layout.Unit, policy) {
		resp.Parts = append(resp.Parts, buildPartRect(pp, policy))
	}
	writeJSON(w, resp)
}

func (s *Server) handleTreemapPart(w http.ResponseWriter, r *http.Request) {
	policy, _ := parseMode(r.URL.Query().Get("mode"))

	part := s.tree.Part(chi.URLParam(r, "part"))
	if part == nil {
		jsonError(w, "unknown part", http.StatusNotFound)
		return
	}
	pr := buildPartRect(treemap.Placed[*model.PartNode]{Rect: layout.Unit, Payload: part}, policy)
	writeJSON(w, pr)
}

func buildPartRect(pp treemap.Placed[*model.PartNode], policy treemap.SplitPolicy) partRect {
	p := pp.Payload
	pr := partRect{
		Rect:     pp.Rect,
		ID:       p.ID,
		Name:     p.Name,
		Budget:   p.TotalBudget,
		Variance: p.VarianceVsApproved,
		Sections: []sectionRect{},
	}
	for _, sp := range layout.SectionRects(p, layout.Unit, policy) {
		sec := sp.Payload
		sr := sectionRect{
			Rect:      sp.Rect,
			ID:        sec.ID,
			Section:   sec.Section,
			Name:      sec.Name,
			Budget:    sec.TotalBudget,
			Synthetic: sec.Synthetic,
			Entities:  []entityRect{},
		}
		for _, ep := range layout.EntityRects(sec, layout.Unit, policy) {
			e := ep.Payload
			sr.Entities = append(sr.Entities, entityRect{
				Rect:         ep.Rect,
				Name:         e.Name,
				Abbreviation: e.Abbreviation,
				Budget:       e.TotalBudget,
				Approved:     e.Approved2025,
				Variance:     e.VarianceVsApproved,
			})
		}
		pr.Sections = append(pr.Sections, sr)
	}
	return pr
}

type lollipopRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Level       int     `json:"level"`
	Approved    float64 `json:"approved_2025"`
	Proposed    float64 `json:"proposed_2026"`
	Revised     float64 `json:"revised_2026"`
	HasChildren bool    `json:"has_children"`
}

type lollipopResponse struct {
	Rows  []lollipopRow `json:"rows"`
	Ticks []float64     `json:"ticks"`
}

func (s *Server) handleLollipop(w http.ResponseWriter, r *http.Request) {
	expanded := view.ExpandSet{}
	if raw := r.URL.Query().Get("expanded"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				expanded[id] = true
			}
		}
	}

	rows := lollipop.BuildRows(s.tree, expanded)
	resp := lollipopResponse{
		Rows:  make([]lollipopRow, 0, len(rows)),
		Ticks: lollipop.TickValues(lollipop.MaxValue(s.tree)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, lollipopRow{
			ID:          row.ID,
			Name:        row.Name,
			Level:       row.Level,
			Approved:    row.Approved,
			Proposed:    row.Proposed,
			Revised:     row.Revised,
			HasChildren: row.HasChildren,
		})
	}
	writeJSON(w, resp)
}

type ticksResponse struct {
	Max   float64   `json:"max"`
	Ticks []float64 `json:"ticks"`
}

// handleTicks exposes the axis for a given maximum so the frontend can build
// rulers without reimplementing the tick rules. Defaults to the widest
// collapsed row.
func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	maxValue := lollipop.MaxValue(s.tree)
	if raw := r.URL.Query().Get("max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			jsonError(w, "max must be a non-negative number", http.StatusBadRequest)
			return
		}
		maxValue = v
	}
	writeJSON(w, ticksResponse{Max: maxValue, Ticks: lollipop.TickValues(maxValue)})
}

type detailsResponse struct {
	Found  bool            `json:"found"`
	Record *details.Record `json:"record,omitempty"`
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		// Narrative dataset never loaded; this is the retryable class.
		jsonError(w, "details unavailable", http.StatusServiceUnavailable)
		return
	}
	name := chi.URLParam(r, "name")
	candidates := []string{name}
	if row, ok := findRow(s.tree, name); ok {
		candidates = []string{row.EntityName, row.Entity, row.ChapterTitle}
	}
	rec := details.Match(s.records, candidates...)
	writeJSON(w, detailsResponse{Found: rec != nil, Record: rec})
}

// findRow locates the source row for an entity by its display name.
func findRow(tree *model.BudgetTree, name string) (model.BudgetRow, bool) {
	for i := range tree.Parts {
		for j := range tree.Parts[i].Sections {
			sec := &tree.Parts[i].Sections[j]
			for k := range sec.Entities {
				if sec.Entities[k].Name == name {
					return sec.Entities[k].Row, true
				}
			}
		}
	}
	return model.BudgetRow{}, false
}

func parseMode(mode string) (treemap.SplitPolicy, string) {
	switch mode {
	case "longer-axis":
		return treemap.LongerAxis, "longer-axis"
	case "row-packing", "compact":
		return treemap.RowPacking, "row-packing"
	default:
		return treemap.AspectThreshold, "default"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
