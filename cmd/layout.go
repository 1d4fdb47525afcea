package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"unbudget/internal/layout"
	"unbudget/internal/model"
	"unbudget/internal/treemap"

	"github.com/spf13/cobra"
)

var flagLayoutPart string

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Compute the treemap layout and print it as JSON",
	Long: "Compute proportional-area rectangles for the budget hierarchy in 0–100\n" +
		"percentage units and print them as JSON, ready to feed a renderer.",
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&flagLayoutPart, "part", "", `Limit output to one part (e.g. "Part I")`)
	rootCmd.AddCommand(layoutCmd)
}

// layoutEntity et al. mirror the HTTP API treemap payload so the CLI and
// server emit the same shape.
type layoutEntity struct {
	treemap.Rect
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Budget       float64 `json:"budget"`
}

type layoutSection struct {
	treemap.Rect
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Budget    float64        `json:"budget"`
	Synthetic bool           `json:"synthetic,omitempty"`
	Entities  []layoutEntity `json:"entities,omitempty"`
}

type layoutPart struct {
	treemap.Rect
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Budget   float64         `json:"budget"`
	Sections []layoutSection `json:"sections"`
}

func runLayout(cmd *cobra.Command, _ []string) error {
	policy, err := splitPolicy()
	if err != nil {
		return err
	}

	result, err := loadBudget(cmd.Context())
	if err != nil {
		return err
	}
	tree := result.Tree

	var parts []layoutPart
	if flagLayoutPart != "" {
		p := tree.Part(flagLayoutPart)
		if p == nil {
			return fmt.Errorf("no part %q in the dataset", flagLayoutPart)
		}
		parts = append(parts, buildLayoutPart(p, layout.Unit, policy))
	} else {
		for _, placed := range layout.PartRects(tree, layout.Unit, policy) {
			parts = append(parts, buildLayoutPart(placed.Payload, placed.Rect, policy))
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parts)
}

func buildLayoutPart(p *model.PartNode, rect treemap.Rect, policy treemap.SplitPolicy) layoutPart {
	lp := layoutPart{
		Rect:   rect,
		ID:     p.ID,
		Name:   p.Name,
		Budget: p.TotalBudget,
	}
	for _, sp := range layout.SectionRects(p, layout.Unit, policy) {
		sec := sp.Payload
		ls := layoutSection{
			Rect:      layout.Compose(rect, sp.Rect),
			ID:        sec.ID,
			Name:      sec.Name,
			Budget:    sec.TotalBudget,
			Synthetic: sec.Synthetic,
		}
		for _, ep := range layout.EntityRects(sec, layout.Unit, policy) {
			ent := ep.Payload
			ls.Entities = append(ls.Entities, layoutEntity{
				Rect:         layout.Compose(ls.Rect, ep.Rect),
				Name:         ent.Name,
				Abbreviation: ent.Abbreviation,
				Budget:       ent.TotalBudget,
			})
		}
		lp.Sections = append(lp.Sections, ls)
	}
	return lp
}
