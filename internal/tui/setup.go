package tui

import (
	"unbudget/internal/config"
	"unbudget/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run form answers.
type setupValues struct {
	budgetRef  string
	detailsRef string
	themeName  string
}

// newSetupForm builds the first-run setup form, pre-filled with the refs the
// app was started with.
func newSetupForm(vals *setupValues, budgetRef, detailsRef string) *huh.Form {
	vals.budgetRef = budgetRef
	vals.detailsRef = detailsRef
	vals.themeName = theme.Active.Name

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to unbudget").
				Description("Explore the UN 2026 proposed programme budget.\nA few settings before we start."),
			huh.NewInput().
				Title("Budget dataset").
				Description("Path or URL of budget.json").
				Value(&vals.budgetRef),
			huh.NewInput().
				Title("Narrative dataset").
				Description("Path or URL of details.json").
				Value(&vals.detailsRef),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&vals.themeName),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.needSetup = false
		a.dataRef = a.setupVals.budgetRef
		a.detailsRef = a.setupVals.detailsRef
		theme.SetActive(a.setupVals.themeName)

		cfg, err := config.Load()
		if err == nil {
			cfg.Data.Budget = a.setupVals.budgetRef
			cfg.Data.Details = a.setupVals.detailsRef
			cfg.Appearance.Theme = a.setupVals.themeName
			_ = config.Save(cfg)
		}
		a.setupForm = nil

		// Reload if the data source changed during setup
		return a, loadDataCmd(a.dataRef, a.cachePath, a.noCache)
	}

	return a, cmd
}
