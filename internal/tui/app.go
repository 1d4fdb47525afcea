// Package tui provides the interactive Bubble Tea dashboard for unbudget.
package tui

import (
	"context"
	"fmt"
	"time"

	"unbudget/internal/cli"
	"unbudget/internal/config"
	"unbudget/internal/details"
	"unbudget/internal/layout"
	"unbudget/internal/lollipop"
	"unbudget/internal/model"
	"unbudget/internal/pipeline"
	"unbudget/internal/store"
	"unbudget/internal/treemap"
	"unbudget/internal/tui/components"
	"unbudget/internal/tui/theme"
	"unbudget/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the budget dataset finishes loading.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
}

// DataErrMsg is sent when the budget dataset cannot be loaded.
type DataErrMsg struct {
	Err error
}

// DetailsLoadedMsg is sent when the lazy narrative fetch completes.
type DetailsLoadedMsg struct {
	Records []details.Record
	Err     error
}

// tmBlock is one selectable treemap rectangle plus the node it represents.
type tmBlock struct {
	rect     treemap.Rect
	id       string
	name     string
	sub      string
	label    string
	budget   float64
	variance float64
	leaf     bool
	colorIdx int
	entity   *model.EntityNode
}

const (
	minTerminalWidth = 60
	// Below this width the treemap switches to the row-packing layout so
	// labels keep horizontal space.
	compactWidth = 80
)

// App is the root Bubble Tea model.
type App struct {
	// Data source
	dataRef    string
	detailsRef string
	cachePath  string
	noCache    bool

	// Data
	tree      *model.BudgetTree
	malformed int
	fromCache bool
	loaded    bool
	loadErr   error
	loadTime  time.Duration

	// Interaction state shared by both layout tabs
	state view.State

	// Treemap tab
	policy  treemap.SplitPolicy
	compact bool // config override; otherwise width decides
	drill   string
	cursor  int
	blocks  []tmBlock

	// Chart tab
	chartRows   []lollipop.Row
	chartTicks  []float64
	chartCursor int

	// Detail overlay
	records     []details.Record
	detailOpen  bool
	detailName  string
	detailRec   *details.Record
	detailErr   error
	detailWait  bool
	detailRow   model.BudgetRow
	detailView  viewport.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// First-run setup (huh form)
	needSetup bool
	setupForm *huh.Form
	setupVals setupValues
}

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config, dataRef, detailsRef string, noCache bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		dataRef:    dataRef,
		detailsRef: detailsRef,
		cachePath:  store.DefaultPath(),
		noCache:    noCache,
		compact:    cfg.Appearance.Compact,
		state:      view.NewState(view.PointerFine),
		needSetup:  !config.Exists(),
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		loadDataCmd(a.dataRef, a.cachePath, a.noCache),
	)
}

func loadDataCmd(ref, cachePath string, noCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		var cache *store.Cache
		if !noCache {
			if c, err := store.Open(cachePath); err == nil {
				cache = c
				defer func() { _ = c.Close() }()
			}
		}

		result, err := pipeline.Load(context.Background(), ref, cache)
		if err != nil {
			return DataErrMsg{Err: err}
		}
		return DataLoadedMsg{Result: result, LoadTime: time.Since(start)}
	}
}

func (a App) fetchDetailsCmd() tea.Cmd {
	ref, cachePath, noCache := a.detailsRef, a.cachePath, a.noCache
	return func() tea.Msg {
		var cache *store.Cache
		if !noCache {
			if c, err := store.Open(cachePath); err == nil {
				cache = c
				defer func() { _ = c.Close() }()
			}
		}

		data, _, err := pipeline.LoadDetails(context.Background(), ref, cache)
		if err != nil {
			return DetailsLoadedMsg{Err: err}
		}
		records, err := details.Decode(data)
		return DetailsLoadedMsg{Records: records, Err: err}
	}
}

// activePolicy picks the split policy for the current pass. Viewport width is
// read here, once per layout pass, never mid-pass.
func (a *App) activePolicy() treemap.SplitPolicy {
	if a.compact || (a.width > 0 && a.width < compactWidth) {
		return treemap.RowPacking
	}
	return treemap.AspectThreshold
}

// recompute rebuilds the treemap blocks and chart rows from the current
// tree, drill level, expand set, and viewport mode.
func (a *App) recompute() {
	if a.tree == nil {
		return
	}
	a.policy = a.activePolicy()
	a.blocks = a.computeBlocks()
	if a.cursor >= len(a.blocks) {
		a.cursor = len(a.blocks) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	a.chartRows = lollipop.BuildRows(a.tree, a.state.Expanded)
	a.chartTicks = lollipop.TickValues(lollipop.MaxValue(a.tree))
	if a.chartCursor >= len(a.chartRows) {
		a.chartCursor = len(a.chartRows) - 1
	}
	if a.chartCursor < 0 {
		a.chartCursor = 0
	}
}

// computeBlocks lays out the current treemap level: all parts at the top, or
// one part's entities (grouped by section color) when drilled in.
func (a *App) computeBlocks() []tmBlock {
	if a.drill == "" {
		var blocks []tmBlock
		for i, pp := range layout.PartRects(a.tree, layout.Unit, a.policy) {
			p := pp.Payload
			blocks = append(blocks, tmBlock{
				rect:     pp.Rect,
				id:       p.ID,
				name:     p.Name,
				label:    p.ID,
				sub:      cli.FormatMoney(p.TotalBudget),
				budget:   p.TotalBudget,
				variance: p.VarianceVsApproved,
				colorIdx: i,
			})
		}
		return blocks
	}

	part := a.tree.Part(a.drill)
	if part == nil {
		return nil
	}
	var blocks []tmBlock
	for si, sp := range layout.SectionRects(part, layout.Unit, a.policy) {
		sec := sp.Payload
		for _, ep := range layout.EntityRects(sec, layout.Unit, a.policy) {
			e := ep.Payload
			label := e.Abbreviation
			if label == "" {
				label = e.Name
			}
			blocks = append(blocks, tmBlock{
				rect:     layout.Compose(sp.Rect, ep.Rect),
				id:       sec.ID + "/" + e.Name,
				name:     e.Name,
				label:    label,
				sub:      cli.FormatMoney(e.TotalBudget),
				budget:   e.TotalBudget,
				variance: e.VarianceVsApproved,
				leaf:     true,
				colorIdx: si,
				entity:   e,
			})
		}
	}
	return blocks
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.recompute()
		if a.detailOpen {
			a.sizeDetailView()
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case DataLoadedMsg:
		a.tree = msg.Result.Tree
		a.malformed = msg.Result.Malformed
		a.fromCache = msg.Result.FromCache
		a.loadTime = msg.LoadTime
		a.loaded = true
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(&a.setupVals, a.dataRef, a.detailsRef)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case DataErrMsg:
		a.loaded = true
		a.loadErr = msg.Err
		return a, nil

	case DetailsLoadedMsg:
		a.detailWait = false
		if msg.Err != nil {
			a.detailErr = msg.Err
			return a, nil
		}
		a.records = msg.Records
		a.detailErr = nil
		a.resolveDetail()
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// First-run setup form intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Detail overlay has its own keybindings
	if a.detailOpen {
		return a.updateDetail(key)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if key == "q" {
		return a, tea.Quit
	}

	// Tab shortcuts
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case 0:
		return a.updateTreemapKeys(key)
	case 1:
		return a.updateChartKeys(key)
	case 3:
		return a.updateSettingsKeys(key)
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active

	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth)
	}

	if !a.loaded {
		return fmt.Sprintf("\n\n  %s Loading budget data from %s...\n", a.spinner.View(), a.dataRef)
	}
	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return fmt.Sprintf("\n\n  %s\n\n  %s\n",
			errStyle.Render("Failed to load budget data"),
			lipgloss.NewStyle().Foreground(t.TextMuted).Render(a.loadErr.Error()))
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.renderHelp()
	}
	if a.detailOpen {
		return a.renderDetail()
	}

	header := components.RenderTabBar(a.activeTab, a.width)

	contentH := a.height - 4 // tab bar, spacing, status bar
	if contentH < 5 {
		contentH = 5
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderTreemapTab(a.width, contentH)
	case 1:
		content = a.renderChartTab(a.width, contentH)
	case 2:
		content = a.renderPartsTab(a.width)
	case 3:
		content = a.renderSettingsTab(a.width)
	}

	status := components.RenderStatusBar(a.width, a.statusTooltip())
	return header + "\n\n" + content + "\n" + status
}

// statusTooltip summarizes the node under the cursor for the status bar.
func (a App) statusTooltip() string {
	if a.state.Tooltip == "" {
		return ""
	}
	for _, b := range a.blocks {
		if b.id == a.state.Tooltip {
			return fmt.Sprintf("%s  %s  %s", b.name, cli.FormatMoney(b.budget), cli.FormatVariance(b.variance))
		}
	}
	return a.state.Tooltip
}

func (a App) renderHelp() string {
	t := theme.Active
	keys := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dim := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := keys.Render("t / c / p / x") + dim.Render("   switch tab") + "\n" +
		keys.Render("j / k") + dim.Render("           next / previous item") + "\n" +
		keys.Render("enter") + dim.Render("           drill in, expand, or open details") + "\n" +
		keys.Render("esc") + dim.Render("             back out") + "\n" +
		keys.Render("m") + dim.Render("               toggle compact (row-packing) layout") + "\n" +
		keys.Render("q") + dim.Render("               quit")

	cardW := a.width - 4
	if cardW > 60 {
		cardW = 60
	}
	return "\n" + components.ContentCard("unbudget — keys", body, cardW)
}
