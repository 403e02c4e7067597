// Package tui provides the interactive Bubble Tea dashboard for finmate.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/store"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Engine is what the dashboard needs from the accounting engine.
type Engine interface {
	Snapshot(ctx context.Context) (engine.Snapshot, error)
	Onboard(ctx context.Context, role model.Role, income decimal.Decimal, fixed []model.FixedExpense) (model.Profile, error)
}

// SnapshotMsg is sent when a snapshot load finishes.
type SnapshotMsg struct {
	Snap     engine.Snapshot
	Err      error
	LoadTime time.Duration
}

// OnboardedMsg is sent after the first-run form has been saved.
type OnboardedMsg struct {
	Err error
}

type tickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	eng      Engine
	currency config.Currency

	// Data
	snap     engine.Snapshot
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Refresh state
	refreshInterval time.Duration
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	txCursor  int

	// First-run onboarding (huh form). setupVals is shared with the form,
	// so it must survive the model being copied.
	setupForm *huh.Form
	setupVals *OnboardValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160

	minContentHeight = 5
	defaultRefresh   = 30 * time.Second
	snapshotTimeout  = 10 * time.Second
)

// NewApp creates the dashboard model. A non-positive refresh interval
// falls back to 30 seconds.
func NewApp(eng Engine, currency config.Currency, refresh time.Duration) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if refresh <= 0 {
		refresh = defaultRefresh
	}

	return App{
		eng:             eng,
		currency:        currency,
		refreshInterval: refresh,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadSnapshotCmd(a.eng),
		a.spinner.Tick,
		tickCmd(a.refreshInterval),
	)
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
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.needSetup {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabTransactions {
				a.moveCursor(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabTransactions {
				a.moveCursor(1)
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case SnapshotMsg:
		a.refreshing = false
		a.loaded = true
		a.loadTime = msg.LoadTime
		if errors.Is(msg.Err, store.ErrNoProfile) {
			return a.startSetup()
		}
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.snap = msg.Snap
			a.clampCursor()
		}
		return a, nil

	case OnboardedMsg:
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.refreshing = true
		return a, loadSnapshotCmd(a.eng)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(a.refreshInterval)}
		if a.loaded && !a.refreshing && !a.needSetup {
			a.refreshing = true
			cmds = append(cmds, loadSnapshotCmd(a.eng))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// The onboarding form intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, loadSnapshotCmd(a.eng)
		}
		return a, nil
	case "tab", "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab", "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	}

	if a.activeTab == tabTransactions {
		switch key {
		case "j", "down":
			a.moveCursor(1)
			return a, nil
		case "k", "up":
			a.moveCursor(-1)
			return a, nil
		case "g":
			a.txCursor = 0
			return a, nil
		case "G":
			a.txCursor = len(a.snap.Transactions) - 1
			a.clampCursor()
			return a, nil
		}
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) startSetup() (tea.Model, tea.Cmd) {
	a.needSetup = true
	a.setupVals = &OnboardValues{}
	a.setupForm = NewOnboardForm(a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.needSetup = false
		a.setupForm = nil
		return a, onboardCmd(a.eng, *a.setupVals)
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) moveCursor(delta int) {
	a.txCursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.txCursor >= len(a.snap.Transactions) {
		a.txCursor = len(a.snap.Transactions) - 1
	}
	if a.txCursor < 0 {
		a.txCursor = 0
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, a.currency)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finmate needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finmate"))
	b.WriteString(subtitleStyle.Render(" · behavioral budgeting"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading your ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	bindings := []struct{ key, desc string }{
		{"o t b g", "Jump to tab"},
		{"1-4", "Jump to tab"},
		{"tab ← →", "Previous / Next tab"},
		{"j k", "Move through transactions"},
		{"g G", "First / last transaction"},
		{"r", "Refresh now"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	asOf := ""
	if !a.snap.Now.IsZero() {
		asOf = cli.FormatDay(a.snap.Now)
	}
	statusBar := components.RenderStatusBar(w, asOf, a.refreshing)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderError(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case a.activeTab == tabBadges:
		content = a.renderBadgesTab(cw)
	case a.activeTab == tabGoals:
		content = a.renderGoalsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hint := ""
	if engine.IsMalformed(a.loadErr) {
		hint = "\n\nFix the date with `finmate edit`, or set engine.skip_malformed = true."
	}
	return components.ContentCard("Could not load", errStyle.Render(a.loadErr.Error())+hint, cw)
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func loadSnapshotCmd(eng Engine) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		snap, err := eng.Snapshot(ctx)
		return SnapshotMsg{Snap: snap, Err: err, LoadTime: time.Since(start)}
	}
}

func onboardCmd(eng Engine, vals OnboardValues) tea.Cmd {
	return func() tea.Msg {
		role, income, fixed, err := vals.Parse()
		if err != nil {
			return OnboardedMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		_, err = eng.Onboard(ctx, role, income, fixed)
		return OnboardedMsg{Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds X-axis labels oldest first: the month name on the
// first day and on month boundaries, the day number elsewhere.
func chartDateLabels(days []time.Time) []string {
	labels := make([]string, len(days))
	prevMonth := time.Month(0)
	for i, d := range days {
		switch {
		case i == 0 || d.Month() != prevMonth:
			labels[i] = d.Format("Jan")
		default:
			labels[i] = fmt.Sprintf("%d", d.Day())
		}
		prevMonth = d.Month()
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
