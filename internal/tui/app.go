// Package tui provides the interactive Bubble Tea dashboard for fintrack.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/report"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// LedgerLoadedMsg is sent when the ledger file has been read.
type LedgerLoadedMsg struct {
	Store    *ledger.Store
	Err      error
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	store    *ledger.Store
	loaded   bool
	loadTime time.Duration
	loadErr  error

	// Pre-computed for the current window
	cashFlow  model.CashFlow
	txCount   int
	spending  []model.CategoryTotal
	budgets   []model.BudgetStatus
	insights  model.Insights
	recent    []model.Transaction
	daily     []model.DailyTotal
	reportErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // transactions tab selection

	days int

	spinner spinner.Model
	path    string
	log     logrus.FieldLogger
	now     func() time.Time
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5

	windowStep = 7
	maxDays    = 3650
)

// NewApp creates a dashboard over the ledger at path with a days-long window.
func NewApp(path string, days int, log logrus.FieldLogger) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if days < 1 {
		days = report.DefaultDays
	}

	return App{
		path:    path,
		days:    days,
		log:     log,
		now:     time.Now,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadLedgerCmd(a.path, a.log),
		a.spinner.Tick,
	)
}

// loadLedgerCmd reads the ledger off the UI goroutine.
func loadLedgerCmd(path string, log logrus.FieldLogger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		s, err := ledger.Load(path, log)
		return LedgerLoadedMsg{Store: s, Err: err, LoadTime: time.Since(start)}
	}
}

// recompute refreshes every view for the current window.
func (a *App) recompute() {
	if a.store == nil {
		return
	}
	eng := report.New(a.store, report.WithClock(a.now))
	a.reportErr = a.fill(eng)

	if a.cursor >= len(a.recent) {
		a.cursor = len(a.recent) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) fill(eng *report.Engine) error {
	txs, err := eng.TransactionsInPeriod(a.days)
	if err != nil {
		return err
	}
	a.txCount = len(txs)
	if a.cashFlow, err = eng.IncomeVsExpenses(a.days); err != nil {
		return err
	}
	if a.spending, err = eng.SpendingByCategory(a.days); err != nil {
		return err
	}
	if a.budgets, err = eng.BudgetStatusList(); err != nil {
		return err
	}
	if a.insights, err = eng.FinancialInsights(a.days); err != nil {
		return err
	}
	if a.recent, err = eng.Recent(a.days); err != nil {
		return err
	}
	a.daily, err = eng.DailyTotals(a.days)
	return err
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
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
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case LedgerLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.store = msg.Store
			a.recompute()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
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
		a.loaded = false
		return a, tea.Batch(loadLedgerCmd(a.path, a.log), a.spinner.Tick)
	case "+", "=":
		a.days = min(a.days+windowStep, maxDays)
		a.recompute()
	case "-", "_":
		a.days = max(a.days-windowStep, 1)
		a.recompute()
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "j", "down":
		if a.activeTab == tabTransactions {
			a.moveCursor(1)
		}
	case "k", "up":
		if a.activeTab == tabTransactions {
			a.moveCursor(-1)
		}
	case "g":
		a.cursor = 0
	case "G":
		a.cursor = max(len(a.recent)-1, 0)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	a.cursor = min(max(a.cursor+delta, 0), max(len(a.recent)-1, 0))
}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabSpending
	tabBudgets
	tabTransactions
	tabInsights
)

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
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
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fintrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	h := max(a.height, 5)
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
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ fintrack") + mutedStyle.Render(" · Personal Finance") + "\n\n" +
		a.spinner.View() + mutedStyle.Render(" Reading "+filepath.Base(a.path))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
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

	bindings := []struct{ key, desc string }{
		{"o s b t i", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move in transactions"},
		{"+ -", fmt.Sprintf("Widen / narrow window by %d days", windowStep)},
		{"r", "Reload ledger file"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Budgets always cover the last 30 days."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	filter := pillStyle.Render(" window ") + accentStyle.Render(fmt.Sprintf("%dd", a.days)) +
		pillStyle.Render(" │ "+filepath.Base(a.path)+" ")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filter)

	statusBar := components.RenderStatusBar(w, a.statusInfo(), a.statusWarning())

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderError("Could not read ledger", a.loadErr, cw)
	case a.reportErr != nil:
		content = a.renderError("Could not compute reports", a.reportErr, cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabSpending:
			content = a.renderSpendingTab(cw)
		case tabBudgets:
			content = a.renderBudgetsTab(cw)
		case tabTransactions:
			content = a.renderTransactionsTab(cw, contentH)
		case tabInsights:
			content = a.renderInsightsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusInfo() string {
	if a.store == nil {
		return ""
	}
	return fmt.Sprintf("%d transactions · loaded in %s", a.store.Len(), a.loadTime.Round(time.Millisecond))
}

func (a App) statusWarning() string {
	if a.store != nil && a.store.LoadWarning() != nil {
		return "ledger was unreadable, started fresh"
	}
	return ""
}

func (a App) renderError(title string, err error, cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	return components.ContentCard(title, errStyle.Render(err.Error()), cw)
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds X-axis labels for days sorted newest first,
// returned oldest first.
func chartDateLabels(days []model.DailyTotal) []string {
	n := len(days)
	labels := make([]string, n)
	for i, d := range days {
		labels[n-1-i] = d.Date.Format("Jan 2")
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
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
