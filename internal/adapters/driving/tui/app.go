package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// listLimit caps how many items the review list loads.
const listLimit = 100

// similarTopK is the result count for the duplicate-check pane.
const similarTopK = 3

// Messages produced by commands.
type (
	itemsLoadedMsg struct {
		items []domain.Item
		err   error
	}

	reviewedMsg struct {
		item *domain.Item
		err  error
	}

	committedMsg struct {
		receipt *domain.CommitReceipt
		err     error
	}

	similarMsg struct {
		result *domain.SimilarResult
		err    error
	}
)

// App is the review TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	spinner spinner.Model
	loading bool

	items    []domain.Item
	cursor   int
	similar  *domain.SimilarResult
	statusLn string
	errLn    string
}

// NewApp creates the review application.
func NewApp(ctx context.Context, ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ports:   ports,
		ctx:     ctx,
		styles:  DefaultStyles(),
		spinner: sp,
		loading: true,
	}, nil
}

// Run starts the TUI event loop and blocks until the user quits.
func (a *App) Run() error {
	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}

// Init starts the initial item load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadItems())
}

// Update handles messages and key presses.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case itemsLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errLn = msg.err.Error()
			return a, nil
		}
		a.items = msg.items
		if a.cursor >= len(a.items) {
			a.cursor = max(0, len(a.items)-1)
		}
		return a, nil

	case reviewedMsg:
		if msg.err != nil {
			a.errLn = msg.err.Error()
			return a, nil
		}
		a.errLn = ""
		a.statusLn = fmt.Sprintf("Item %d %s", msg.item.ID, msg.item.Status)
		a.applyReview(msg.item)
		return a, nil

	case committedMsg:
		if msg.err != nil {
			a.errLn = msg.err.Error()
			return a, nil
		}
		a.errLn = ""
		a.statusLn = fmt.Sprintf("Committed %d items (batch %s)", msg.receipt.Count, msg.receipt.BatchID)
		a.loading = true
		return a, a.loadItems()

	case similarMsg:
		if msg.err != nil {
			a.errLn = msg.err.Error()
			return a, nil
		}
		a.errLn = ""
		a.similar = msg.result
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
			a.similar = nil
		}
		return a, nil

	case "down", "j":
		if a.cursor < len(a.items)-1 {
			a.cursor++
			a.similar = nil
		}
		return a, nil

	case "a":
		if item := a.selected(); item != nil {
			return a, a.review(item.ID, true)
		}
		return a, nil

	case "r":
		if item := a.selected(); item != nil {
			return a, a.review(item.ID, false)
		}
		return a, nil

	case "s":
		if item := a.selected(); item != nil && a.ports.Similarity != nil {
			return a, a.findSimilar(item.ID)
		}
		return a, nil

	case "c":
		return a, a.commit()
	}

	return a, nil
}

// selected returns the item under the cursor, or nil.
func (a *App) selected() *domain.Item {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return nil
	}
	return &a.items[a.cursor]
}

// applyReview replaces the reviewed item in place so the list reflects
// the new status without a reload.
func (a *App) applyReview(item *domain.Item) {
	for i := range a.items {
		if a.items[i].ID == item.ID {
			a.items[i] = *item
			return
		}
	}
}

// ==================== Commands ====================

func (a *App) loadItems() tea.Cmd {
	return func() tea.Msg {
		items, err := a.ports.Item.List(a.ctx, listLimit)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (a *App) review(id int64, approve bool) tea.Cmd {
	return func() tea.Msg {
		var (
			item *domain.Item
			err  error
		)
		if approve {
			item, err = a.ports.Review.Approve(a.ctx, id)
		} else {
			item, err = a.ports.Review.Reject(a.ctx, id)
		}
		return reviewedMsg{item: item, err: err}
	}
}

func (a *App) commit() tea.Cmd {
	return func() tea.Msg {
		receipt, err := a.ports.Review.Commit(a.ctx)
		return committedMsg{receipt: receipt, err: err}
	}
}

func (a *App) findSimilar(id int64) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Similarity.FindSimilar(a.ctx, id, similarTopK)
		return similarMsg{result: result, err: err}
	}
}

// ==================== View ====================

// View renders the review screen.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("itemforge review"))
	b.WriteString("\n\n")

	switch {
	case a.loading:
		b.WriteString(a.spinner.View())
		b.WriteString(" loading items...\n")

	case len(a.items) == 0:
		b.WriteString(a.styles.Muted.Render("No items in the bank."))
		b.WriteString("\n")

	default:
		for i := range a.items {
			b.WriteString(a.renderRow(i))
			b.WriteString("\n")
		}
	}

	if a.similar != nil {
		b.WriteString("\n")
		b.WriteString(a.renderSimilar())
		b.WriteString("\n")
	}

	if a.statusLn != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Render(a.statusLn))
		b.WriteString("\n")
	}
	if a.errLn != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.errLn))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(
		"↑/↓ navigate · a approve · r reject · s similar · c commit cart · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (a *App) renderRow(i int) string {
	item := &a.items[i]

	marker := " "
	switch item.Status {
	case domain.StatusApproved:
		marker = a.styles.Approved.Render("✓")
	case domain.StatusRejected:
		marker = a.styles.Rejected.Render("✗")
	}

	stem := item.Stem
	if len(stem) > 60 {
		stem = stem[:57] + "..."
	}
	line := fmt.Sprintf("%s #%d %s", marker, item.ID, stem)

	if i == a.cursor {
		return a.styles.Selected.Render("> " + line)
	}
	return a.styles.Normal.Render("  " + line)
}

func (a *App) renderSimilar() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Similar to #%d\n", a.similar.QueryID))

	if len(a.similar.Results) == 0 {
		b.WriteString(a.styles.Muted.Render("no candidates"))
	}
	for _, hit := range a.similar.Results {
		b.WriteString(fmt.Sprintf("#%-5d %.3f\n", hit.ID, hit.Score))
	}

	return a.styles.Pane.Render(strings.TrimRight(b.String(), "\n"))
}
