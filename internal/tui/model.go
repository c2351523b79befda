package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"choreboard/internal/engine"
	"choreboard/internal/storage"
	"choreboard/internal/ui"
)

type boardTab int

const (
	tabChores boardTab = iota
	tabRewards
	tabHistory
)

var tabNames = []string{"Chores", "Rewards", "History"}

type inputMode int

const (
	modeBrowse inputMode = iota
	modePIN
	modeEditTotal
)

type boardModel struct {
	ctx     context.Context
	session *engine.Session

	width  int
	height int

	tab      boardTab
	selected int

	chores  []storage.Chore
	rewards []storage.Reward
	records []storage.DailyRecord
	best    []storage.DailyRecord
	grand   int
	today   int
	saved   int

	mode        inputMode
	input       string
	inputErr    string
	editChoreID int64

	lastLog string
}

type refreshedMsg struct{}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type purchasedMsg struct {
	name string
	res  *engine.PurchaseResult
	err  error
}

type archivedMsg struct {
	res *engine.ArchiveResult
	err error
}

type editedMsg struct {
	name  string
	total int
	err   error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, session *engine.Session) boardModel {
	m := boardModel{
		ctx:     ctx,
		session: session,
		lastLog: "Loaded.",
	}
	m.refresh()
	return m
}

// refresh re-reads the session's in-memory views; no store access happens
// here.
func (m *boardModel) refresh() {
	m.chores = m.session.Chores()
	m.rewards = m.session.Rewards()
	m.records = m.session.Records()
	m.best = m.session.RankBestDays(5)
	m.grand = m.session.GrandTotal()
	m.today = m.session.TodayTotal()
	m.saved = m.session.TotalSaved()
	if m.selected >= m.rowCount() {
		m.selected = m.rowCount() - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) rowCount() int {
	switch m.tab {
	case tabChores:
		return len(m.chores)
	case tabRewards:
		return len(m.rewards)
	default:
		return len(m.records)
	}
}

func (m boardModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(engine.FlushInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.CompleteChore(m.ctx, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) purchaseCmd(id int64, name string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.PurchaseReward(m.ctx, id)
		return purchasedMsg{name: name, res: res, err: err}
	}
}

func (m boardModel) archiveCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.ArchiveToday(m.ctx)
		return archivedMsg{res: res, err: err}
	}
}

func (m boardModel) editTotalCmd(id int64, name string, total int) tea.Cmd {
	return func() tea.Msg {
		err := m.session.EditChoreTotals(m.ctx, map[int64]int{id: total})
		return editedMsg{name: name, total: total, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tea.Batch(tickCmd(), func() tea.Msg {
			res, err := m.session.Rollover(m.ctx)
			if err != nil || res == nil {
				return refreshedMsg{}
			}
			return archivedMsg{res: res, err: nil}
		})
	case refreshedMsg:
		m.refresh()
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Chore not found."
		} else {
			m.lastLog = fmt.Sprintf("+%d %s (today %d, total %d)", msg.res.Awarded, ui.IconDiamond, msg.res.TodayPoints, msg.res.GrandTotal)
		}
		m.refresh()
		return m, nil
	case purchasedMsg:
		if msg.err != nil {
			m.lastLog = "Purchase failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Not enough diamonds for that."
		} else {
			m.lastLog = fmt.Sprintf("Bought %s for %d %s — %d left", msg.name, msg.res.Cost, ui.IconDiamond, msg.res.GrandTotal)
		}
		m.refresh()
		return m, nil
	case archivedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res != nil {
			m.lastLog = fmt.Sprintf("Saved %d %s to %s (day total %d)", msg.res.Archived, ui.IconDiamond, msg.res.Day, msg.res.DayTotal)
		}
		m.refresh()
		return m, nil
	case editedMsg:
		if msg.err != nil {
			m.lastLog = "Edit failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Set %s to %d %s", msg.name, msg.total, ui.IconDiamond)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modePIN:
			return m.updatePIN(msg)
		case modeEditTotal:
			return m.updateEditTotal(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % 3
		m.selected = 0
		return m, nil
	case "shift+tab", "left", "h":
		m.tab = (m.tab + 2) % 3
		m.selected = 0
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < m.rowCount()-1 {
			m.selected++
		}
		return m, nil
	case "r":
		m.refresh()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case "s":
		if m.today == 0 {
			m.lastLog = "Nothing earned today yet."
			return m, nil
		}
		return m, m.archiveCmd()
	case "c", " ", "enter":
		switch m.tab {
		case tabChores:
			if m.selected < 0 || m.selected >= len(m.chores) {
				return m, nil
			}
			c := m.chores[m.selected]
			m.lastLog = fmt.Sprintf("Completing %s…", c.Name)
			return m, m.completeCmd(c.ID)
		case tabRewards:
			if m.selected < 0 || m.selected >= len(m.rewards) {
				return m, nil
			}
			r := m.rewards[m.selected]
			if r.Cost > m.grand {
				m.lastLog = fmt.Sprintf("%s costs %d — only %d saved up.", r.Name, r.Cost, m.grand)
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Buying %s…", r.Name)
			return m, m.purchaseCmd(r.ID, r.Name)
		}
		return m, nil
	case "e":
		if m.tab != tabChores {
			return m, nil
		}
		if m.selected < 0 || m.selected >= len(m.chores) {
			return m, nil
		}
		m.editChoreID = m.chores[m.selected].ID
		m.mode = modePIN
		m.input = ""
		m.inputErr = ""
		return m, nil
	}
	return m, nil
}

func (m boardModel) updatePIN(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeBrowse
		m.input = ""
		m.inputErr = ""
		return m, nil
	case "enter":
		if err := m.session.Gate().Verify(m.input); err != nil {
			// Wrong PIN: stay in the prompt, nothing was touched.
			m.input = ""
			m.inputErr = err.Error()
			return m, nil
		}
		m.mode = modeEditTotal
		m.input = ""
		m.inputErr = ""
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}
	if s := msg.String(); len(s) == 1 && s >= "0" && s <= "9" {
		m.input += s
	}
	return m, nil
}

func (m boardModel) updateEditTotal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeBrowse
		m.input = ""
		m.inputErr = ""
		return m, nil
	case "enter":
		total, err := strconv.Atoi(m.input)
		if err != nil || total < 0 {
			total = 0
		}
		c := findChore(m.chores, m.editChoreID)
		name := "chore"
		if c != nil {
			name = c.Name
		}
		m.mode = modeBrowse
		m.input = ""
		return m, m.editTotalCmd(m.editChoreID, name, total)
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}
	if s := msg.String(); len(s) == 1 && s >= "0" && s <= "9" {
		m.input += s
	}
	return m, nil
}

func (m boardModel) View() string {
	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()
	return header + "\n\n" + body + "\n" + footer
}

func (m boardModel) renderHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if boardTab(i) == m.tab {
			tabs[i] = ui.ActiveTab.Render(name)
		} else {
			tabs[i] = ui.InactiveTab.Render(name)
		}
	}
	totals := fmt.Sprintf("%s  %s  %s",
		ui.LabelValue("Total", ui.Points(m.grand)),
		ui.LabelValue("Today", ui.Points(m.today)),
		ui.LabelValue("Saved", ui.Points(m.saved)),
	)
	return ui.Heading(ui.IconSparkle, "Choreboard") + "  " + strings.Join(tabs, " ") + "\n" + totals
}

func (m boardModel) renderBody() string {
	switch m.mode {
	case modePIN:
		return m.renderPrompt("Enter PIN to edit points", strings.Repeat("•", len(m.input)))
	case modeEditTotal:
		c := findChore(m.chores, m.editChoreID)
		title := "New total"
		if c != nil {
			title = fmt.Sprintf("New total for %s %s (was %d)", c.Icon, c.Name, c.TotalPoints)
		}
		return m.renderPrompt(title, m.input)
	}

	switch m.tab {
	case tabChores:
		return m.renderChores()
	case tabRewards:
		return m.renderRewards()
	default:
		return m.renderHistory()
	}
}

func (m boardModel) renderPrompt(title, value string) string {
	lines := []string{ui.H2.Render(ui.IconLock + " " + title), "> " + value + "_"}
	if m.inputErr != "" {
		lines = append(lines, ui.Bad.Render(m.inputErr))
	}
	lines = append(lines, ui.Muted.Render("enter: confirm · esc: cancel"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderChores() string {
	if len(m.chores) == 0 {
		return ui.Muted.Render("(no chores)")
	}
	var out []string
	for i, c := range m.chores {
		line := fmt.Sprintf("%s %s %s — %d/day · today %d · total %d",
			cursor(i == m.selected), c.Icon, c.Name, c.DailyPoints, c.TodayPoints, c.TotalPoints)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderRewards() string {
	if len(m.rewards) == 0 {
		return ui.Muted.Render("(no rewards)")
	}
	var out []string
	for i, r := range m.rewards {
		line := fmt.Sprintf("%s %s %s — %d %s · bought %d · %s",
			cursor(i == m.selected), r.Icon, r.Name, r.Cost, ui.IconDiamond, r.Purchased, ui.Affordable(r.Cost, m.grand))
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderHistory() string {
	var out []string
	out = append(out, ui.H2.Render(ui.IconTrophy+" Best Days"))
	if len(m.best) == 0 {
		out = append(out, ui.Muted.Render("(no days saved yet)"))
	}
	for i, rec := range m.best {
		out = append(out, fmt.Sprintf("  %s %s — %s", ui.Medal(i), rec.Date, ui.Points(rec.TotalPoints)))
	}
	out = append(out, "")
	out = append(out, ui.H2.Render(ui.IconChart+" Recent Days"))
	if len(m.records) == 0 {
		out = append(out, ui.Muted.Render("(empty)"))
	}
	for i, rec := range m.records {
		if i >= 10 {
			break
		}
		line := fmt.Sprintf("%s %s — %s", cursor(i == m.selected), rec.Date, ui.Points(rec.TotalPoints))
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	keys := "tab: switch · j/k: move · c/space: complete/buy · s: save day · e: edit (PIN) · q: quit"
	return ui.Muted.Render(keys) + "\n" + m.lastLog
}

func cursor(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func findChore(chores []storage.Chore, id int64) *storage.Chore {
	for i := range chores {
		if chores[i].ID == id {
			return &chores[i]
		}
	}
	return nil
}
