package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/export"
	vio "github.com/matzehuels/vamsha/pkg/io"
	"github.com/matzehuels/vamsha/pkg/pipeline"
	"github.com/matzehuels/vamsha/pkg/scene"
	"github.com/matzehuels/vamsha/pkg/session"
	"github.com/matzehuels/vamsha/pkg/textgen"
)

type editorPane int

const (
	paneOutline editorPane = iota
	paneMap
)

type editorMode int

const (
	modeBrowse editorMode = iota
	modeEdit
	modeConfirmDelete
	modeStory
)

// Editor geometry in terminal cells.
const (
	outlineMaxWidth = 34
	detailHeight    = int(fieldCount) + 1
	panStep         = 4 * cellWidth
	zoomStep        = 1.25
	wheelDelta      = 100.0
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	separatorStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle      = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed)
)

type translatedMsg struct {
	ticket session.Ticket
	pair   textgen.Pair
}

type storyMsg struct {
	ticket session.StoryTicket
	text   string
}

type exportedMsg struct {
	res export.Result
	err error
}

// editorModel is the interactive editor. Pointer receivers let the
// interaction callbacks reach the model.
type editorModel struct {
	ctx      context.Context
	sess     *session.Session
	text     *textgen.Client
	exporter *export.Exporter
	path     string
	logger   *log.Logger

	view     pipeline.View
	viewport *scene.Viewport
	inter    *scene.Interaction
	rows     []outlineRow
	cursor   int

	pane    editorPane
	mode    editorMode
	form    memberForm
	spinner spinner.Model
	pending map[string]string // in-flight request key -> description

	status    string
	statusErr bool
	width     int
	height    int
	sized     bool
}

func newEditorModel(ctx context.Context, sess *session.Session, text *textgen.Client, exp *export.Exporter, path string, logger *log.Logger) *editorModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorRed)

	w, _ := sess.Dimensions()
	m := &editorModel{
		ctx:      ctx,
		sess:     sess,
		text:     text,
		exporter: exp,
		path:     path,
		logger:   logger,
		viewport: scene.NewViewport(w),
		spinner:  sp,
		pending:  make(map[string]string),
	}
	m.inter = &scene.Interaction{
		Viewport: m.viewport,
		OnSelect: func(ev scene.SelectEvent) { m.selectMember(ev.ID) },
	}
	m.refresh()
	if !text.Available() {
		m.setStatus("No API key configured: translation and stories are unavailable", false)
	}
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

// refresh re-derives the view and the outline from the session.
func (m *editorModel) refresh() {
	m.view = m.sess.View(m.ctx)
	m.inter.Scene = m.view.Scene
	m.rows = outlineRows(m.view)
	if i := rowIndex(m.rows, m.sess.Selected()); i >= 0 {
		m.cursor = i
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	if m.mode == modeEdit {
		if _, ok := m.sess.Member(m.form.id); !ok {
			m.mode = modeBrowse
		}
	}
}

func (m *editorModel) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *editorModel) fail(err error) {
	m.setStatus(errors.UserMessage(err), true)
}

func (m *editorModel) selectMember(id string) {
	if err := m.sess.Select(id); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
}

// =============================================================================
// Geometry
// =============================================================================

func (m *editorModel) outlineWidth() int {
	return min(outlineMaxWidth, max(m.width/3, 12))
}

func (m *editorModel) mapOrigin() (int, int) {
	return m.outlineWidth() + 1, 1
}

func (m *editorModel) mapSize() (int, int) {
	w := m.width - m.outlineWidth() - 1
	h := m.bodyHeight() - detailHeight
	return max(w, 1), max(h, 1)
}

// bodyHeight is the height between the header and the two footer lines.
func (m *editorModel) bodyHeight() int {
	return max(m.height-3, 1)
}

func (m *editorModel) resize(width, height int) {
	m.width, m.height = width, height
	mw, mh := m.mapSize()
	sw, sh := float64(mw)*cellWidth, float64(mh)*cellHeight
	if err := m.sess.SetDimensions(sw, sh); err != nil {
		m.fail(err)
		return
	}
	m.viewport.Resize(sw)
	if !m.sized {
		m.viewport.Reset()
		m.sized = true
	}
	m.refresh()
}

// mapPoint converts a terminal position to a surface point, reporting
// whether it lies on the map.
func (m *editorModel) mapPoint(x, y int) (float64, float64, bool) {
	ox, oy := m.mapOrigin()
	mw, mh := m.mapSize()
	col, row := x-ox, y-oy
	if col < 0 || row < 0 || col >= mw || row >= mh {
		return 0, 0, false
	}
	px, py := surfacePoint(col, row)
	return px, py, true
}

// =============================================================================
// Update
// =============================================================================

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case translatedMsg:
		return m, m.applyTranslation(msg)

	case storyMsg:
		delete(m.pending, "story")
		if m.sess.ApplyStory(msg.ticket, msg.text) {
			m.mode = modeStory
			m.setStatus("Family story updated", false)
		} else {
			m.setStatus("Family changed while the story was written; discarded", true)
		}
		return m, nil

	case exportedMsg:
		delete(m.pending, "export")
		switch {
		case msg.err != nil:
			m.fail(msg.err)
		case !msg.res.Written:
			m.setStatus("Nothing to export", true)
		default:
			m.setStatus("Exported "+msg.res.Path, false)
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m, m.updateEdit(msg)
		case modeConfirmDelete:
			m.updateConfirm(msg)
			return m, nil
		}
		return m, m.updateBrowse(msg)
	}

	return m, nil
}

func (m *editorModel) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "tab":
		if m.pane == paneOutline {
			m.pane = paneMap
		} else {
			m.pane = paneOutline
		}
		return nil
	case "esc":
		if m.mode == modeStory {
			m.mode = modeBrowse
			return nil
		}
		m.selectMember("")
		return nil
	}

	if m.pane == paneMap {
		if m.updateMapKeys(key) {
			return nil
		}
	} else {
		switch key {
		case "up", "k":
			m.moveCursor(-1)
			return nil
		case "down", "j":
			m.moveCursor(1)
			return nil
		}
	}

	switch key {
	case "enter", "e":
		return m.startEdit()
	case "a":
		m.addChild()
	case "d", "delete":
		m.confirmDelete()
	case "t":
		return m.translate()
	case "s":
		return m.story()
	case "S":
		if m.mode == modeStory {
			m.mode = modeBrowse
		} else {
			m.mode = modeStory
		}
	case "L":
		lang := m.sess.Language().Next()
		if err := m.sess.SetLanguage(lang); err != nil {
			m.fail(err)
		} else {
			m.setStatus("Language: "+string(lang), false)
		}
	case "x":
		return m.export(export.FormatJPEG)
	case "p":
		return m.export(export.FormatPDF)
	case "w", "ctrl+s":
		m.save()
	}
	return nil
}

// updateMapKeys pans and zooms. It reports whether the key was used.
func (m *editorModel) updateMapKeys(key string) bool {
	mw, mh := m.mapSize()
	cx, cy := float64(mw)*cellWidth/2, float64(mh)*cellHeight/2
	switch key {
	case "up", "k":
		m.viewport.Pan(0, panStep)
	case "down", "j":
		m.viewport.Pan(0, -panStep)
	case "left", "h":
		m.viewport.Pan(panStep, 0)
	case "right", "l":
		m.viewport.Pan(-panStep, 0)
	case "+", "=":
		m.viewport.ZoomAt(cx, cy, zoomStep)
	case "-", "_":
		m.viewport.ZoomAt(cx, cy, 1/zoomStep)
	case "0":
		m.viewport.Reset()
	default:
		return false
	}
	return true
}

func (m *editorModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.selectMember(m.rows[m.cursor].ID)
}

func (m *editorModel) handleMouse(msg tea.MouseMsg) {
	px, py, onMap := m.mapPoint(msg.X, msg.Y)

	if m.inter.Dragging() {
		switch msg.Action {
		case tea.MouseActionRelease:
			m.inter.PointerUp()
		case tea.MouseActionMotion:
			if onMap {
				m.inter.PointerMove(px, py)
			}
		}
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if onMap {
			m.inter.Wheel(px, py, -wheelDelta)
		}
	case tea.MouseButtonWheelDown:
		if onMap {
			m.inter.Wheel(px, py, wheelDelta)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.mode != modeBrowse && m.mode != modeStory {
			return
		}
		if onMap {
			m.pane = paneMap
			m.inter.PointerDown(px, py)
			return
		}
		// Outline rows start below the header.
		if msg.X < m.outlineWidth() && msg.Y >= 1 && msg.Y <= m.bodyHeight() {
			m.pane = paneOutline
			row := msg.Y - 1 + m.outlineOffset()
			if row < len(m.rows) {
				m.cursor = row
				m.selectMember(m.rows[row].ID)
			}
		}
	}
}

func (m *editorModel) outlineOffset() int {
	if m.cursor >= m.bodyHeight() {
		return m.cursor - m.bodyHeight() + 1
	}
	return 0
}

// =============================================================================
// Actions
// =============================================================================

func (m *editorModel) selectedID() string {
	return m.sess.Selected()
}

func (m *editorModel) startEdit() tea.Cmd {
	mem, ok := m.sess.Member(m.selectedID())
	if !ok {
		m.setStatus("Select a member first", true)
		return nil
	}
	m.form = newMemberForm(mem)
	m.mode = modeEdit
	return m.form.focusField(fieldName)
}

func (m *editorModel) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.setStatus("Edit cancelled", false)
		return nil
	case "enter":
		mem, err := m.form.member()
		if err != nil {
			m.fail(err)
			return nil
		}
		if err := m.sess.UpdateMember(mem); err != nil {
			m.fail(err)
			return nil
		}
		m.mode = modeBrowse
		m.setStatus("Saved "+mem.Name, false)
		m.refresh()
		return nil
	case "tab", "down":
		return m.form.focusField(m.form.focus + 1)
	case "shift+tab", "up":
		return m.form.focusField(m.form.focus - 1)
	case "ctrl+r":
		m.form.cycle()
		return nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return cmd
}

func (m *editorModel) addChild() {
	parent := m.selectedID()
	if parent == "" {
		root, ok := m.sess.Members().Root()
		if !ok {
			m.setStatus("The tree has no root to add to", true)
			return
		}
		parent = root.ID
	}
	if _, err := m.sess.AddChild(parent); err != nil {
		m.fail(err)
		return
	}
	m.setStatus("Added a new member", false)
	m.refresh()
}

func (m *editorModel) confirmDelete() {
	mem, ok := m.sess.Member(m.selectedID())
	if !ok {
		m.setStatus("Select a member first", true)
		return
	}
	if mem.IsRoot() {
		m.setStatus("The root member cannot be deleted", true)
		return
	}
	m.mode = modeConfirmDelete
	n := len(m.sess.Members().Descendants(mem.ID))
	m.setStatus(fmt.Sprintf("Delete %s and %d descendants? (y/n)", mem.Name, n), true)
}

func (m *editorModel) updateConfirm(msg tea.KeyMsg) {
	m.mode = modeBrowse
	if msg.String() != "y" {
		m.setStatus("Delete cancelled", false)
		return
	}
	id := m.selectedID()
	if err := m.sess.DeleteSubtree(id); err != nil {
		m.fail(err)
		return
	}
	m.setStatus("Deleted", false)
	m.refresh()
}

// startPending registers an in-flight request and returns the spinner tick
// when it is the first one.
func (m *editorModel) startPending(key, desc string) tea.Cmd {
	first := len(m.pending) == 0
	m.pending[key] = desc
	if first {
		return m.spinner.Tick
	}
	return nil
}

func (m *editorModel) translate() tea.Cmd {
	t, err := m.sess.BeginTranslation(m.selectedID())
	if err != nil {
		m.setStatus("Select a member to translate", true)
		return nil
	}
	key := "translate:" + t.ID
	if _, busy := m.pending[key]; busy {
		return nil
	}
	ctx, text := m.ctx, m.text
	request := func() tea.Msg {
		return translatedMsg{ticket: t, pair: text.TranslatePair(ctx, t.Name, t.Spouse, t.Language)}
	}
	return tea.Batch(m.startPending(key, "Translating "+t.Name), request)
}

func (m *editorModel) applyTranslation(msg translatedMsg) tea.Cmd {
	delete(m.pending, "translate:"+msg.ticket.ID)
	applied, err := m.sess.ApplyTranslation(msg.ticket, msg.pair)
	switch {
	case err != nil:
		m.fail(err)
	case !applied:
		m.setStatus("Member changed during translation; result discarded", true)
	default:
		m.setStatus("Translated "+msg.ticket.Name, false)
		if mem, ok := m.sess.Member(msg.ticket.ID); ok && m.mode == modeEdit && m.form.id == mem.ID {
			m.form.setRegional(mem)
		}
	}
	m.refresh()
	return nil
}

func (m *editorModel) story() tea.Cmd {
	if _, busy := m.pending["story"]; busy {
		return nil
	}
	t := m.sess.BeginStory()
	ctx, text := m.ctx, m.text
	request := func() tea.Msg {
		return storyMsg{ticket: t, text: text.Narrate(ctx, t.Members, t.Language)}
	}
	return tea.Batch(m.startPending("story", "Writing the family story"), request)
}

func (m *editorModel) export(format export.Format) tea.Cmd {
	if _, busy := m.pending["export"]; busy {
		return nil
	}
	// Scenes are never mutated after derivation.
	s, ctx, exp := m.view.Scene, m.ctx, m.exporter
	request := func() tea.Msg {
		res, err := exp.Export(ctx, s, format)
		return exportedMsg{res: res, err: err}
	}
	return tea.Batch(m.startPending("export", "Exporting "+strings.ToUpper(string(format))), request)
}

func (m *editorModel) save() {
	if m.path == "" {
		m.setStatus("No file to write; start the editor with a file name", true)
		return
	}
	if err := vio.ExportFile(m.path, m.sess.Members()); err != nil {
		m.fail(err)
		return
	}
	m.sess.MarkSaved()
	m.setStatus("Wrote "+m.path, false)
}

// =============================================================================
// View
// =============================================================================

func (m *editorModel) View() string {
	if m.width == 0 {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteByte('\n')

	body := m.bodyHeight()
	outline := renderOutline(m.rows, m.cursor, m.sess.Selected(), m.outlineWidth(), body)
	sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", body), "\n"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, outline, sep, m.rightView()))
	b.WriteByte('\n')
	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(runewidth.Truncate(m.helpText(), m.width, "…")))
	return b.String()
}

func (m *editorModel) headerView() string {
	name := "untitled"
	if m.path != "" {
		name = filepath.Base(m.path)
	}
	if m.sess.Modified() {
		name += " *"
	}
	t := m.viewport.Transform
	line := fmt.Sprintf("%s  %s · %s · %d members · zoom %.0f%%",
		headerStyle.Render("Vamsha Vriksha"), name, m.sess.Language(), len(m.view.Members), t.K*100)
	return line
}

func (m *editorModel) rightView() string {
	mw, mh := m.mapSize()
	top := drawMap(m.view.Scene, m.viewport.Transform, mw, mh)

	var bottom string
	switch {
	case m.mode == modeStory:
		story := m.sess.Story()
		if story == "" {
			story = StyleDim.Render("No story yet. Press s to write one.")
		}
		bottom = lipgloss.NewStyle().Width(mw).Height(detailHeight).MaxHeight(detailHeight).Render(story)
	case m.mode == modeEdit:
		bottom = "\n" + m.form.view(mw, true)
	default:
		if mem, ok := m.sess.Member(m.selectedID()); ok {
			bottom = "\n" + newMemberForm(mem).view(mw, false)
		} else {
			bottom = "\n" + StyleDim.Render("Select a member in the outline or on the map.")
		}
	}
	bottom = lipgloss.NewStyle().Height(detailHeight).MaxHeight(detailHeight).Render(bottom)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m *editorModel) statusView() string {
	if len(m.pending) > 0 {
		descs := make([]string, 0, len(m.pending))
		for _, d := range m.pending {
			descs = append(descs, d)
		}
		slices.Sort(descs)
		return m.spinner.View() + " " + StyleDim.Render(strings.Join(descs, ", ")+"...")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return StyleSuccess.Render(m.status)
}

func (m *editorModel) helpText() string {
	switch m.mode {
	case modeEdit:
		return "tab/↑↓ field · ctrl+r cycle choices · enter save · esc cancel"
	case modeConfirmDelete:
		return "y delete · any other key cancels"
	}
	nav := "↑↓ select"
	if m.pane == paneMap {
		nav = "arrows pan · +/- zoom · 0 reset"
	}
	return nav + " · tab pane · e edit · a add · d delete · t translate · s story · L language · x jpg · p pdf · w write · q quit"
}
