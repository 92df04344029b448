package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/lightman/internal/launcher"
	"github.com/gravitrone/lightman/internal/lightsync"
	"github.com/gravitrone/lightman/internal/remote"
	"github.com/gravitrone/lightman/internal/scene"
	"github.com/gravitrone/lightman/internal/ui/components"
)

// --- Modes ---

type mode int

const (
	modeTable mode = iota
	modeEdit
	modeCreateName
	modeCreateType
	modeRename
	modeConfirmDelete
	modeSearch
)

// chromeLines is the height taken by everything around the table rows.
const chromeLines = 26

// --- Messages ---

// RemoteMsg carries a remote attribute write into the update loop.
type RemoteMsg remote.Command

// Options configures the App.
type Options struct {
	VimKeys bool
	// Save persists the scene; nil disables ctrl+s.
	Save func() error
	// Ack reports the outcome of a remote command; nil skips it.
	Ack func(remote.Command, error)
}

// --- App Model ---

// App is the root TUI model: the light table and its dialogs.
type App struct {
	session *launcher.Context
	ctl     *lightsync.Controller
	sched   *Scheduler
	opts    Options
	vimKeys bool

	width  int
	height int

	col      lightsync.Column
	mode     mode
	helpOpen bool

	input      textinput.Model
	editName   string
	editCol    lightsync.Column
	createName string
	types      *components.Picker
}

// NewApp launches the session and returns the root model. sched must be the
// scheduler the session's controller was configured with.
func NewApp(session *launcher.Context, sched *Scheduler, opts Options) App {
	ctl, _ := session.Launch()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64

	choices := make([]string, 0, len(scene.LightTypes))
	for _, t := range scene.LightTypes {
		choices = append(choices, string(t))
	}

	return App{
		session: session,
		ctl:     ctl,
		sched:   sched,
		opts:    opts,
		vimKeys: opts.VimKeys,
		col:     lightsync.ColExposure,
		input:   ti,
		types:   components.NewPicker(choices...),
	}
}

func (a App) Init() tea.Cmd {
	return a.sched.Flush()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.fitPage()
	case scheduledMsg:
		msg.fn()
	case RemoteMsg:
		cmd = a.applyRemote(remote.Command(msg))
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	default:
		if a.inputActive() {
			a.input, cmd = a.input.Update(msg)
		}
	}
	return a, tea.Batch(cmd, a.sched.Flush())
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)

	var content string
	switch {
	case a.helpOpen:
		content = a.renderHelp()
	case a.mode == modeConfirmDelete:
		content = a.renderDeleteConfirm()
	case a.mode == modeCreateType:
		content = a.renderTypePicker()
	case a.inputActive():
		content = a.renderTable() + "\n\n" + a.renderInput()
	default:
		content = a.renderTable()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.modeName(), a.statusHints(), a.width)

	feedback := ""
	if toast := a.renderToast(); toast != "" {
		feedback = "\n\n" + centerBlockUniform(toast, a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n\n%s%s", banner, content, hints, feedback)
}

// Controller returns the controller driving the table.
func (a App) Controller() *lightsync.Controller { return a.ctl }

// --- Keys ---

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if isKey(msg, "ctrl+c") {
		return tea.Quit
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return nil
	}

	switch a.mode {
	case modeEdit, modeRename, modeCreateName, modeSearch:
		return a.handleInputKeys(msg)
	case modeCreateType:
		a.handleTypePickerKeys(msg)
		return nil
	case modeConfirmDelete:
		switch {
		case isKey(msg, "y"):
			a.mode = modeTable
			_ = a.ctl.DeleteSelected()
		case isKey(msg, "n"), isBack(msg):
			a.mode = modeTable
		}
		return nil
	}
	return a.handleTableKeys(msg)
}

func (a *App) handleTableKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case isQuit(msg):
		return tea.Quit
	case isKey(msg, "?"):
		a.helpOpen = true
	case a.up(msg):
		a.moveRow(-1)
	case a.down(msg):
		a.moveRow(1)
	case a.left(msg):
		a.moveCol(-1)
	case a.right(msg):
		a.moveCol(1)
	case isKey(msg, "pgup"):
		tbl := a.ctl.Table()
		tbl.ScrollTo(tbl.ScrollOffset() - tbl.PageSize())
	case isKey(msg, "pgdown"):
		tbl := a.ctl.Table()
		tbl.ScrollTo(tbl.ScrollOffset() + tbl.PageSize())
	case isEnter(msg):
		return a.activateCell()
	case isSpace(msg):
		a.toggleCell()
	case isKey(msg, "n"):
		a.createName = ""
		return a.openInput(modeCreateName, "", "name (empty uses the type)")
	case isKey(msg, "r"):
		if name, ok := a.selectedName(); ok {
			return a.openInput(modeRename, strings.TrimSuffix(name, ".000"), "new name")
		}
	case isKey(msg, "d"):
		if _, ok := a.selectedName(); ok {
			a.mode = modeConfirmDelete
		}
	case isKey(msg, "/"):
		return a.openInput(modeSearch, a.ctl.Query(), "search lights")
	case isKey(msg, "ctrl+r"):
		a.ctl.Rebuild()
	case isKey(msg, "p"):
		a.ctl.Render()
	case isKey(msg, "ctrl+s"):
		a.save()
	}
	return nil
}

func (a *App) handleInputKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case isBack(msg):
		if a.mode == modeSearch {
			a.ctl.Search("")
		}
		a.closeInput()
		return nil
	case isEnter(msg):
		a.submitInput()
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.mode == modeSearch {
		a.ctl.Search(a.input.Value())
	}
	return cmd
}

func (a *App) handleTypePickerKeys(msg tea.KeyMsg) {
	switch {
	case isBack(msg):
		a.mode = modeTable
	case a.up(msg):
		a.types.Prev()
	case a.down(msg):
		a.types.Next()
	case isEnter(msg):
		typ := a.types.Choice()
		a.mode = modeTable
		if name, err := a.ctl.CreateLight(a.createName, typ); err == nil {
			a.ctl.SelectByName(name)
		}
	}
}

// --- Actions ---

func (a *App) openInput(m mode, value, placeholder string) tea.Cmd {
	a.mode = m
	a.input.Placeholder = placeholder
	a.input.SetValue(value)
	a.input.CursorEnd()
	return tea.Batch(a.input.Focus(), textinput.Blink)
}

func (a *App) closeInput() {
	a.input.Blur()
	a.input.SetValue("")
	a.mode = modeTable
}

func (a *App) submitInput() {
	value := a.input.Value()
	m := a.mode
	a.closeInput()

	switch m {
	case modeEdit:
		row := a.ctl.Table().IndexOf(a.editName)
		if row < 0 {
			a.ctl.Status().Post(fmt.Sprintf("Error: '%s' no longer exists", a.editName))
			return
		}
		a.ctl.EditCell(row, a.editCol, value)
	case modeCreateName:
		a.createName = value
		a.types.Reset()
		a.mode = modeCreateType
	case modeRename:
		old, ok := a.selectedName()
		if !ok {
			return
		}
		if final, err := a.ctl.RenameLight(old, value); err == nil {
			a.ctl.SelectByName(final)
		}
	case modeSearch:
		a.ctl.Search(value)
	}
}

func (a *App) activateCell() tea.Cmd {
	row := a.ctl.Table().Selected()
	ctrl, ok := a.ctl.Table().Control(row, a.col)
	if !ok {
		return nil
	}
	switch ctrl.Kind() {
	case lightsync.ControlText, lightsync.ControlSwatch:
		r, _ := a.ctl.Table().Row(row)
		a.editName = r.Name
		a.editCol = a.col
		return a.openInput(modeEdit, ctrl.Text(), a.col.String())
	case lightsync.ControlToggle:
		a.ctl.ToggleCell(row, a.col)
	case lightsync.ControlPlaceholder:
		a.ctl.Status().Post(fmt.Sprintf("No parameter %s for this light", a.col))
	}
	return nil
}

func (a *App) toggleCell() {
	row := a.ctl.Table().Selected()
	a.ctl.ToggleCell(row, a.col)
}

func (a *App) moveRow(delta int) {
	tbl := a.ctl.Table()
	visible := tbl.VisibleIndexes()
	if len(visible) == 0 {
		return
	}
	pos := -1
	for i, idx := range visible {
		if idx == tbl.Selected() {
			pos = i
			break
		}
	}
	switch {
	case pos < 0 && delta > 0:
		pos = 0
	case pos < 0:
		pos = len(visible) - 1
	default:
		pos += delta
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(visible) {
		pos = len(visible) - 1
	}
	a.ctl.SelectRow(visible[pos])
}

func (a *App) moveCol(delta int) {
	next := a.col + lightsync.Column(delta)
	if next < 0 || next >= lightsync.ColumnCount {
		return
	}
	a.col = next
}

func (a *App) save() {
	if a.opts.Save == nil {
		return
	}
	if err := a.opts.Save(); err != nil {
		a.ctl.Status().Post(fmt.Sprintf("Error: could not save scene: %v", err))
		return
	}
	a.ctl.Status().Post("Scene saved.")
}

func (a *App) applyRemote(cmd remote.Command) tea.Cmd {
	err := a.ctl.SetAttribute(cmd.Light, cmd.Attr, cmd.Value)
	if err != nil {
		a.ctl.Status().Post(fmt.Sprintf("Error: remote update of '%s' failed: %v", cmd.Light, err))
	} else {
		a.ctl.Status().Post(fmt.Sprintf("Remote update: %s %s = %s", cmd.Light, cmd.Attr, cmd.Value))
	}
	if a.opts.Ack == nil {
		return nil
	}
	ack := a.opts.Ack
	return func() tea.Msg {
		ack(cmd, err)
		return nil
	}
}

func (a *App) fitPage() {
	if a.height <= 0 {
		return
	}
	n := a.height - chromeLines
	if n < 3 {
		n = 3
	}
	a.ctl.Table().SetPageSize(n)
}

func (a App) selectedName() (string, bool) {
	r, ok := a.ctl.Table().Row(a.ctl.Table().Selected())
	if !ok {
		return "", false
	}
	return r.Name, true
}

func (a App) inputActive() bool {
	switch a.mode {
	case modeEdit, modeRename, modeCreateName, modeSearch:
		return true
	}
	return false
}

// --- Rendering ---

func (a App) renderInput() string {
	title := "Edit"
	switch a.mode {
	case modeEdit:
		title = fmt.Sprintf("Edit %s of %s", a.editCol, a.editName)
	case modeCreateName:
		title = "New Light"
	case modeRename:
		title = "Rename Light"
	case modeSearch:
		title = "Search"
	}
	hint := MutedStyle.Render("enter: submit | esc: cancel")
	return components.TitledBox(title, a.input.View()+"\n\n"+hint, a.width)
}

func (a App) renderTypePicker() string {
	name := a.createName
	if strings.TrimSpace(name) == "" {
		name = "(type name)"
	}
	body := a.types.Render() + "\n\n" + MutedStyle.Render("name: "+components.SanitizeOneLine(name))
	return components.TitledBox("Light Type", body, a.width)
}

func (a App) renderDeleteConfirm() string {
	name, _ := a.selectedName()
	body := fmt.Sprintf("Delete light '%s'?", components.SanitizeOneLine(name))
	return components.Indent(components.ConfirmDialog("Delete Light", body), 1)
}

func (a App) renderHelp() string {
	hints := a.tableHints()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderToast() string {
	return components.StatusBox(a.ctl.Status().Text(), a.width)
}

func (a App) modeName() string {
	if a.helpOpen {
		return "help"
	}
	switch a.mode {
	case modeEdit:
		return "edit"
	case modeCreateName, modeCreateType:
		return "create"
	case modeRename:
		return "rename"
	case modeConfirmDelete:
		return "delete"
	case modeSearch:
		return "search"
	}
	return "table"
}

func (a App) statusHints() []string {
	if a.helpOpen {
		return []string{components.Hint("esc", "Back")}
	}
	switch a.mode {
	case modeConfirmDelete:
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	case modeCreateType:
		return []string{
			components.Hint("↑/↓", "Type"),
			components.Hint("enter", "Create"),
			components.Hint("esc", "Cancel"),
		}
	case modeEdit, modeRename, modeCreateName:
		return []string{
			components.Hint("enter", "Submit"),
			components.Hint("esc", "Cancel"),
		}
	case modeSearch:
		return []string{
			components.Hint("enter", "Apply"),
			components.Hint("esc", "Clear"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Rows"),
		components.Hint("←/→", "Columns"),
		components.Hint("enter", "Edit"),
		components.Hint("space", "Toggle"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
}

func (a App) tableHints() []string {
	hints := []string{
		components.Hint("↑/↓", "Select light"),
		components.Hint("←/→", "Move column"),
		components.Hint("enter", "Edit value or color"),
		components.Hint("space", "Toggle flag, mute or solo"),
		components.Hint("n", "New light"),
		components.Hint("r", "Rename"),
		components.Hint("d", "Delete"),
		components.Hint("/", "Search"),
		components.Hint("ctrl+r", "Refresh"),
		components.Hint("p", "Render with "+a.ctl.RenderEngine()),
		components.Hint("pgup/pgdn", "Scroll"),
	}
	if a.opts.Save != nil {
		hints = append(hints, components.Hint("ctrl+s", "Save scene"))
	}
	return append(hints, components.Hint("q", "Quit"))
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
