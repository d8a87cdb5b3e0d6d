// Package browse provides the interactive storefront TUI. The code is
// split across files:
//   - model.go: Types, Init, Update loop (this file)
//   - commands.go: Async fetch commands
//   - view.go: Rendering functions
package browse

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"shopsense/cmd/shopsense/ui"
	"shopsense/internal/api"
	"shopsense/internal/catalog"
	"shopsense/internal/config"
	"shopsense/internal/store"
)

// ViewMode determines which screen is active
type ViewMode int

const (
	ListView ViewMode = iota
	DetailView
	LoginView
	RegisterView
	AnalyzeView
	HelpView
)

// ChartMode selects which sentiment chart the detail view shows. Both are
// derived from data already in the store, so toggling never refetches.
type ChartMode int

const (
	ChartDistribution ChartMode = iota
	ChartHeatmap
)

// noticeTTL is how long a transient notice stays on screen.
const noticeTTL = 5 * time.Second

// sentimentCycle is the order the sentiment filter steps through.
var sentimentCycle = []string{catalog.FilterAll, "positive", "neutral", "negative"}

// Model is the main model for the interactive storefront interface
type Model struct {
	// UI Components
	searchInput  textinput.Model
	analyzeInput textinput.Model
	fields       []textinput.Model
	fieldIndex   int
	spinner      spinner.Model
	viewport     viewport.Model
	styles       ui.Styles
	renderer     *glamour.TermRenderer

	viewMode  ViewMode
	chartMode ChartMode

	// List state
	cursor      int
	searching   bool
	categoryIdx int
	bucketIdx   int

	// Detail state
	recCursor int

	// Async state
	loadingProducts bool
	loadingDetail   bool
	authBusy        bool
	analyzeBusy     bool

	// Ad-hoc analysis result
	analysis    *api.Analysis
	analysisErr string

	// Auth form
	formError string

	// Transient notice with expiry sequence; a stale expiry tick must not
	// clear a newer notice.
	notice    string
	noticeSeq int

	width  int
	height int
	ready  bool

	// Backend
	store         *store.Store
	client        *api.Client
	cfg           config.Config
	logger        *zap.Logger
	configUpdates <-chan config.Config
}

// Messages for tea updates
type (
	bootMsg struct {
		products []catalog.Product
		user     *catalog.User
		err      error
	}
	productsLoadedMsg []catalog.Product
	productsFailedMsg struct{ err error }
	detailLoadedMsg   struct {
		id      int
		product *catalog.Product
	}
	detailFailedMsg struct {
		id  int
		err error
	}
	recommendationsMsg struct {
		id   int
		recs []catalog.Recommendation
	}
	authResultMsg struct {
		user *catalog.User
		err  error
	}
	loggedOutMsg struct{ err error }
	analysisMsg  struct {
		result *api.Analysis
		err    error
	}
	noticeExpiredMsg  struct{ seq int }
	configReloadedMsg config.Config
)

// New creates the browse model. The store is owned by the model and is the
// only holder of remote state; every view reads from it.
func New(cfg config.Config, client *api.Client, st *store.Store, logger *zap.Logger) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))

	search := textinput.New()
	search.Placeholder = "Search products..."
	search.CharLimit = 80

	analyze := textinput.New()
	analyze.Placeholder = "Type some text to score..."
	analyze.CharLimit = 500

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(ui.MinContentWidth),
	)

	return Model{
		searchInput:     search,
		analyzeInput:    analyze,
		spinner:         sp,
		styles:          styles,
		renderer:        renderer,
		loadingProducts: true,
		store:           st,
		client:          client,
		cfg:             cfg,
		logger:          logger,
	}
}

// WithConfigUpdates attaches a live config reload channel, typically fed by
// config.Watch. Each delivery restyles the interface in place.
func (m Model) WithConfigUpdates(ch <-chan config.Config) Model {
	m.configUpdates = ch
	return m
}

// Init starts the spinner and boots the initial data load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		m.boot(),
	}
	if m.configUpdates != nil {
		cmds = append(cmds, m.waitForConfig())
	}
	return tea.Batch(cmds...)
}

// waitForConfig listens for one config reload and re-arms itself from the
// Update handler.
func (m Model) waitForConfig() tea.Cmd {
	ch := m.configUpdates
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg(cfg)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		layout := ui.NewLayoutConfig(msg.Width, msg.Height)
		if !m.ready {
			m.viewport = viewport.New(layout.ContentWidth(), layout.ContentHeight())
			m.ready = true
		} else {
			m.viewport.Width = layout.ContentWidth()
			m.viewport.Height = layout.ContentHeight()
		}
		if m.viewMode == DetailView {
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil

	case configReloadedMsg:
		m.cfg = config.Config(msg)
		m.styles = ui.NewStyles(ui.ThemeByName(m.cfg.UI.Theme))
		if m.viewMode == DetailView {
			m.viewport.SetContent(m.detailContent())
		}
		return m, m.waitForConfig()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootMsg:
		m.loadingProducts = false
		if msg.err != nil {
			cmd := m.reportFailure(msg.err)
			return m, cmd
		}
		m.store.SetProducts(msg.products)
		m.store.SetUser(msg.user)
		m.clampCursor()
		return m, nil

	case productsLoadedMsg:
		m.loadingProducts = false
		m.store.SetProducts(msg)
		m.clampCursor()
		return m, nil

	case productsFailedMsg:
		m.loadingProducts = false
		cmd := m.reportFailure(msg.err)
		return m, cmd

	case detailLoadedMsg:
		// Discard responses for anything but the current selection.
		if !m.store.CommitDetail(msg.id, msg.product) {
			return m, nil
		}
		m.loadingDetail = false
		m.viewport.SetContent(m.detailContent())
		m.viewport.GotoTop()
		return m, nil

	case detailFailedMsg:
		if id, ok := m.store.Selection(); !ok || id != msg.id {
			return m, nil
		}
		m.loadingDetail = false
		m.viewMode = ListView
		m.store.ClearSelection()
		cmd := m.reportFailure(msg.err)
		return m, cmd

	case recommendationsMsg:
		recs := msg.recs
		if recs == nil {
			recs = []catalog.Recommendation{}
		}
		if !m.store.CommitRecommendations(msg.id, recs) {
			return m, nil
		}
		if m.viewMode == DetailView {
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil

	case authResultMsg:
		m.authBusy = false
		if msg.err != nil {
			m.formError = friendlyError(msg.err)
			return m, nil
		}
		m.store.SetUser(msg.user)
		m.viewMode = ListView
		name := ""
		if msg.user != nil {
			name = msg.user.Username
		}
		cmd := m.showNotice("Welcome, " + name + "!")
		return m, cmd

	case loggedOutMsg:
		if msg.err != nil {
			cmd := m.reportFailure(msg.err)
			return m, cmd
		}
		m.store.SetUser(nil)
		cmd := m.showNotice("Signed out")
		return m, cmd

	case analysisMsg:
		m.analyzeBusy = false
		if msg.err != nil {
			m.analysisErr = friendlyError(msg.err)
			return m, nil
		}
		m.analysisErr = ""
		m.analysis = msg.result
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.store.ClearError()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ListView:
		return m.handleListKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	case LoginView, RegisterView:
		return m.handleFormKey(msg)
	case AnalyzeView:
		return m.handleAnalyzeKey(msg)
	case HelpView:
		switch msg.String() {
		case "esc", "q", "?":
			m.viewMode = ListView
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search box is focused every printable key belongs to it.
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilter()
		m.clampCursor()
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.store.VisibleProducts())-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		return m, m.searchInput.Focus()
	case "c":
		m.categoryIdx++
		m.applyFilter()
		m.clampCursor()
	case "s":
		m.bucketIdx = (m.bucketIdx + 1) % len(sentimentCycle)
		m.applyFilter()
		m.clampCursor()
	case "x":
		m.searchInput.SetValue("")
		m.categoryIdx = 0
		m.bucketIdx = 0
		m.applyFilter()
		m.clampCursor()
	case "enter":
		visible := m.store.VisibleProducts()
		if m.cursor >= len(visible) {
			return m, nil
		}
		id := visible[m.cursor].ID
		m.store.SelectProduct(id)
		m.viewMode = DetailView
		m.chartMode = ChartDistribution
		m.recCursor = 0
		m.loadingDetail = true
		return m, m.fetchDetail(id)
	case "R":
		m.loadingProducts = true
		return m, m.fetchProducts()
	case "a":
		m.viewMode = AnalyzeView
		m.analyzeInput.SetValue("")
		m.analysisErr = ""
		return m, m.analyzeInput.Focus()
	case "i":
		if m.store.CurrentUser() == nil {
			m.enterForm(LoginView)
			return m, m.fields[0].Focus()
		}
	case "u":
		if m.store.CurrentUser() == nil {
			m.enterForm(RegisterView)
			return m, m.fields[0].Focus()
		}
	case "o":
		if m.store.CurrentUser() != nil {
			return m, m.logout()
		}
	case "?":
		m.viewMode = HelpView
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.viewMode = ListView
		m.store.ClearSelection()
		return m, nil
	case "t":
		if m.chartMode == ChartDistribution {
			m.chartMode = ChartHeatmap
		} else {
			m.chartMode = ChartDistribution
		}
		m.viewport.SetContent(m.detailContent())
		return m, nil
	case "left", "h":
		if m.recCursor > 0 {
			m.recCursor--
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil
	case "right", "l":
		if m.recCursor < len(m.store.Recommendations())-1 {
			m.recCursor++
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil
	case "enter":
		// Jump to the highlighted similar product.
		recs := m.store.Recommendations()
		if m.recCursor < len(recs) {
			id := recs[m.recCursor].ID
			m.store.SelectProduct(id)
			m.chartMode = ChartDistribution
			m.recCursor = 0
			m.loadingDetail = true
			return m, m.fetchDetail(id)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = ListView
		m.formError = ""
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m.focusField(m.fieldIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusField(m.fieldIndex - 1)
	case tea.KeyEnter:
		if m.fieldIndex < len(m.fields)-1 {
			return m.focusField(m.fieldIndex + 1)
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldIndex], cmd = m.fields[m.fieldIndex].Update(msg)
	return m, cmd
}

func (m Model) handleAnalyzeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = ListView
		m.analyzeInput.Blur()
		return m, nil
	case tea.KeyEnter:
		text := m.analyzeInput.Value()
		if err := catalog.ValidateAnalysisText(text); err != nil {
			m.analysisErr = err.Error()
			return m, nil
		}
		m.analysisErr = ""
		m.analyzeBusy = true
		return m, m.analyze(text)
	}

	var cmd tea.Cmd
	m.analyzeInput, cmd = m.analyzeInput.Update(msg)
	return m, cmd
}

// enterForm builds the input fields for the login or register form.
func (m *Model) enterForm(mode ViewMode) {
	m.viewMode = mode
	m.formError = ""
	m.fieldIndex = 0

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	if mode == LoginView {
		m.fields = []textinput.Model{username, password}
		return
	}

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 128

	m.fields = []textinput.Model{username, email, password, confirm}
}

func (m Model) focusField(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.fields) {
		return m, nil
	}
	m.fields[m.fieldIndex].Blur()
	m.fieldIndex = idx
	return m, m.fields[idx].Focus()
}

// submitForm validates locally first; nothing leaves the client until the
// form passes.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.viewMode == LoginView {
		username := strings.TrimSpace(m.fields[0].Value())
		password := m.fields[1].Value()
		if err := catalog.ValidateLogin(username, password); err != nil {
			m.formError = err.Error()
			return m, nil
		}
		m.formError = ""
		m.authBusy = true
		return m, m.login(api.Credentials{Username: username, Password: password})
	}

	username := strings.TrimSpace(m.fields[0].Value())
	email := strings.TrimSpace(m.fields[1].Value())
	password := m.fields[2].Value()
	confirm := m.fields[3].Value()
	if err := catalog.ValidateRegistration(username, email, password, confirm); err != nil {
		m.formError = err.Error()
		return m, nil
	}
	m.formError = ""
	m.authBusy = true
	return m, m.register(api.Credentials{Username: username, Email: email, Password: password})
}

// applyFilter pushes the current inputs into the store as filter criteria.
func (m *Model) applyFilter() {
	m.store.SetFilter(catalog.Criteria{
		SearchText: m.searchInput.Value(),
		Category:   m.currentCategory(),
		Bucket:     sentimentCycle[m.bucketIdx],
	})
}

// currentCategory resolves the category cycle index against the categories
// present in the catalog, with "all" at position zero.
func (m Model) currentCategory() string {
	cats := m.store.Categories()
	n := len(cats) + 1
	idx := m.categoryIdx % n
	if idx == 0 {
		return catalog.FilterAll
	}
	return cats[idx-1]
}

func (m *Model) clampCursor() {
	visible := len(m.store.VisibleProducts())
	if m.cursor >= visible {
		m.cursor = visible - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// showNotice displays a transient message and schedules its expiry.
func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// reportFailure records the failure in the store and raises a notice.
func (m *Model) reportFailure(err error) tea.Cmd {
	text := friendlyError(err)
	m.logger.Warn("request failed", zap.Error(err))
	m.store.ReportError(text)
	return m.showNotice(text)
}
