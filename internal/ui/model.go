package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/listenr/internal/gate"
	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/services"
	"github.com/desertthunder/listenr/internal/session"
	"github.com/desertthunder/listenr/internal/shared"
	"github.com/desertthunder/listenr/internal/views"
)

// SessionStore is the part of [session.Store] the terminal client drives.
type SessionStore interface {
	Authenticator
	Session() session.Session
	Restore(ctx context.Context) error
	Logout(ctx context.Context) error
}

var _ SessionStore = (*session.Store)(nil)

// mountKey identifies a mounted page; a change remounts it.
type mountKey struct {
	decision gate.Decision
	target   route.Target
	username string
}

// Model is the root bubbletea model.
type Model struct {
	ctx       context.Context
	store     SessionStore
	directory services.Directory
	history   nav.History
	machine   *nav.Machine
	logger    *log.Logger
	webBase   string
	open      func(string) error

	decision gate.Decision
	page     Page
	mounted  mountKey

	address     textinput.Model
	addressOpen bool
	spinner     spinner.Model
	help        help.Model
	keys        keyMap
	cursor      int

	width  int
	height int
	status string
	failed bool
}

type Option func(*Model)

// WithWebBase sets the origin share links are built against.
func WithWebBase(base string) Option {
	return func(m *Model) { m.webBase = base }
}

// WithOpener replaces the browser launcher used for share links.
func WithOpener(fn func(string) error) Option {
	return func(m *Model) { m.open = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// NewModel builds the root model. history's current entry is the address
// the client starts on.
func NewModel(ctx context.Context, store SessionStore, dir services.Directory, history nav.History, opts ...Option) *Model {
	address := textinput.New()
	address.Prompt = "go to: "
	address.Placeholder = "/u/username"

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:       ctx,
		store:     store,
		directory: dir,
		history:   history,
		logger:    shared.NewLogger(nil),
		open:      shared.OpenBrowser,
		address:   address,
		spinner:   s,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	ctx, store := m.ctx, m.store
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return restoredMsg{err: store.Restore(ctx)}
	})
}

// Current returns the navigation target, or the zero target while the
// session is still loading.
func (m *Model) Current() route.Target {
	if m.machine == nil {
		return route.Target{}
	}
	return m.machine.Current()
}

// Decision returns the branch the current page was mounted in.
func (m *Model) Decision() gate.Decision { return m.decision }

func (m *Model) env() nav.Env {
	return nav.Env{Self: m.store.Session().Username()}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case restoredMsg:
		if msg.err != nil {
			m.logger.Warn("session restore failed", "error", msg.err)
		}
		m.machine = nav.New(m.history, m.store.Session().Authenticated())
		m.machine.OnChange(func(s nav.State) {
			m.logger.Debug("navigated", "current", s.Current, "previous", s.Previous, "path", m.history.Path())
		})
		return m, m.sync()

	case navigateMsg:
		if m.machine != nil {
			m.machine.Navigate(msg.intent, m.env())
		}
		return m, m.sync()

	case cancelMsg:
		if m.machine != nil {
			m.machine.Cancel(m.env())
		}
		return m, m.sync()

	case backMsg:
		if m.machine != nil {
			m.machine.Back()
		}
		return m, m.sync()

	case loggedOutMsg:
		if msg.err != nil {
			m.flash(msg.err.Error(), true)
		}
		if m.machine != nil {
			m.machine.Navigate(nav.To(route.Home).Clearing(), nav.Env{})
		}
		return m, m.sync()

	case sharedMsg:
		if msg.err != nil {
			m.flash(msg.err.Error(), true)
		} else {
			m.flash("Opened "+msg.url, false)
		}
		return m, nil

	case spinner.TickMsg:
		if m.decision.Branch != gate.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, tea.Batch(cmd, m.sync())
		}
	}

	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

// handleKey processes the keys the root owns. It reports false when the key
// belongs to the page.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, m.keys.abort) {
		return true, tea.Quit
	}
	if m.machine == nil {
		return key.Matches(msg, m.keys.quit), quitIf(key.Matches(msg, m.keys.quit))
	}
	if m.addressOpen {
		return true, m.handleAddressKey(msg)
	}
	if m.machine.State().SidebarOpen && m.decision.Chrome {
		return true, m.handleSidebarKey(msg)
	}
	if key.Matches(msg, m.keys.address) {
		m.addressOpen = true
		m.address.SetValue(m.history.Path())
		m.address.CursorEnd()
		return true, m.address.Focus()
	}
	if m.page != nil && capturing(m.page) {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return true, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.machine.Back()
		return true, nil
	case key.Matches(msg, m.keys.forward):
		m.machine.Forward()
		return true, nil
	case key.Matches(msg, m.keys.sidebar) && m.decision.Chrome:
		m.machine.ToggleSidebar()
		m.cursor = 0
		return true, nil
	case key.Matches(msg, m.keys.share):
		return true, m.share()
	case key.Matches(msg, m.keys.signIn) && m.decision.SignIn:
		out, ok := m.decision.Narrow(m.machine.Current(), nav.To(route.Login))
		if !ok {
			return true, nil
		}
		m.machine.Navigate(out, m.env())
		return true, nil
	}
	return false, nil
}

func quitIf(ok bool) tea.Cmd {
	if ok {
		return tea.Quit
	}
	return nil
}

// handleAddressKey edits the address bar. Submitting behaves like typing a
// URL: the normalized path is pushed and the current target replaced.
func (m *Model) handleAddressKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.esc):
		m.closeAddress()
		return nil
	case key.Matches(msg, m.keys.enter):
		path := route.Normalize(m.address.Value())
		m.closeAddress()
		if path != m.history.Path() {
			m.history.Push(path)
		}
		m.machine.Pop()
		return nil
	}
	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return cmd
}

func (m *Model) closeAddress() {
	m.addressOpen = false
	m.address.Blur()
	m.address.Reset()
}

func (m *Model) sidebar() []sidebarItem {
	sess := m.store.Session()
	return sidebarItems(sess.Identity != nil && sess.Identity.IsAdmin)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	items := m.sidebar()
	switch {
	case key.Matches(msg, m.keys.up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.down):
		m.cursor = min(m.cursor+1, len(items)-1)
	case key.Matches(msg, m.keys.esc), key.Matches(msg, m.keys.sidebar):
		m.machine.CloseSidebar()
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.enter):
		item := items[m.cursor]
		if item.signOut {
			m.machine.CloseSidebar()
			ctx, store := m.ctx, m.store
			return func() tea.Msg { return loggedOutMsg{err: store.Logout(ctx)} }
		}
		m.machine.NavigateChrome(item.view, m.env())
	}
	return nil
}

// share opens the web client at the current address. Targets without a
// stable address are not shareable.
func (m *Model) share() tea.Cmd {
	if !route.Addressable(m.machine.Current()) {
		m.flash("This page has no shareable address.", true)
		return nil
	}
	url, err := shared.ShareURL(m.webBase, m.history.Path())
	if err != nil {
		m.flash(err.Error(), true)
		return nil
	}
	open := m.open
	return func() tea.Msg { return sharedMsg{url: url, err: open(url)} }
}

func (m *Model) flash(status string, failed bool) {
	m.status, m.failed = status, failed
}

// sync evaluates the gate and remounts the page when the branch, target or
// identity changed.
func (m *Model) sync() tea.Cmd {
	sess := m.store.Session()
	in := gate.Input{
		Loading:       sess.Loading || m.machine == nil,
		Authenticated: sess.Authenticated(),
		RawPath:       m.history.Path(),
	}
	if m.machine != nil {
		in.Current = m.machine.Current()
		m.keys.back.SetEnabled(m.machine.CanBack())
		m.keys.forward.SetEnabled(m.machine.CanForward())
	}

	d := gate.Evaluate(in)
	k := mountKey{decision: d, target: in.Current, username: sess.Username()}
	if k == m.mounted && (m.page != nil || d.Branch == gate.Loading) {
		return nil
	}

	prev := m.decision.Branch
	m.decision, m.mounted = d, k
	if d.Branch == gate.Loading {
		m.page = nil
		return m.spinner.Tick
	}
	if prev != d.Branch {
		m.logger.Debug("branch", "from", prev, "to", d.Branch, "view", d.View)
	}

	m.page = mount(d.View, m.props(d, in.Current, sess))
	return m.page.Init()
}

func (m *Model) props(d gate.Decision, cur route.Target, sess session.Session) Props {
	narrow := d.Narrower()
	passThrough := d.Branch == gate.Shell || d.Branch == gate.Bare
	previous := m.machine.State().Previous

	return Props{
		Ctx: m.ctx,
		Navigate: func(in nav.Intent) tea.Cmd {
			out, ok := narrow(cur, in)
			if !ok {
				return nil
			}
			return emit(navigateMsg{intent: out})
		},
		Cancel: func() tea.Cmd {
			if passThrough {
				return emit(cancelMsg{})
			}
			out, ok := narrow(cur, nav.IntentFor(previous))
			if !ok {
				return nil
			}
			return emit(navigateMsg{intent: out})
		},
		Back:      func() tea.Cmd { return emit(backMsg{}) },
		AlbumID:   cur.AlbumID,
		Username:  cur.Username,
		ListID:    cur.ListID,
		ReadOnly:  d.ReadOnly,
		Self:      sess.Identity,
		Directory: m.directory,
		Auth:      m.store,
		Width:     m.width,
		Height:    m.height,
	}
}

func (m *Model) View() string {
	if m.decision.Branch == gate.Loading || m.page == nil {
		return fmt.Sprintf("\n  %s Restoring session…\n", m.spinner.View())
	}

	var b strings.Builder
	if m.decision.Chrome {
		b.WriteString(m.header())
		b.WriteString("\n")
	}

	body := m.page.View()
	if m.decision.SignIn {
		body = styles.banner.Render("You are browsing as a guest. Press s to sign in.") + "\n\n" + body
	}
	if m.decision.Chrome && m.machine.State().SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	if m.addressOpen {
		b.WriteString(m.address.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		style := styles.ok
		if m.failed {
			style = styles.err
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(append(m.page.Keys(), m.keys.ShortHelp()...)))
	return b.String()
}

func (m *Model) header() string {
	title := views.Lookup(m.machine.Current().View).Title
	right := m.history.Path()
	if name := m.store.Session().Username(); name != "" {
		right = "@" + name + "  " + right
	}
	return styles.header.Render(fmt.Sprintf("listenr · %s   %s", title, styles.muted.Render(right)))
}

func (m *Model) renderSidebar() string {
	current := m.machine.Current().View
	var lines []string
	for i, item := range m.sidebar() {
		label := item.Title()
		switch {
		case i == m.cursor:
			label = styles.active.Render("> " + label)
		case !item.signOut && item.view == current:
			label = styles.ok.Render("  " + label)
		default:
			label = "  " + label
		}
		lines = append(lines, label)
	}
	return styles.sidebar.Render(strings.Join(lines, "\n"))
}
