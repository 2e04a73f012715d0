package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
)

type landingPage struct {
	props Props
	start key.Binding
}

func newLandingPage(p Props) Page {
	return &landingPage{props: p, start: binding("enter", "get started")}
}

func (p *landingPage) Init() tea.Cmd { return nil }

func (p *landingPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, p.start) {
		return p, p.props.Navigate(nav.To(route.Login))
	}
	return p, nil
}

func (p *landingPage) View() string {
	return strings.Join([]string{
		styles.title.Render("listenr"),
		"Keep a diary of every album you listen to.",
		"Rate and review records, build lists, follow friends.",
		"",
		styles.muted.Render("Shared a profile or list? Paste its address with ctrl+l."),
	}, "\n")
}

func (p *landingPage) Keys() []key.Binding { return []key.Binding{p.start} }

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

type loginPage struct {
	props   Props
	mode    loginMode
	inputs  [3]textinput.Model
	focus   int
	pending bool
	err     string

	submit key.Binding
	next   key.Binding
	prev   key.Binding
	toggle key.Binding
	back   key.Binding
}

func newLoginPage(p Props) Page {
	lp := &loginPage{
		props:  p,
		focus:  fieldEmail,
		submit: binding("enter", "submit"),
		next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		toggle: binding("ctrl+r", "switch sign in/register"),
		back:   binding("esc", "back"),
	}

	for i, label := range [...]string{"Username", "Email", "Password"} {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-10s", label+":")
		in.CharLimit = 128
		lp.inputs[i] = in
	}
	lp.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	lp.inputs[fieldPassword].EchoCharacter = '•'
	return lp
}

func (p *loginPage) fields() []int {
	if p.mode == modeRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (p *loginPage) focusOn(field int) tea.Cmd {
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	p.focus = field
	return p.inputs[field].Focus()
}

func (p *loginPage) step(delta int) tea.Cmd {
	fields := p.fields()
	idx := 0
	for i, f := range fields {
		if f == p.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	return p.focusOn(fields[idx])
}

func (p *loginPage) Init() tea.Cmd { return p.focusOn(p.fields()[0]) }

func (p *loginPage) Capturing() bool { return true }

func (p *loginPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		p.pending = false
		if msg.err != nil {
			p.err = msg.err.Error()
			return p, nil
		}
		return p, p.props.Navigate(nav.To(route.Home))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.toggle):
			if p.mode == modeLogin {
				p.mode = modeRegister
			} else {
				p.mode = modeLogin
			}
			p.err = ""
			return p, p.focusOn(p.fields()[0])
		case key.Matches(msg, p.next):
			return p, p.step(1)
		case key.Matches(msg, p.prev):
			return p, p.step(-1)
		case key.Matches(msg, p.submit):
			return p, p.send()
		case key.Matches(msg, p.back) && p.props.Back != nil:
			return p, p.props.Back()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

// send submits the form. Nothing is sent while a request is in flight.
func (p *loginPage) send() tea.Cmd {
	if p.pending {
		return nil
	}

	username := strings.TrimSpace(p.inputs[fieldUsername].Value())
	email := strings.TrimSpace(p.inputs[fieldEmail].Value())
	password := p.inputs[fieldPassword].Value()

	if email == "" || password == "" || (p.mode == modeRegister && username == "") {
		p.err = "Please fill in every field."
		return nil
	}

	p.pending = true
	p.err = ""
	ctx, auth, mode := p.props.Ctx, p.props.Auth, p.mode
	return func() tea.Msg {
		if mode == modeRegister {
			return authDoneMsg{err: auth.Register(ctx, username, email, password)}
		}
		return authDoneMsg{err: auth.Login(ctx, email, password)}
	}
}

func (p *loginPage) View() string {
	title := "Sign in"
	if p.mode == modeRegister {
		title = "Create an account"
	}

	lines := []string{styles.title.Render(title)}
	for _, f := range p.fields() {
		lines = append(lines, p.inputs[f].View())
	}
	lines = append(lines, "")

	switch {
	case p.pending:
		lines = append(lines, styles.muted.Render("Working…"))
	case p.err != "":
		lines = append(lines, styles.err.Render(p.err))
	}
	return strings.Join(lines, "\n")
}

func (p *loginPage) Keys() []key.Binding {
	return []key.Binding{p.submit, p.next, p.toggle, p.back}
}

type notFoundPage struct {
	props Props
	home  key.Binding
	login key.Binding
}

func newNotFoundPage(p Props) Page {
	return &notFoundPage{props: p, home: binding("h", "home"), login: binding("l", "sign in")}
}

func (p *notFoundPage) Init() tea.Cmd { return nil }

func (p *notFoundPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.home):
			return p, p.props.Navigate(nav.To(route.Home))
		case key.Matches(msg, p.login) && p.props.Self == nil:
			return p, p.props.Navigate(nav.To(route.Login))
		}
	}
	return p, nil
}

func (p *notFoundPage) View() string {
	return styles.title.Render("Not found") + "\nNothing lives at this address."
}

func (p *notFoundPage) Keys() []key.Binding {
	if p.props.Self == nil {
		return []key.Binding{p.home, p.login}
	}
	return []key.Binding{p.home}
}

type onboardingPage struct {
	props Props
	done  key.Binding
}

func newOnboardingPage(p Props) Page {
	return &onboardingPage{props: p, done: binding("enter", "let's go")}
}

func (p *onboardingPage) Init() tea.Cmd { return nil }

func (p *onboardingPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, p.done) {
		return p, p.props.Navigate(nav.To(route.Home))
	}
	return p, nil
}

func (p *onboardingPage) View() string {
	name := "there"
	if p.props.Self != nil {
		name = "@" + p.props.Self.Username
	}
	return strings.Join([]string{
		styles.title.Render("Welcome, " + name),
		"Log albums as you listen, write reviews, and collect favourites into lists.",
	}, "\n")
}

func (p *onboardingPage) Keys() []key.Binding { return []key.Binding{p.done} }
