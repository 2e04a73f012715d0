package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
)

// ownProfile is the intent for the caller's own profile.
func ownProfile() nav.Intent {
	in := nav.To(route.Profile)
	in.Username = nav.Clear()
	return in
}

type homePage struct {
	props   Props
	log     key.Binding
	diary   key.Binding
	profile key.Binding
}

func newHomePage(p Props) Page {
	return &homePage{
		props:   p,
		log:     binding("l", "log an album"),
		diary:   binding("d", "diary"),
		profile: binding("p", "my profile"),
	}
}

func (p *homePage) Init() tea.Cmd { return nil }

func (p *homePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, p.log):
		return p, p.props.Navigate(nav.To(route.LogAlbum))
	case key.Matches(km, p.diary):
		return p, p.props.Navigate(nav.To(route.Diary))
	case key.Matches(km, p.profile):
		return p, p.props.Navigate(ownProfile())
	}
	return p, nil
}

func (p *homePage) View() string {
	greeting := "Welcome back"
	if p.props.Self != nil {
		greeting += ", @" + p.props.Self.Username
	}
	return styles.title.Render(greeting) + "\nWhat have you been listening to?"
}

func (p *homePage) Keys() []key.Binding { return []key.Binding{p.log, p.diary, p.profile} }

type diaryPage struct {
	props  Props
	log    key.Binding
	resume key.Binding
}

func newDiaryPage(p Props) Page {
	return &diaryPage{props: p, log: binding("n", "log an album"), resume: binding("w", "resume review")}
}

func (p *diaryPage) Init() tea.Cmd { return nil }

func (p *diaryPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, p.log):
		return p, p.props.Navigate(nav.To(route.LogAlbum))
	case key.Matches(km, p.resume) && p.props.AlbumID != "":
		return p, p.props.Navigate(nav.To(route.WriteReview))
	}
	return p, nil
}

func (p *diaryPage) View() string {
	lines := []string{styles.title.Render("Diary"), "Your listening history shows up here."}
	if p.props.AlbumID != "" {
		lines = append(lines, "", styles.muted.Render("Last album: "+p.props.AlbumID))
	}
	return strings.Join(lines, "\n")
}

func (p *diaryPage) Keys() []key.Binding {
	if p.props.AlbumID == "" {
		return []key.Binding{p.log}
	}
	return []key.Binding{p.log, p.resume}
}

// listsPage shows the caller's lists and opens one by id.
type listsPage struct {
	props Props
	input textinput.Model
	open  key.Binding
	enter key.Binding
	esc   key.Binding
}

func newListsPage(p Props) Page {
	in := textinput.New()
	in.Prompt = "List id: "
	in.Placeholder = "abc123"
	return &listsPage{
		props: p,
		input: in,
		open:  binding("g", "open a list"),
		enter: binding("enter", "open"),
		esc:   binding("esc", "cancel"),
	}
}

func (p *listsPage) Init() tea.Cmd { return nil }

func (p *listsPage) Capturing() bool { return p.input.Focused() }

func (p *listsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case !p.input.Focused() && key.Matches(km, p.open):
			return p, p.input.Focus()
		case p.input.Focused() && key.Matches(km, p.esc):
			p.input.Blur()
			p.input.Reset()
			return p, nil
		case p.input.Focused() && key.Matches(km, p.enter):
			id := strings.TrimSpace(p.input.Value())
			if id == "" {
				return p, nil
			}
			p.input.Blur()
			return p, p.props.Navigate(nav.To(route.ListDetail).WithList(id))
		}
	}

	if !p.input.Focused() {
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *listsPage) View() string {
	lines := []string{styles.title.Render("Lists"), "Collections you made or collaborate on."}
	if p.input.Focused() {
		lines = append(lines, "", p.input.View())
	}
	return strings.Join(lines, "\n")
}

func (p *listsPage) Keys() []key.Binding {
	if p.input.Focused() {
		return []key.Binding{p.enter, p.esc}
	}
	return []key.Binding{p.open}
}

// logAlbumPage picks the album a review is written for.
type logAlbumPage struct {
	props Props
	input textinput.Model
	next  key.Binding
	back  key.Binding
}

func newLogAlbumPage(p Props) Page {
	in := textinput.New()
	in.Prompt = "Album id: "
	in.SetValue(p.AlbumID)
	return &logAlbumPage{props: p, input: in, next: binding("enter", "write review"), back: binding("esc", "home")}
}

func (p *logAlbumPage) Init() tea.Cmd { return p.input.Focus() }

func (p *logAlbumPage) Capturing() bool { return true }

func (p *logAlbumPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, p.next):
			id := strings.TrimSpace(p.input.Value())
			if id == "" {
				return p, nil
			}
			return p, p.props.Navigate(nav.To(route.WriteReview).WithAlbum(id))
		case key.Matches(km, p.back):
			return p, p.props.Navigate(nav.To(route.Home))
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *logAlbumPage) View() string {
	return styles.title.Render("Log an album") + "\n" + p.input.View()
}

func (p *logAlbumPage) Keys() []key.Binding { return []key.Binding{p.next, p.back} }

// writeReviewPage drafts a review for the remembered album.
type writeReviewPage struct {
	props  Props
	body   textarea.Model
	title  string
	post   key.Binding
	cancel key.Binding
}

func newWriteReviewPage(p Props) Page {
	ta := textarea.New()
	ta.Placeholder = "What did you think?"
	ta.ShowLineNumbers = false
	if p.Width > 0 {
		ta.SetWidth(p.Width)
	}
	return &writeReviewPage{
		props:  p,
		body:   ta,
		post:   binding("ctrl+s", "post"),
		cancel: binding("esc", "cancel"),
	}
}

func (p *writeReviewPage) Init() tea.Cmd {
	if p.props.AlbumID == "" {
		return nil
	}
	return tea.Batch(p.body.Focus(), fetchAlbum(p.props, p.props.AlbumID))
}

func (p *writeReviewPage) Capturing() bool { return true }

func (p *writeReviewPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case albumFetchedMsg:
		if msg.id == p.props.AlbumID && msg.err == nil && msg.album != nil {
			p.title = fmt.Sprintf("%s by %s", msg.album.Title, msg.album.Artist)
		}
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.cancel):
			return p, p.props.Cancel()
		case key.Matches(msg, p.post) && p.props.AlbumID != "":
			return p, p.props.Navigate(nav.To(route.Diary))
		}
	}
	if p.props.AlbumID == "" {
		return p, nil
	}
	var cmd tea.Cmd
	p.body, cmd = p.body.Update(msg)
	return p, cmd
}

func (p *writeReviewPage) View() string {
	if p.props.AlbumID == "" {
		return styles.title.Render("Write a review") + "\nPick an album to review first."
	}
	subject := p.title
	if subject == "" {
		subject = "album " + p.props.AlbumID
	}
	return styles.title.Render("Reviewing "+subject) + "\n" + p.body.View()
}

func (p *writeReviewPage) Keys() []key.Binding {
	if p.props.AlbumID == "" {
		return []key.Binding{p.cancel}
	}
	return []key.Binding{p.post, p.cancel}
}

type adminPage struct {
	props Props
}

func newAdminPage(p Props) Page { return &adminPage{props: p} }

func (p *adminPage) Init() tea.Cmd { return nil }

func (p *adminPage) Update(tea.Msg) (Page, tea.Cmd) { return p, nil }

func (p *adminPage) View() string {
	if p.props.Self == nil || !p.props.Self.IsAdmin {
		return styles.title.Render("Admin") + "\n" + styles.err.Render("You need admin rights to see this page.")
	}
	return styles.title.Render("Admin") + "\nModeration queue is empty."
}

func (p *adminPage) Keys() []key.Binding { return nil }
