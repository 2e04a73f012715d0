package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/shared"
)

func fetchProfile(p Props, username string) tea.Cmd {
	ctx, dir := p.Ctx, p.Directory
	return func() tea.Msg {
		profile, err := dir.UserByUsername(ctx, username)
		return profileFetchedMsg{username: username, profile: profile, err: err}
	}
}

func fetchList(p Props, id string) tea.Cmd {
	ctx, dir := p.Ctx, p.Directory
	return func() tea.Msg {
		l, err := dir.List(ctx, id)
		return listFetchedMsg{id: id, list: l, err: err}
	}
}

func fetchAlbum(p Props, id string) tea.Cmd {
	ctx, dir := p.Ctx, p.Directory
	return func() tea.Msg {
		a, err := dir.Album(ctx, id)
		return albumFetchedMsg{id: id, album: a, err: err}
	}
}

// fetchState tracks one in-flight lookup.
type fetchState struct {
	loading  bool
	notFound bool
	err      error
}

func (f *fetchState) settle(err error) {
	f.loading = false
	f.notFound = errors.Is(err, shared.ErrNotFound)
	if !f.notFound {
		f.err = err
	}
}

// view renders the loading and failure states; ok is false when the page
// has nothing else to show.
func (f fetchState) view(what string) (string, bool) {
	switch {
	case f.loading:
		return styles.muted.Render("Loading " + what + "…"), false
	case f.notFound:
		return styles.title.Render(strings.ToUpper(what[:1])+what[1:]+" not found") +
			"\nIt may have been removed, or the address is wrong.", false
	case f.err != nil:
		return styles.err.Render(f.err.Error()), false
	}
	return "", true
}

type profilePage struct {
	props   Props
	fetch   fetchState
	profile *models.Profile
	home    key.Binding
	login   key.Binding
}

func newProfilePage(p Props) Page {
	return &profilePage{
		props: p,
		fetch: fetchState{loading: p.Username != ""},
		home:  binding("h", "home"),
		login: binding("l", "sign in"),
	}
}

func (p *profilePage) Init() tea.Cmd {
	if p.props.Username == "" {
		return nil
	}
	return fetchProfile(p.props, p.props.Username)
}

func (p *profilePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case profileFetchedMsg:
		if msg.username != p.props.Username {
			return p, nil
		}
		p.fetch.settle(msg.err)
		p.profile = msg.profile
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.home):
			return p, p.props.Navigate(nav.To(route.Home))
		case key.Matches(msg, p.login) && p.props.Self == nil:
			return p, p.props.Navigate(nav.To(route.Login))
		}
	}
	return p, nil
}

func (p *profilePage) own() bool {
	return p.props.Self != nil && p.props.Self.Username == p.props.Username
}

func (p *profilePage) View() string {
	if s, ok := p.fetch.view("profile"); !ok {
		return s
	}
	if p.profile == nil {
		return styles.muted.Render("No profile selected.")
	}

	title := "@" + p.profile.Username
	if p.own() {
		title += " (you)"
	}
	lines := []string{styles.title.Render(title)}
	if p.profile.Bio != "" {
		lines = append(lines, p.profile.Bio, "")
	}
	lines = append(lines, fmt.Sprintf("%d albums · %d reviews · %d lists",
		p.profile.AlbumsCount, p.profile.ReviewsCount, p.profile.ListsCount))
	if p.profile.FollowersCount > 0 || p.profile.FollowingCount > 0 {
		lines = append(lines, fmt.Sprintf("%d followers · %d following",
			p.profile.FollowersCount, p.profile.FollowingCount))
	}
	if p.profile.CreatedAt != "" {
		lines = append(lines, styles.muted.Render("Member since "+p.profile.CreatedAt))
	}
	return strings.Join(lines, "\n")
}

func (p *profilePage) Keys() []key.Binding {
	if p.props.Self == nil {
		return []key.Binding{p.home, p.login}
	}
	return []key.Binding{p.home}
}

type listDetailPage struct {
	props Props
	fetch fetchState
	list  *models.List
	items list.Model

	open  key.Binding
	back  key.Binding
	owner key.Binding
	edit  key.Binding
}

func newListDetailPage(p Props) Page {
	items := list.New(nil, list.NewDefaultDelegate(), max(p.Width, 20), max(p.Height-8, 5))
	items.SetShowHelp(false)
	items.SetShowTitle(false)
	items.SetShowStatusBar(false)
	items.SetFilteringEnabled(false)

	back := binding("esc", "lists")
	if p.Self == nil {
		back = binding("esc", "home")
	}

	return &listDetailPage{
		props: p,
		fetch: fetchState{loading: p.ListID != ""},
		items: items,
		open:  binding("enter", "open album"),
		back:  back,
		owner: binding("u", "owner"),
		edit:  binding("e", "edit"),
	}
}

func (p *listDetailPage) Init() tea.Cmd {
	if p.props.ListID == "" {
		return nil
	}
	return fetchList(p.props, p.props.ListID)
}

// editable reports whether edit affordances are shown.
func (p *listDetailPage) editable() bool {
	if p.props.ReadOnly || p.props.Self == nil || p.list == nil {
		return false
	}
	return p.list.Editable(p.props.Self.ID)
}

func (p *listDetailPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case listFetchedMsg:
		if msg.id != p.props.ListID {
			return p, nil
		}
		p.fetch.settle(msg.err)
		p.list = msg.list
		if p.list == nil {
			return p, nil
		}
		items := make([]list.Item, 0, len(p.list.Albums))
		for i, a := range p.list.Albums {
			items = append(items, albumItem{rank: i + 1, album: a})
		}
		return p, p.items.SetItems(items)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.open):
			if it, ok := p.items.SelectedItem().(albumItem); ok {
				return p, p.props.Navigate(nav.To(route.AlbumDetail).WithAlbum(it.album.ID))
			}
			return p, nil
		case key.Matches(msg, p.back) && p.props.Self == nil:
			return p, p.props.Navigate(nav.To(route.Home).Clearing())
		case key.Matches(msg, p.back):
			return p, p.props.Navigate(nav.To(route.Lists))
		case key.Matches(msg, p.owner) && p.list != nil && p.list.OwnerUsername != "":
			return p, p.props.Navigate(nav.To(route.Profile).WithUser(p.list.OwnerUsername))
		}
	}

	var cmd tea.Cmd
	p.items, cmd = p.items.Update(msg)
	return p, cmd
}

func (p *listDetailPage) View() string {
	if s, ok := p.fetch.view("list"); !ok {
		return s
	}
	if p.list == nil {
		return styles.muted.Render("No list selected.")
	}

	lines := []string{styles.title.Render(p.list.Title)}
	byline := fmt.Sprintf("%d albums · %d likes", len(p.list.Albums), p.list.Likes)
	if p.list.OwnerUsername != "" {
		byline = "by @" + p.list.OwnerUsername + " · " + byline
	}
	lines = append(lines, styles.muted.Render(byline))
	if p.list.Description != "" {
		lines = append(lines, p.list.Description)
	}
	if len(p.list.Collaborators) > 0 {
		names := make([]string, 0, len(p.list.Collaborators))
		for _, c := range p.list.Collaborators {
			names = append(names, "@"+c.Username)
		}
		lines = append(lines, styles.muted.Render("with "+strings.Join(names, ", ")))
	}
	if p.editable() {
		lines = append(lines, styles.ok.Render("You can edit this list."))
	}
	lines = append(lines, "", p.items.View())
	return strings.Join(lines, "\n")
}

func (p *listDetailPage) Keys() []key.Binding {
	keys := []key.Binding{p.open, p.back}
	if p.list != nil && p.list.OwnerUsername != "" {
		keys = append(keys, p.owner)
	}
	if p.editable() {
		keys = append(keys, p.edit)
	}
	return keys
}

type albumDetailPage struct {
	props  Props
	fetch  fetchState
	album  *models.Album
	review key.Binding
	back   key.Binding
}

func newAlbumDetailPage(p Props) Page {
	return &albumDetailPage{
		props:  p,
		fetch:  fetchState{loading: p.AlbumID != ""},
		review: binding("r", "review"),
		back:   binding("esc", "home"),
	}
}

func (p *albumDetailPage) Init() tea.Cmd {
	if p.props.AlbumID == "" {
		return nil
	}
	return fetchAlbum(p.props, p.props.AlbumID)
}

func (p *albumDetailPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case albumFetchedMsg:
		if msg.id != p.props.AlbumID {
			return p, nil
		}
		p.fetch.settle(msg.err)
		p.album = msg.album
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.review) && !p.props.ReadOnly:
			return p, p.props.Navigate(nav.To(route.WriteReview))
		case key.Matches(msg, p.back):
			return p, p.props.Navigate(nav.To(route.Home))
		}
	}
	return p, nil
}

func (p *albumDetailPage) View() string {
	if s, ok := p.fetch.view("album"); !ok {
		return s
	}
	if p.album == nil {
		return styles.muted.Render("No album selected.")
	}

	a := p.album
	head := a.Title
	if a.Year > 0 {
		head = fmt.Sprintf("%s (%d)", a.Title, a.Year)
	}
	lines := []string{styles.title.Render(head), a.Artist}
	if len(a.Genres) > 0 {
		lines = append(lines, styles.muted.Render(strings.Join(a.Genres, ", ")))
	}
	if a.TotalLogs > 0 {
		lines = append(lines, fmt.Sprintf("%.1f average from %d logs", a.AvgRating, a.TotalLogs))
	}
	if a.Description != "" {
		lines = append(lines, "", a.Description)
	}
	if len(a.Tracks) > 0 {
		lines = append(lines, "")
		for _, t := range a.Tracks {
			lines = append(lines, fmt.Sprintf("%2d. %s %s", t.Number, t.Title, styles.muted.Render(t.Duration)))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *albumDetailPage) Keys() []key.Binding {
	if p.props.ReadOnly {
		return []key.Binding{p.back}
	}
	return []key.Binding{p.review, p.back}
}
