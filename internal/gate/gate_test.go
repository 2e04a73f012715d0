package gate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/route"
)

func guest(path string) Input {
	return Input{RawPath: path, Current: route.Decode(path)}
}

func member(path string) Input {
	return Input{Authenticated: true, RawPath: path, Current: route.Decode(path)}
}

func TestEvaluate(t *testing.T) {
	tc := []struct {
		name   string
		input  Input
		branch Branch
		view   route.View
	}{
		{"loading wins", Input{Loading: true, RawPath: "/", Current: route.Target{View: route.Home}}, Loading, route.Home},
		{"loading while authenticated", Input{Loading: true, Authenticated: true, RawPath: "/diary", Current: route.Target{View: route.Diary}}, Loading, route.Diary},
		{"guest root", guest("/"), Landing, route.Landing},
		{"guest profile", guest("/u/alice"), GuestProfile, route.Profile},
		{"guest list", guest("/l/xyz789"), GuestList, route.ListDetail},
		{"guest album", guest("/album/A1"), GuestAlbum, route.AlbumDetail},
		{"guest not found", guest("/nope"), GuestNotFound, route.NotFound},
		{"guest diary", guest("/diary"), Login, route.Login},
		{"guest admin", guest("/admin"), Login, route.Login},
		{"guest login", guest("/login"), Login, route.Login},
		{"member home", member("/"), Shell, route.Home},
		{"member profile", member("/u/alice"), Shell, route.Profile},
		{"member not found", member("/nope"), Shell, route.NotFound},
		{"member log", member("/log"), Bare, route.LogAlbum},
		{"member login", member("/login"), Bare, route.Login},
		{"member write review", Input{Authenticated: true, RawPath: "/", Current: route.Target{View: route.WriteReview, AlbumID: "A1"}}, Bare, route.WriteReview},
		{"member onboarding", Input{Authenticated: true, RawPath: "/", Current: route.Target{View: route.Onboarding}}, Bare, route.Onboarding},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.input)
			require.Equal(t, tt.branch, d.Branch)
			require.Equal(t, tt.view, d.View)
		})
	}
}

func TestRootPrecedence(t *testing.T) {
	for _, v := range route.Views() {
		in := Input{RawPath: "/", Current: route.Target{View: v, Username: "alice", ListID: "L1", AlbumID: "A1"}}
		require.Equal(t, Landing, Evaluate(in).Branch, "view %s", v)
	}

	for _, raw := range []string{"", "/", "//", "/?ref=share"} {
		require.Equal(t, Landing, Evaluate(Input{RawPath: raw, Current: route.Target{View: route.Profile, Username: "alice"}}).Branch, raw)
	}
}

func TestDecisionFlags(t *testing.T) {
	d := Evaluate(guest("/l/xyz789"))
	require.True(t, d.ReadOnly)
	require.True(t, d.SignIn)
	require.False(t, d.Chrome)

	d = Evaluate(guest("/nope"))
	require.False(t, d.ReadOnly)
	require.True(t, d.SignIn)

	d = Evaluate(member("/l/xyz789"))
	require.False(t, d.ReadOnly)
	require.False(t, d.SignIn)
	require.True(t, d.Chrome)
}

func intents() []nav.Intent {
	var out []nav.Intent
	for _, v := range append(route.Views(), route.View(99)) {
		base := nav.To(v)
		out = append(out,
			base,
			base.Clearing(),
			base.WithAlbum("A9"),
			base.WithUser("mallory"),
			base.WithList("L9"),
			base.WithAlbum("A9").WithUser("mallory").WithList("L9"),
		)
	}
	return out
}

func TestGuestIsolation(t *testing.T) {
	forbidden := map[route.View]bool{
		route.Lists:       true,
		route.Admin:       true,
		route.LogAlbum:    true,
		route.Diary:       true,
		route.WriteReview: true,
		route.Onboarding:  true,
	}

	for _, path := range []string{"/u/alice", "/l/xyz789", "/album/A1", "/nope"} {
		t.Run(path, func(t *testing.T) {
			in := guest(path)
			d := Evaluate(in)
			require.True(t, d.Branch.Guest())

			for _, intent := range intents() {
				narrowed, ok := d.Narrow(in.Current, intent)
				require.True(t, ok)

				next := nav.Reduce(nav.State{Current: in.Current}, narrowed, nav.Env{})
				require.False(t, forbidden[next.Current.View], "%s reached %s via %s", path, next.Current, intent)
				if next.Current.View == route.Profile {
					require.NotEmpty(t, next.Current.Username, "%s reached own profile via %s", path, intent)
				}
			}
		})
	}
}

func TestGuestProfile(t *testing.T) {
	cur := route.Target{View: route.Profile, Username: "alice"}
	d := Evaluate(Input{RawPath: "/u/alice", Current: cur})

	t.Run("Album Allowed", func(t *testing.T) {
		out, _ := d.Narrow(cur, nav.To(route.AlbumDetail).WithAlbum("A1"))
		got := out.Apply(cur)
		require.Equal(t, route.Target{View: route.AlbumDetail, AlbumID: "A1"}, got)
	})

	t.Run("Username Cannot Be Changed", func(t *testing.T) {
		out, _ := d.Narrow(cur, nav.To(route.Profile).WithUser("mallory"))
		require.Equal(t, "alice", out.Apply(cur).Username)
	})

	t.Run("List Cannot Be Set", func(t *testing.T) {
		out, _ := d.Narrow(cur, nav.To(route.ListDetail).WithList("L1"))
		require.Equal(t, route.Login, out.View)
	})

	t.Run("Lists Become Login", func(t *testing.T) {
		out, _ := d.Narrow(cur, nav.To(route.Lists))
		require.Equal(t, route.Target{View: route.Login}, out.Apply(cur))
	})
}

func TestGuestListScenario(t *testing.T) {
	h := nav.NewMemoryHistory("/l/xyz789")
	m := nav.New(h, false)
	in := Input{RawPath: h.Path(), Current: m.Current()}

	d := Evaluate(in)
	require.Equal(t, GuestList, d.Branch)
	require.True(t, d.ReadOnly)

	intent, ok := d.Narrow(m.Current(), nav.To(route.AlbumDetail).WithAlbum("A1"))
	require.True(t, ok)
	m.Navigate(intent, nav.Env{})
	require.Equal(t, "/album/A1", m.Path())

	d = Evaluate(Input{RawPath: m.Path(), Current: m.Current()})
	require.Equal(t, GuestAlbum, d.Branch)

	intent, _ = d.Narrow(m.Current(), nav.To(route.Diary))
	m.Navigate(intent, nav.Env{})
	require.Equal(t, route.Target{View: route.Login}, m.Current())
	require.Equal(t, "/login", m.Path())
}

func TestGuestNotFound(t *testing.T) {
	cur := route.Target{View: route.NotFound}
	d := Evaluate(Input{RawPath: "/nope", Current: cur})

	out, _ := d.Narrow(cur, nav.To(route.AlbumDetail).WithAlbum("A1"))
	require.Equal(t, route.Target{View: route.Home}, out.Apply(cur))

	out, _ = d.Narrow(cur, nav.To(route.Login))
	require.Equal(t, route.Target{View: route.Login}, out.Apply(cur))
}

func TestLoginClearsSelectors(t *testing.T) {
	cur := route.Target{View: route.Diary, AlbumID: "A1"}
	d := Evaluate(Input{RawPath: "/diary", Current: cur})
	require.Equal(t, Login, d.Branch)

	out, ok := d.Narrow(cur, nav.To(route.Home))
	require.True(t, ok)
	require.Equal(t, route.Target{View: route.Home}, out.Apply(cur))
}

func TestLoadingDropsNavigation(t *testing.T) {
	d := Evaluate(Input{Loading: true})
	_, ok := d.Narrow(route.Target{View: route.Home}, nav.To(route.Lists))
	require.False(t, ok)
}

func TestAuthenticatedPassThrough(t *testing.T) {
	cur := route.Target{View: route.Home}
	d := Evaluate(Input{Authenticated: true, RawPath: "/", Current: cur})

	in := nav.To(route.Admin).WithAlbum("A1")
	out, ok := d.Narrow(cur, in)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestBranchString(t *testing.T) {
	require.Equal(t, "guest-not-found", GuestNotFound.String())
	require.Equal(t, "branch(42)", Branch(42).String())
}
