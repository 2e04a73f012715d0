package views

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/desertthunder/listenr/internal/route"
)

func TestLookup(t *testing.T) {
	t.Run("Every View Has A Contract", func(t *testing.T) {
		for _, v := range route.Views() {
			c := Lookup(v)
			require.Equal(t, v, c.View)
			require.NotEmpty(t, c.Title, "view %s has no title", v)
			require.Equal(t, v.Requires(), c.Requires)
		}
	})

	t.Run("Unknown View", func(t *testing.T) {
		require.Equal(t, route.NotFound, Lookup(route.View(-1)).View)
	})

	t.Run("Bare Views", func(t *testing.T) {
		for _, v := range []route.View{route.Onboarding, route.WriteReview, route.LogAlbum, route.Login} {
			require.False(t, Lookup(v).Chrome, "%s should render without chrome", v)
		}
	})
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, len(route.Views()))

	all[0].Title = "changed"
	require.NotEqual(t, "changed", Lookup(all[0].View).Title)
}

func TestAuthOnly(t *testing.T) {
	tc := []struct {
		target route.Target
		want   bool
	}{
		{route.Target{View: route.Lists}, true},
		{route.Target{View: route.Admin}, true},
		{route.Target{View: route.LogAlbum}, true},
		{route.Target{View: route.WriteReview, AlbumID: "A1"}, true},
		{route.Target{View: route.Profile}, true},
		{route.Target{View: route.Profile, Username: "alice"}, false},
		{route.Target{View: route.ListDetail, ListID: "L1"}, false},
		{route.Target{View: route.Home}, false},
		{route.Target{View: route.Login}, false},
	}

	for _, tt := range tc {
		t.Run(tt.target.String(), func(t *testing.T) {
			require.Equal(t, tt.want, AuthOnly(tt.target))
		})
	}
}

func TestSidebar(t *testing.T) {
	require.NotContains(t, Sidebar(false), route.Admin)
	require.Contains(t, Sidebar(true), route.Admin)
}
