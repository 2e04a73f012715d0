package models

// User is the identity of the caller, as returned by auth/me.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}

// Profile is what anyone can see about a user.
type Profile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	AlbumsCount    int    `json:"albums_count"`
	ReviewsCount   int    `json:"reviews_count"`
	ListsCount     int    `json:"lists_count"`
	FollowingCount int    `json:"following_count,omitempty"`
	FollowersCount int    `json:"followers_count,omitempty"`
}

// List is a curated set of albums with its collaborators.
type List struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	OwnerUsername string         `json:"owner_username,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	CoverURL      string         `json:"cover_url,omitempty"`
	AlbumsCount   int            `json:"albums_count"`
	Likes         int            `json:"likes"`
	UserLiked     bool           `json:"user_liked,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
	Albums        []ListAlbum    `json:"albums"`
	Collaborators []Collaborator `json:"collaborators,omitempty"`
}

// ListAlbum is one album on a list.
type ListAlbum struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	CoverURL string `json:"cover_url,omitempty"`
}

// Collaborator may edit a list they do not own.
type Collaborator struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Editable reports whether the user with id userID may change the list.
func (l List) Editable(userID string) bool {
	if userID == "" {
		return false
	}
	if l.UserID == userID {
		return true
	}
	for _, c := range l.Collaborators {
		if c.ID == userID {
			return true
		}
	}
	return false
}

// Album is album metadata shown on the album page.
type Album struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	Year        int      `json:"year,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Genres      []string `json:"genres"`
	Label       string   `json:"label,omitempty"`
	Description string   `json:"description,omitempty"`
	AvgRating   float64  `json:"avg_rating,omitempty"`
	TotalLogs   int      `json:"total_logs,omitempty"`
	Tracks      []Track  `json:"tracks,omitempty"`
}

// Track is a song on an album.
type Track struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}
