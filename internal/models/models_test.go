package models

import (
	"encoding/json"
	"testing"
)

func TestListEditable(t *testing.T) {
	list := List{
		UserID:        "1",
		Collaborators: []Collaborator{{ID: "2", Username: "bob"}},
	}

	tc := []struct {
		userID string
		want   bool
	}{
		{"1", true},
		{"2", true},
		{"3", false},
		{"", false},
	}

	for _, tt := range tc {
		if got := list.Editable(tt.userID); got != tt.want {
			t.Errorf("Editable(%q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}

func TestListDecode(t *testing.T) {
	body := `{
		"id": "xyz789",
		"user_id": "1",
		"owner_username": "alice",
		"title": "Desert island",
		"albums_count": 1,
		"likes": 4,
		"albums": [{"id": "A1", "title": "Blue", "artist": "Joni Mitchell"}],
		"collaborators": [{"id": "2", "username": "bob"}]
	}`

	var list List
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	if list.OwnerUsername != "alice" {
		t.Errorf("expected owner alice, got %q", list.OwnerUsername)
	}
	if len(list.Albums) != 1 || list.Albums[0].ID != "A1" {
		t.Errorf("unexpected albums %+v", list.Albums)
	}
	if !list.Editable("2") {
		t.Error("collaborator should be able to edit")
	}
}
