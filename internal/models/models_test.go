package models

import (
	"testing"
	"time"
)

func TestUserValidate(t *testing.T) {
	valid := User{ID: "u1", Name: "Nadia", Email: "nadia@example.com", RegisteredAt: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid user, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(u *User)
	}{
		{"Missing ID", func(u *User) { u.ID = "" }},
		{"Blank Name", func(u *User) { u.Name = "  " }},
		{"Blank Email", func(u *User) { u.Email = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			if err := u.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUserMerge(t *testing.T) {
	registered := time.Now()
	original := User{ID: "u1", Name: "Nadia", Email: "nadia@example.com", RegisteredAt: registered, Avatar: "a.png"}

	t.Run("Applies Set Fields", func(t *testing.T) {
		name := "Nadia K"
		avatar := "b.png"
		merged := original.Merge(UserPatch{Name: &name, Avatar: &avatar})

		if merged.Name != "Nadia K" || merged.Avatar != "b.png" {
			t.Errorf("patch not applied: %+v", merged)
		}
		// Identity fields never change
		if merged.ID != "u1" || merged.Email != "nadia@example.com" || !merged.RegisteredAt.Equal(registered) {
			t.Errorf("identity fields changed: %+v", merged)
		}
		// The receiver is untouched
		if original.Name != "Nadia" {
			t.Errorf("original mutated: %+v", original)
		}
	})

	t.Run("Nil Fields Keep Values", func(t *testing.T) {
		merged := original.Merge(UserPatch{})
		if merged != original {
			t.Errorf("empty patch changed the user: %+v", merged)
		}
	})
}

func TestTrailer(t *testing.T) {
	t.Run("Prefers Official Trailer", func(t *testing.T) {
		videos := VideoList{Results: []Video{
			{Key: "clip", Site: "YouTube", Type: "Clip", Official: true},
			{Key: "vimeo", Site: "Vimeo", Type: "Trailer", Official: true},
			{Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
		}}
		trailer := videos.Trailer()
		if trailer == nil || trailer.Key != "official" {
			t.Errorf("expected official trailer, got %+v", trailer)
		}
	})

	t.Run("Falls Back To Any YouTube Video", func(t *testing.T) {
		videos := VideoList{Results: []Video{
			{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
			{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		}}
		trailer := videos.Trailer()
		if trailer == nil || trailer.Key != "teaser" {
			t.Errorf("expected fallback video, got %+v", trailer)
		}
	})

	t.Run("None Available", func(t *testing.T) {
		videos := VideoList{Results: []Video{{Key: "vimeo", Site: "Vimeo", Type: "Trailer"}}}
		if trailer := videos.Trailer(); trailer != nil {
			t.Errorf("expected nil, got %+v", trailer)
		}
	})
}

func TestAsMovie(t *testing.T) {
	detail := MovieDetail{
		ID:          603,
		Title:       "The Matrix",
		VoteAverage: 8.2,
		Genres:      []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
	}

	movie := detail.AsMovie()
	if movie.ID != 603 || movie.Title != "The Matrix" {
		t.Errorf("unexpected movie: %+v", movie)
	}
	if len(movie.GenreIDs) != 2 || movie.GenreIDs[0] != 28 || movie.GenreIDs[1] != 878 {
		t.Errorf("unexpected genre ids: %v", movie.GenreIDs)
	}
}

func TestAuthResult(t *testing.T) {
	user := &User{ID: "u1"}

	success := Succeeded(user)
	if !success.Success || success.User != user || success.Message != "" {
		t.Errorf("unexpected success result: %+v", success)
	}

	failure := Failure("nope")
	if failure.Success || failure.User != nil || failure.Message != "nope" {
		t.Errorf("unexpected failure result: %+v", failure)
	}
}
