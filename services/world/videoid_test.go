package world

import "testing"

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		id   string
		ok   bool
	}{
		{
			name: "watch url",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			id:   "dQw4w9WgXcQ",
			ok:   true,
		},
		{
			name: "watch url with playlist",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx0sYbCqOb8Q",
			id:   "dQw4w9WgXcQ",
			ok:   true,
		},
		{
			name: "short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			id:   "dQw4w9WgXcQ",
			ok:   true,
		},
		{
			name: "embed path",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			id:   "dQw4w9WgXcQ",
			ok:   true,
		},
		{
			name: "id with dash and underscore",
			url:  "https://www.youtube.com/watch?v=a-b_C1d2E3f",
			id:   "a-b_C1d2E3f",
			ok:   true,
		},
		{
			name: "id too short",
			url:  "https://www.youtube.com/watch?v=short",
			ok:   false,
		},
		{
			name: "id too long",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQQ",
			ok:   false,
		},
		{
			name: "invalid character",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXc!",
			ok:   false,
		},
		{
			name: "channel page",
			url:  "https://www.youtube.com/@somechannel",
			ok:   false,
		},
		{
			name: "not a url",
			url:  "://not-a-url",
			ok:   false,
		},
		{
			name: "empty",
			url:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := VideoIDFromURL(tt.url)
			if ok != tt.ok {
				t.Fatalf("VideoIDFromURL(%q) ok = %v, expected %v", tt.url, ok, tt.ok)
			}
			if id != tt.id {
				t.Errorf("VideoIDFromURL(%q) = %q, expected %q", tt.url, id, tt.id)
			}
		})
	}
}
