package models

import "testing"

// TestClassifyKey verifies reserved keys map to their own media class and
// everything else is treated as a catalog image.
func TestClassifyKey(t *testing.T) {
	tests := []struct {
		key  string
		want MediaClass
	}{
		{key: KeySiteLogo, want: MediaLogo},
		{key: KeyHeroVideo, want: MediaVideo},
		{key: "brick-db3d-01", want: MediaImage},
		{key: "custom-1700000000000", want: MediaImage},
		{key: "", want: MediaImage},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ClassifyKey(tt.key); got != tt.want {
				t.Errorf("ClassifyKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestMediaClassOversize(t *testing.T) {
	tests := []struct {
		name  string
		class MediaClass
		size  int64
		want  bool
	}{
		{name: "image at limit", class: MediaImage, size: 3 * mb, want: false},
		{name: "image over limit", class: MediaImage, size: 3*mb + 1, want: true},
		{name: "logo at limit", class: MediaLogo, size: 2 * mb, want: false},
		{name: "logo over limit", class: MediaLogo, size: 2*mb + 1, want: true},
		{name: "video under limit", class: MediaVideo, size: 4 * mb, want: false},
		{name: "video over limit", class: MediaVideo, size: 5*mb + 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Oversize(tt.size); got != tt.want {
				t.Errorf("Oversize(%d) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestMediaClassAccepts(t *testing.T) {
	tests := []struct {
		name        string
		class       MediaClass
		contentType string
		want        bool
	}{
		{name: "image png", class: MediaImage, contentType: "image/png", want: true},
		{name: "logo webp", class: MediaLogo, contentType: "image/webp", want: true},
		{name: "image rejects video", class: MediaImage, contentType: "video/mp4", want: false},
		{name: "video mp4", class: MediaVideo, contentType: "video/mp4", want: true},
		{name: "video webm", class: MediaVideo, contentType: "video/webm", want: true},
		{name: "video rejects image", class: MediaVideo, contentType: "image/png", want: false},
		{name: "image rejects pdf", class: MediaImage, contentType: "application/pdf", want: false},
		{name: "uppercase is not an image", class: MediaImage, contentType: "IMAGE/PNG", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Accepts(tt.contentType); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0 B"},
		{n: 512, want: "512 B"},
		{n: 2048, want: "2 KB"},
		{n: 3 * mb, want: "3.0 MB"},
		{n: 5*mb + mb/2, want: "5.5 MB"},
	}
	for _, tt := range tests {
		if got := HumanSize(tt.n); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
