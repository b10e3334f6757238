package note

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation collapses", "ArcFace: Additive Angular Margin Loss", "arcface-additive-angular-margin-loss"},
		{"numbers survive", "Top 10 Proxmox Tips", "top-10-proxmox-tips"},
		{"leading and trailing junk", "  ...Hello!  ", "hello"},
		{"empty string", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"content/posts/2023-06-22-arcface.md", "2023-06-22-arcface"},
		{"drafts/homelab-notes.md", "homelab-notes"},
		{"plain.md", "plain"},
		{"no-extension", "no-extension"},
	}

	for _, tt := range tests {
		if got := Stem(tt.path); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"date prefix stripped", "posts/2023-06-22-arcface-annotated.md", "arcface annotated"},
		{"no date prefix", "drafts/homelab-notes.md", "homelab notes"},
		{"underscores spaced", "drafts/my_first_post.md", "my first post"},
		{"date not at start stays", "drafts/arcface-2023-06-22.md", "arcface 2023 06 22"},
		{"bare date", "2023-06-22-.md", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromFilename(tt.path); got != tt.want {
				t.Errorf("TitleFromFilename(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
