package note

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseMeta(t *testing.T) {
	content := []byte(`---
title: ArcFace Annotated
date: 2023-06-22
tags: [machine-learning, pytorch]
draft: true
summary: Walking through the ArcFace loss line by line.
---
# ArcFace Annotated

Body text.
`)

	meta, body, err := ParseMeta(content)
	if err != nil {
		t.Fatalf("ParseMeta() error = %v", err)
	}

	if meta.Title != "ArcFace Annotated" {
		t.Errorf("Title = %q, want %q", meta.Title, "ArcFace Annotated")
	}
	if meta.Date != "2023-06-22" {
		t.Errorf("Date = %q, want %q", meta.Date, "2023-06-22")
	}
	if !reflect.DeepEqual(meta.Tags, []string{"machine-learning", "pytorch"}) {
		t.Errorf("Tags = %v", meta.Tags)
	}
	if !meta.Draft {
		t.Error("Draft = false, want true")
	}
	if meta.Summary != "Walking through the ArcFace loss line by line." {
		t.Errorf("Summary = %q", meta.Summary)
	}
	if !strings.Contains(body, "# ArcFace Annotated") {
		t.Errorf("body missing heading, got %q", body)
	}
}

func TestParseMetaWithoutFrontmatter(t *testing.T) {
	content := []byte("# Just a heading\n\nNo frontmatter at all.\n")

	meta, body, err := ParseMeta(content)
	if err != nil {
		t.Fatalf("ParseMeta() error = %v", err)
	}

	if !reflect.DeepEqual(meta, Meta{}) {
		t.Errorf("meta = %+v, want zero value", meta)
	}
	if body != string(content) {
		t.Errorf("body = %q, want full content", body)
	}
}

func TestParseMetaMalformed(t *testing.T) {
	content := []byte("---\ntitle: [unclosed\n---\nBody.\n")

	if _, _, err := ParseMeta(content); err == nil {
		t.Error("ParseMeta() expected error for malformed frontmatter")
	}
}

func TestParseMetaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024-02-10-post.md")
	if err := os.WriteFile(path, []byte("---\ntitle: On Disk\n---\nBody.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	meta, body, err := ParseMetaFile(path)
	if err != nil {
		t.Fatalf("ParseMetaFile() error = %v", err)
	}
	if meta.Title != "On Disk" {
		t.Errorf("Title = %q, want %q", meta.Title, "On Disk")
	}
	if body != "Body.\n" {
		t.Errorf("body = %q, want %q", body, "Body.\n")
	}

	if _, _, err := ParseMetaFile(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("ParseMetaFile() expected error for missing file")
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"one two three\nfour five", 5},
	}

	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
