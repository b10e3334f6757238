package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quill-md/quill/internal/config"
	"github.com/quill-md/quill/internal/datastore"
	"github.com/quill-md/quill/internal/fileutil"
	"github.com/quill-md/quill/internal/note"
)

// Options holds configuration for the export command.
type Options struct {
	// InputDirs are the directories to inventory; empty means the
	// configured content and drafts dirs
	InputDirs []string
	// JSON writes the inventory to a JSON file as well
	JSON bool
	// JSONOutput is the JSON file path; empty means json/posts.json
	JSONOutput string
}

// PostRecord is one row of the exported inventory.
type PostRecord struct {
	Slug      string   `json:"slug"`
	Filename  string   `json:"filename"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Tags      []string `json:"tags"`
	Draft     bool     `json:"draft"`
	Summary   string   `json:"summary"`
	WordCount int      `json:"word_count"`
}

func postRecordToMap(record PostRecord) map[string]any {
	return map[string]any{
		"slug":       record.Slug,
		"filename":   record.Filename,
		"title":      record.Title,
		"date":       record.Date,
		"tags":       strings.Join(record.Tags, ","),
		"draft":      record.Draft,
		"summary":    record.Summary,
		"word_count": record.WordCount,
	}
}

const postsTableSchema = `CREATE TABLE IF NOT EXISTS posts (
	slug TEXT PRIMARY KEY,
	filename TEXT,
	title TEXT,
	date TEXT,
	tags TEXT,
	draft BOOLEAN,
	summary TEXT,
	word_count INTEGER
)`

// ExportPosts walks the post directories and writes the inventory to the
// configured Datasette target and optionally to JSON.
func ExportPosts(opts Options) error {
	dirs := opts.InputDirs
	if len(dirs) == 0 {
		dirs = []string{config.ContentDir, config.DraftsDir}
	}

	records := collectRecords(dirs)

	if len(records) == 0 {
		slog.Info("No posts found to export")
		return nil
	}

	slog.Info("Collected post inventory", "count", len(records))

	if viper.GetBool("datasette.enabled") {
		slog.Info("Writing post inventory to Datasette")
		mode := viper.GetString("datasette.mode")

		switch mode {
		case "local":
			store := datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
			if err := store.Connect(); err != nil {
				slog.Error("Failed to connect to SQLite database", "error", err)
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateTable(postsTableSchema); err != nil {
				slog.Error("Failed to create table", "error", err)
				return err
			}

			rows := make([]map[string]any, len(records))
			for i, record := range records {
				rows[i] = postRecordToMap(record)
			}

			if err := store.BatchInsert("quill", "posts", rows); err != nil {
				slog.Error("Failed to insert records", "error", err)
				return err
			}
			slog.Info("Successfully wrote posts to SQLite database", "count", len(records))
		case "remote":
			client := datastore.NewDatasetteClient(
				viper.GetString("datasette.remote_url"),
				viper.GetString("datasette.api_token"),
			)
			if err := client.Connect(); err != nil {
				slog.Error("Failed to connect to remote Datasette", "error", err)
				return err
			}
			defer func() { _ = client.Close() }()

			rows := make([]map[string]any, len(records))
			for i, record := range records {
				rows[i] = postRecordToMap(record)
			}

			if err := client.BatchInsert("quill", "posts", rows); err != nil {
				slog.Error("Failed to insert records to remote Datasette", "error", err)
				return err
			}
			slog.Info("Successfully wrote posts to remote Datasette", "count", len(records))
		default:
			slog.Error("Invalid Datasette mode", "mode", mode)
			return fmt.Errorf("invalid Datasette mode: %s", mode)
		}
	}

	if opts.JSON {
		jsonOutput := opts.JSONOutput
		if jsonOutput == "" {
			jsonOutput = filepath.Join("json", "posts.json")
		}
		if _, err := fileutil.WriteJSONFile(records, jsonOutput, true); err != nil {
			slog.Error("Error writing posts to JSON", "error", err)
		}
	}

	return nil
}

// collectRecords builds one record per post under the given directories.
// Parse failures and duplicate slugs are logged and skipped so one bad
// post never sinks the whole export.
func collectRecords(dirs []string) []PostRecord {
	var records []PostRecord
	seen := make(map[string]bool)

	for _, dir := range dirs {
		files, err := fileutil.FindMarkdownFiles(dir, true)
		if err != nil {
			slog.Warn("Failed to scan directory", "dir", dir, "error", err)
			continue
		}

		for _, file := range files {
			record, err := recordFromFile(file)
			if err != nil {
				slog.Warn("Failed to read post", "path", file, "error", err)
				continue
			}
			if seen[record.Slug] {
				slog.Warn("Duplicate slug, keeping the first", "slug", record.Slug, "path", file)
				continue
			}
			seen[record.Slug] = true
			records = append(records, record)
		}
	}

	return records
}

// recordFromFile reads one post into an inventory record. The slug comes
// from the filename, which is what determines the post's URL; the title is
// only a fallback for files named outside the date-slug convention.
func recordFromFile(path string) (PostRecord, error) {
	meta, body, err := note.ParseMetaFile(path)
	if err != nil {
		return PostRecord{}, err
	}

	slug := note.Slugify(note.TitleFromFilename(path))
	if slug == "" {
		slug = note.Slugify(meta.Title)
	}
	if slug == "" {
		slug = note.Stem(path)
	}

	return PostRecord{
		Slug:      slug,
		Filename:  filepath.Base(path),
		Title:     meta.Title,
		Date:      meta.Date,
		Tags:      note.NormalizeTags(meta.Tags),
		Draft:     meta.Draft,
		Summary:   meta.Summary,
		WordCount: note.WordCount(body),
	}, nil
}
