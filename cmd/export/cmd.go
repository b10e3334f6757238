// Package export walks the content directories and writes the post
// inventory to SQLite, a remote Datasette or JSON.
package export

import "github.com/spf13/viper"

// ExportCmd represents the export command
type ExportCmd struct {
	InputDirs  []string `short:"d" help:"Directories to inventory (defaults to the configured content and drafts dirs)"`
	DB         string   `help:"Path to SQLite database file (overrides the global --datasette-db)"`
	JSON       bool     `help:"Write the inventory to JSON format" default:"false"`
	JSONOutput string   `help:"Path to JSON output file (defaults to json/posts.json)"`
}

func (e *ExportCmd) Run() error {
	if e.DB != "" {
		viper.Set("datasette.dbfile", e.DB)
	}

	opts := Options{
		InputDirs:  e.InputDirs,
		JSON:       e.JSON,
		JSONOutput: e.JSONOutput,
	}

	return ExportPostsFunc(opts)
}

var ExportPostsFunc = ExportPosts
