package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/quill-md/quill/cmd/audit"
	"github.com/quill-md/quill/cmd/export"
	"github.com/quill-md/quill/cmd/post"
	"github.com/quill-md/quill/cmd/watch"
	"github.com/quill-md/quill/internal/cache"
	"github.com/quill-md/quill/internal/config"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the quill application
type CLI struct {
	// Global flags
	Overwrite bool `help:"Overwrite existing markdown files when writing posts"`

	// Datasette flags
	Datasette   bool   `help:"Enable Datasette output for exports" default:"true"`
	DatasetteDB string `help:"Path to SQLite database file" default:"./quill.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 168h for 7 days)" default:"168h"`

	New    post.NewCmd      `cmd:"" help:"Create a new post from a title, a draft file or a URL"`
	Audit  audit.AuditCmd   `cmd:"" help:"Report and repair posts with missing frontmatter"`
	Export export.ExportCmd `cmd:"" help:"Export the post inventory to Datasette or JSON"`
	Watch  watch.WatchCmd   `cmd:"" help:"Watch the drafts directories and fill in frontmatter on change"`
	Cache  CacheCmd         `cmd:"" help:"Manage the page fetch cache"`
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached page fetches by source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("quill"),
		kong.Description("A tool to draft, audit and inventory markdown blog posts."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("ContentDir", "./content/posts/")
	viper.SetDefault("DraftsDir", "./content/drafts/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("site.author", "")

	// Datasette defaults
	viper.SetDefault("datasette.enabled", true)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./quill.db")
	viper.SetDefault("datasette.remote_url", "")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "168h") // 7 days

	// Page fetch defaults
	viper.SetDefault("webpage.ratelimit", 2)
	viper.SetDefault("webpage.headful", false)
	viper.SetDefault("covers.maxwidth", 1200)

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("datasette.api_token", "DATASETTE_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("site.author", "QUILL_AUTHOR"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetOverwriteFiles(cli.Overwrite)

	// Update datasette config
	viper.Set("datasette.enabled", cli.Datasette)
	viper.Set("datasette.dbfile", cli.DatasetteDB)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("QUILL_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
