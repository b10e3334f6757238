package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing markdown files should be overwritten
	OverwriteFiles bool
	// ContentDir is where published posts live
	ContentDir string
	// DraftsDir is where drafts live before publishing
	DraftsDir string
	// SiteAuthor is the default author written into new posts
	SiteAuthor string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("ContentDir", "./content/posts/")
	viper.SetDefault("DraftsDir", "./content/drafts/")
	viper.SetDefault("OverwriteFiles", false)

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	ContentDir = viper.GetString("ContentDir")
	DraftsDir = viper.GetString("DraftsDir")
	SiteAuthor = viper.GetString("site.author")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
