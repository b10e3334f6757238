// Package audit scans markdown posts for missing frontmatter and fills in
// inferred titles and dates.
package audit

// AuditCmd represents the audit command
type AuditCmd struct {
	InputDirs []string `short:"d" help:"Directories containing markdown posts to audit (can specify multiple)" required:""`
	Recursive bool     `short:"r" help:"Scan subdirectories recursively" default:"false"`
	Fix       bool     `help:"Write inferred titles and dates back to the posts" default:"false"`
	DryRun    bool     `help:"Show what would be fixed without making changes" default:"false"`
}

func (a *AuditCmd) Run() error {
	for _, inputDir := range a.InputDirs {
		opts := Options{
			InputDir:  inputDir,
			Recursive: a.Recursive,
			Fix:       a.Fix,
			DryRun:    a.DryRun,
		}

		if err := AuditNotesFunc(opts); err != nil {
			return err
		}
	}

	return nil
}

var AuditNotesFunc = AuditNotes
