package post

import "github.com/quill-md/quill/internal/tui"

// Templates lists the post shapes quill new can produce. Key is what
// --template accepts and what the interactive picker returns.
var Templates = []tui.Template{
	{
		Key:         "post",
		Name:        "Post",
		Description: "A standard article with title, date and tags",
	},
	{
		Key:         "link",
		Name:        "Link",
		Description: "A link post pointing at a page elsewhere, quoting its description",
	},
	{
		Key:         "til",
		Name:        "TIL",
		Description: "A short today-I-learned note, tagged til",
	},
}

func templateByKey(key string) (tui.Template, bool) {
	for _, tmpl := range Templates {
		if tmpl.Key == key {
			return tmpl, true
		}
	}
	return tui.Template{}, false
}

func templateKeys() []string {
	keys := make([]string, len(Templates))
	for i, tmpl := range Templates {
		keys[i] = tmpl.Key
	}
	return keys
}
