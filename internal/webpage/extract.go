package webpage

import (
	"html"
	"regexp"
	"strings"
)

// Metadata extraction works on raw HTML with named patterns instead of a
// full DOM parse. Attribute order inside meta tags varies between sites,
// so tags are located first and their attributes picked apart separately.
var (
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaTagPattern  = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	linkTagPattern  = regexp.MustCompile(`(?is)<link\b[^>]*>`)

	metaKeyPattern = regexp.MustCompile(`(?i)\b(?:name|property)\s*=\s*["']([^"']*)["']`)
	contentPattern = regexp.MustCompile(`(?i)\bcontent\s*=\s*["']([^"']*)["']`)
	relPattern     = regexp.MustCompile(`(?i)\brel\s*=\s*["']([^"']*)["']`)
	hrefPattern    = regexp.MustCompile(`(?i)\bhref\s*=\s*["']([^"']*)["']`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ExtractMetadata pulls the title, description and Open Graph fields out of
// an HTML document. Open Graph values win over their plain HTML
// equivalents, and a rel=canonical link wins over og:url.
func ExtractMetadata(pageURL, htmlContent string) *Page {
	page := &Page{URL: pageURL}

	if m := titleTagPattern.FindStringSubmatch(htmlContent); m != nil {
		page.Title = cleanText(m[1])
	}

	var metaDescription string
	for _, tag := range metaTagPattern.FindAllString(htmlContent, -1) {
		key := firstMatch(metaKeyPattern, tag)
		if key == "" {
			continue
		}
		content := cleanText(firstMatch(contentPattern, tag))
		if content == "" {
			continue
		}

		switch strings.ToLower(key) {
		case "og:title":
			page.Title = content
		case "og:description":
			page.Description = content
		case "description":
			metaDescription = content
		case "og:image":
			page.Image = content
		case "og:site_name":
			page.SiteName = content
		case "og:url":
			if page.Canonical == "" {
				page.Canonical = content
			}
		}
	}
	if page.Description == "" {
		page.Description = metaDescription
	}

	for _, tag := range linkTagPattern.FindAllString(htmlContent, -1) {
		if !strings.EqualFold(firstMatch(relPattern, tag), "canonical") {
			continue
		}
		if href := firstMatch(hrefPattern, tag); href != "" {
			page.Canonical = href
			break
		}
	}

	return page
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// cleanText unescapes HTML entities and collapses runs of whitespace.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
