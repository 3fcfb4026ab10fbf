package htmlutil

import (
	"regexp"
	"strings"
)

// tagPattern matches HTML tags including self-closing tags.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// multipleSpacesPattern matches multiple consecutive whitespace characters.
var multipleSpacesPattern = regexp.MustCompile(`\s{2,}`)

// StripTags removes all HTML tags from a string and normalizes whitespace.
// Block-level tags (p, div, br, li, headings) become newlines so paragraph
// structure survives, then remaining tags are stripped.
func StripTags(html string) string {
	if html == "" {
		return ""
	}

	blockTags := []string{"</p>", "</div>", "<br>", "<br/>", "<br />", "</li>", "</h1>", "</h2>", "</h3>", "</h4>", "</h5>", "</h6>"}
	result := html
	for _, tag := range blockTags {
		result = strings.ReplaceAll(result, tag, "\n")
		result = strings.ReplaceAll(result, strings.ToUpper(tag), "\n")
	}

	result = tagPattern.ReplaceAllString(result, "")
	result = decodeHTMLEntities(result)

	// Collapse runs of spaces within each line but keep the newlines that
	// came from block tags.
	lines := strings.Split(result, "\n")
	nonEmptyLines := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multipleSpacesPattern.ReplaceAllString(line, " "))
		if line != "" {
			nonEmptyLines = append(nonEmptyLines, line)
		}
	}

	return strings.Join(nonEmptyLines, "\n")
}

// Excerpt strips tags from html and truncates the result to at most n runes,
// appending an ellipsis when truncated. Used for memo previews in list
// responses.
func Excerpt(html string, n int) string {
	text := strings.ReplaceAll(StripTags(html), "\n", " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// decodeHTMLEntities decodes common HTML entities to their character
// equivalents.
func decodeHTMLEntities(s string) string {
	replacements := []struct {
		entity string
		char   string
	}{
		{"&nbsp;", " "},
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&apos;", "'"},
		{"&hellip;", "…"},
		{"&rsquo;", "’"},
		{"&lsquo;", "‘"},
		{"&rdquo;", "”"},
		{"&ldquo;", "“"},
	}

	result := s
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.entity, r.char)
	}

	return result
}
