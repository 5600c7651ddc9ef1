package lesson

import (
	"path"
	"regexp"
	"strings"

	"coursecheck/internal/link"
)

var (
	slideSeparator = regexp.MustCompile(`(?m)^\n?[ \t]*---[ \t]*$`)
	checkPattern   = regexp.MustCompile("```check[ \\t]*\\n([\\s\\S]*?)\\n```")
	emptyAlt       = regexp.MustCompile(`!\[\s*\]\(`)
	imagePattern   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// CheckLinkLabel is the text of the link appended after each check block.
const CheckLinkLabel = "▶ Check"

// SplitSlides splits markdown on lines holding only "---". Slides are
// trimmed and empty ones dropped.
func SplitSlides(markdown string) []string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	var slides []string
	for _, part := range slideSeparator.Split(markdown, -1) {
		if part = strings.TrimSpace(part); part != "" {
			slides = append(slides, part)
		}
	}
	return slides
}

// CheckBlocks returns the bodies of fenced check blocks in order.
func CheckBlocks(markdown string) []string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	var blocks []string
	for _, m := range checkPattern.FindAllStringSubmatch(markdown, -1) {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// InjectCheckLinks keeps every fenced check block and appends a link that
// runs it through the from-block check.
func InjectCheckLinks(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	return checkPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		raw := checkPattern.FindStringSubmatch(match)[1]
		return match + "\n[" + CheckLinkLabel + "](" + link.BuildCheckLink(raw) + ")\n"
	})
}

// PreprocessMediaLinks gives images an alt text and rewrites bare image file
// names to search:<name> so they resolve anywhere in the project. URLs,
// special schemes, and paths containing a folder are left alone.
func PreprocessMediaLinks(markdown string) string {
	if markdown == "" {
		return markdown
	}
	markdown = emptyAlt.ReplaceAllString(markdown, "![img](")
	return imagePattern.ReplaceAllStringFunc(markdown, func(match string) string {
		m := imagePattern.FindStringSubmatch(match)
		target := strings.TrimSpace(m[2])
		if target == "" || hasSchemePrefix(target) || strings.Contains(target, "/") {
			return match
		}
		name := strings.TrimSuffix(target, path.Ext(target))
		return "![" + m[1] + "](search:" + name + ")"
	})
}

func hasSchemePrefix(target string) bool {
	lower := strings.ToLower(target)
	for _, prefix := range []string{"http://", "https://", "file://", "search:", "package:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
