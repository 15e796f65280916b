package github

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reHTMLComments = regexp.MustCompile(`<!--[\s\S]*?-->`)
	reInvisible    = regexp.MustCompile("[\u200B\u200C\u200D\uFEFF\u00AD\u202A-\u202E\u2066-\u2069]")
	reControl      = regexp.MustCompile("[\u0000-\u0008\u000B\u000C\u000E-\u001F\u007F-\u009F]")
	reMdImageAlt   = regexp.MustCompile(`!\[[^\]]*\]\(`)
	reMdLinkTitle  = regexp.MustCompile(`(\[[^\]]*\]\([^)\s]+)\s+("[^"]*"|'[^']*')`)
	reHiddenAttr   = regexp.MustCompile(`\s(?:alt|title|aria-label|placeholder|data-[a-zA-Z0-9-]+)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	reNumericRef   = regexp.MustCompile(`&#(x[0-9a-fA-F]+|\d+);`)
	reGitHubToken  = regexp.MustCompile(`\b(?:gh[pousr]_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{11,221})\b`)
)

// SanitizeContent removes text a reader of the rendered comment would not see
// (HTML comments, invisible characters, hidden attributes) and redacts GitHub tokens.
func SanitizeContent(s string) string {
	if s == "" {
		return s
	}
	s = reHTMLComments.ReplaceAllString(s, "")
	s = reInvisible.ReplaceAllString(s, "")
	s = reControl.ReplaceAllString(s, "")
	s = reMdImageAlt.ReplaceAllString(s, "![](")
	s = reMdLinkTitle.ReplaceAllString(s, "$1")
	s = reHiddenAttr.ReplaceAllString(s, "")
	s = reNumericRef.ReplaceAllStringFunc(s, decodePrintableRef)
	s = reGitHubToken.ReplaceAllString(s, "[REDACTED_GITHUB_TOKEN]")
	return strings.TrimSpace(s)
}

// decodePrintableRef turns "&#65;" or "&#x41;" into "A"; non-printable references are dropped.
func decodePrintableRef(ref string) string {
	digits := strings.TrimSuffix(strings.TrimPrefix(ref, "&#"), ";")
	base := 10
	if strings.HasPrefix(digits, "x") {
		digits, base = digits[1:], 16
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n < 32 || n > 126 {
		return ""
	}
	return string(rune(n))
}
