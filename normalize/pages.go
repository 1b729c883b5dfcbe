package normalize

import (
	"regexp"
	"strings"
)

var hyphenRun = regexp.MustCompile(`-{2,}`)

// CollapsePageRange normalizes a pages value like "123--145" to
// "123-145". Runs of two or more hyphens collapse to one; a value with
// a single hyphen is left untouched.
func CollapsePageRange(value string) string {
	if strings.Count(value, "-") < 2 {
		return value
	}
	return hyphenRun.ReplaceAllString(value, "-")
}
