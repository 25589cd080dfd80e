package sanitize

import (
	"regexp"
	"strings"
)

// referenceMarkers matches citation markers such as '[^1^]', or several of
// them back to back: '[^1^][^2^]'.
var referenceMarkers = regexp.MustCompile(`(\[\^\d+\^\])+`)

// Each of these is replaced in order after the reference markers have been
// stripped. The result can be embedded into a JSON string without escaping.
var replacer = strings.NewReplacer(
	"\r", " ",
	"\n", " ",
	"`", "",
	`"`, "",
	"*", "",
)

// Text strips reference markers, turns line breaks into spaces and removes
// backticks, double quotes and asterisks.
func Text(s string) string {
	s = referenceMarkers.ReplaceAllString(s, "")
	return replacer.Replace(s)
}
