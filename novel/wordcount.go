package novel

import (
	"regexp"
	"strings"
)

// Dashes and paragraph ends separate words even without surrounding spaces,
// while markup tags and authorial notes or comments do not count at all.
var (
	wordLimits   = regexp.MustCompile(`--|—|–|</p>`)
	nonWordText  = regexp.MustCompile(`<note>.*?</note>|<comment>.*?</comment>|<.+?>`)
)

// CountWords counts the prose words in marked-up section content.
func CountWords(text string) int {
	text = wordLimits.ReplaceAllString(text, " ")
	text = nonWordText.ReplaceAllString(text, "")
	return len(strings.Fields(text))
}
