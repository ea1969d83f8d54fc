// internal/service/scoring/extract.go

package scoring

import (
	"regexp"
	"strings"
)

// A hashtag token starts at a word boundary: the beginning of the text
// or any character that is neither part of a word nor another '#'.
// Trailing punctuation falls outside the \w run and is dropped.
var hashtagPattern = regexp.MustCompile(`(?:^|[^0-9A-Za-z_#])#([0-9A-Za-z_]+)`)

// ExtractHashtags returns the normalized hashtags found in text:
// lower-cased, leading '#' retained, deduplicated within the text.
// Text without hashtags yields an empty result, which is not an error.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := "#" + strings.ToLower(m[1])
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}
