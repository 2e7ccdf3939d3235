package achievements

import (
	"regexp"

	"achrip/pkg/htmlutil"
)

var nonKeyChars = regexp.MustCompile(`[^a-zA-Z \d]+`)

// GenerateKey derives the catalog key of a game title: numeric entities are
// dropped, then everything but ASCII letters, digits and spaces.
//
// Distinct titles may collide on the same key.
func GenerateKey(title string) string {
	return nonKeyChars.ReplaceAllString(htmlutil.StripNumericEntities(title), "")
}
