package achievements

import (
	"fmt"
	"os"
	"slices"

	"github.com/antzucaro/matchr"
)

// fuzzyIconThreshold is the lowest Jaro-Winkler similarity accepted when a
// key has no exact icon.
const fuzzyIconThreshold = 0.9

// Icons maps game keys to the URI of the game's icon.
type Icons map[string]string

// ParseIcons extracts the icons out of the text of the games list page, a
// later row wins over an earlier row with the same key.
func ParseIcons(text string) Icons {
	icons := Icons{}
	for _, r := range GameSchema.MatchAll(text) {
		icons[GenerateKey(r.String(fieldTitle))] = r.String(fieldIcon)
	}
	return icons
}

func ReadIcons(path string) (Icons, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games list: %w", err)
	}
	return ParseIcons(string(contents)), nil
}

// Lookup returns the icon of key, falling back to the icon of the most
// similar key when there is no exact entry.
func (i Icons) Lookup(key string) (icon string, exact bool) {
	icon, ok := i[key]
	if ok {
		return icon, true
	}

	keys := make([]string, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var best float64
	for _, k := range keys {
		similarity := matchr.JaroWinkler(key, k, false)
		if similarity >= fuzzyIconThreshold && similarity > best {
			best = similarity
			icon = i[k]
		}
	}
	return icon, false
}
