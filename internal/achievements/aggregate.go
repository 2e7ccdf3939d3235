package achievements

import (
	"fmt"
	"slices"
	"strings"
)

// DayKey identifies the score earned in one game on one day. Game is the
// catalog key of the game, which holds no ';'.
type DayKey struct {
	Year  int
	Month int
	Day   int
	Game  string
}

func (k DayKey) String() string {
	return fmt.Sprintf("%d--%02d--%02d--%s", k.Year, k.Month, k.Day, k.Game)
}

// DayTotals is the summed item score per game per day.
type DayTotals map[DayKey]int

// Aggregate sums the score of every item in the catalog by day and game
// key.
func Aggregate(catalog Catalog) DayTotals {
	totals := DayTotals{}
	for game, collection := range catalog {
		for _, item := range collection.Items {
			key := DayKey{
				Year:  item.Year,
				Month: item.Month,
				Day:   item.Day,
				Game:  game,
			}
			totals[key] += item.Score
		}
	}
	return totals
}

// Keys returns the keys ordered by their string form.
func (d DayTotals) Keys() []DayKey {
	keys := make([]DayKey, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b DayKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}
