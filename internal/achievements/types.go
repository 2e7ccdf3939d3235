package achievements

import (
	"fmt"
	"slices"
	"time"
)

// CollectionHeader is the summary of a single game, one per parsed page.
// Earned values are not checked against their totals.
type CollectionHeader struct {
	Key        string
	Title      string
	Percent    int
	Score      int
	ScoreTotal int
	Count      int
	CountTotal int
}

// Date is a calendar day as it appears on an achievement page.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return d.Year - other.Year
	}
	if d.Month != other.Month {
		return d.Month - other.Month
	}
	return d.Day - other.Day
}

// Item is a single unlocked achievement.
type Item struct {
	Name        string
	Description string
	Image       string
	Score       int
	// Sequence decreases in the order items are found on the page, it is only
	// used to order items that share a timestamp.
	Sequence int

	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

func (i Item) Date() Date {
	return Date{Year: i.Year, Month: i.Month, Day: i.Day}
}

func (i Item) Time() time.Time {
	return time.Date(i.Year, time.Month(i.Month), i.Day, i.Hour, i.Minute, 0, 0, time.UTC)
}

// Timestamp renders the acquisition time as `yyyy mm dd HH:MM:00`.
func (i Item) Timestamp() string {
	return fmt.Sprintf(
		"%d %02d %02d %02d:%02d:00",
		i.Year, i.Month, i.Day, i.Hour, i.Minute,
	)
}

// In returns a copy of the item with its acquisition time, which is read as
// UTC, converted into loc.
func (i Item) In(loc *time.Location) Item {
	if loc == nil || loc == time.UTC {
		return i
	}
	t := i.Time().In(loc)
	i.Year = t.Year()
	i.Month = int(t.Month())
	i.Day = t.Day()
	i.Hour = t.Hour()
	i.Minute = t.Minute()
	return i
}

// Collection is a header together with its items in page order.
type Collection struct {
	Header CollectionHeader
	Items  []Item
}

// Catalog maps generated keys to collections.
type Catalog map[string]Collection

// Keys returns the keys of the catalog in lexicographic order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (c Catalog) ItemCount() int {
	count := 0
	for _, collection := range c {
		count += len(collection.Items)
	}
	return count
}
