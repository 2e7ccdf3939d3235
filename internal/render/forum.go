package render

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"text/template"

	"achrip/internal/achievements"
	"achrip/internal/components/assert"
	"achrip/internal/components/telemetry"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"
)

const (
	report_forum_icon_fuzzy   = "forum.icon-fuzzy"
	report_forum_icon_missing = "forum.icon-missing"
)

// DefaultScoreIcon is the gamerscore icon used in the post.
const DefaultScoreIcon = "http://live.xbox.com/xweb/lib/images/G_Icon_External.gif"

// AcquiredLayout is the layout of the acquisition date of an item in the post.
const AcquiredLayout = "January 02, 2006 at 03:04PM"

//go:embed forum.tmpl
var forumTemplateText string

var forumTemplate = template.Must(
	template.New("forum").
		Funcs(template.FuncMap{
			"acquired": func(item achievements.Item) string {
				return item.Time().Format(AcquiredLayout)
			},
			"commify": func(n int64) string {
				return humanize.Comma(n)
			},
		}).
		Parse(forumTemplateText),
)

type ForumOptions struct {
	// ScoreIcon is the image shown next to every score, DefaultScoreIcon if
	// empty.
	ScoreIcon string
	// Icons maps collection keys to game icons.
	Icons achievements.Icons
	// Gamerscore is the current gamerscore of the player, -1 if unknown.
	Gamerscore int64
}

// ForumSection is the part of the post about a single game.
type ForumSection struct {
	Header       achievements.CollectionHeader
	Icon         string
	ScorePercent string
	// Items are the items of the latest day in the collection, by descending
	// sequence.
	Items    []achievements.Item
	DayTotal int
}

// ForumPost is everything the post shows.
type ForumPost struct {
	ScoreIcon     string
	Sections      []ForumSection
	ShowDayTotals bool
	Increase      int
	Gamerscore    int64
}

// Forum builds the forum post of a catalog.
type Forum struct {
	tel      telemetry.API
	progress telemetry.Progress
	options  ForumOptions
}

func NewForum(tel telemetry.API, progress telemetry.Progress, options ForumOptions) Forum {
	assert.NotNil(tel)
	if options.ScoreIcon == "" {
		options.ScoreIcon = DefaultScoreIcon
	}
	return Forum{
		tel:      telemetry.NewScopedAPI("render", tel),
		progress: progress,
		options:  options,
	}
}

// scorePercent is the share of the total score earned, rounded to one decimal
// place.
func scorePercent(score, total int) string {
	if total == 0 {
		return "0.0"
	}
	percent := float64(score) / float64(total) * 100
	return strconv.FormatFloat(math.Round(percent*10)/10, 'f', 1, 64)
}

// LatestItems returns the items acquired on the latest date of the
// collection, by descending sequence.
func LatestItems(items []achievements.Item) []achievements.Item {
	if len(items) == 0 {
		return nil
	}

	latest := items[0].Date()
	for _, item := range items[1:] {
		if item.Date().Compare(latest) > 0 {
			latest = item.Date()
		}
	}

	var out []achievements.Item
	for _, item := range items {
		if item.Date() == latest {
			out = append(out, item)
		}
	}
	slices.SortStableFunc(out, func(a, b achievements.Item) int {
		return b.Sequence - a.Sequence
	})
	return out
}

func (f Forum) icon(key string) string {
	icon, exact := f.options.Icons.Lookup(key)
	switch {
	case exact:
	case icon != "":
		f.tel.ReportWarning(report_forum_icon_fuzzy, key, icon)
	default:
		f.tel.ReportWarning(report_forum_icon_missing, key)
	}
	return icon
}

// Build assembles the post, collections are visited in key order.
func (f Forum) Build(catalog achievements.Catalog) ForumPost {
	post := ForumPost{
		ScoreIcon:     f.options.ScoreIcon,
		ShowDayTotals: len(catalog) > 1,
		Gamerscore:    f.options.Gamerscore,
	}

	for _, key := range catalog.Keys() {
		collection := catalog[key]
		f.progress.Printf("ForumPost: Processing %s...", collection.Header.Title)

		section := ForumSection{
			Header:       collection.Header,
			Icon:         f.icon(key),
			ScorePercent: scorePercent(collection.Header.Score, collection.Header.ScoreTotal),
		}

		f.progress.Print("ForumPost: sorting achievements...")
		section.Items = LatestItems(collection.Items)

		nested := f.progress.Nest()
		for _, item := range section.Items {
			nested.Printf("ForumPost: processing %s", item.Name)
			section.DayTotal += item.Score
		}

		post.Increase += section.DayTotal
		post.Sections = append(post.Sections, section)
	}

	return post
}

// Write renders the post of catalog into w.
func (f Forum) Write(ctx context.Context, w io.Writer, catalog achievements.Catalog) (ForumPost, error) {
	_, span := tracer.Start(ctx, "Forum.Write")
	defer span.End()

	post := f.Build(catalog)
	span.SetAttributes(
		attribute.Int("sections", len(post.Sections)),
		attribute.Int("increase", post.Increase),
	)

	if err := forumTemplate.Execute(w, post); err != nil {
		return ForumPost{}, fmt.Errorf("render forum post: %w", err)
	}
	f.progress.Print("ForumPost: completed....")

	return post, nil
}

func (f Forum) WriteFile(ctx context.Context, path string, catalog achievements.Catalog) (ForumPost, error) {
	var post ForumPost
	err := WriteFile(path, func(w io.Writer) error {
		var err error
		post, err = f.Write(ctx, w, catalog)
		return err
	})
	return post, err
}
