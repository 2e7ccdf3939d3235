// Package app wires the reader, the renderers and the optional archive and
// mailer into a single run.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"achrip/internal/achievements"
	"achrip/internal/components/assert"
	"achrip/internal/components/chrono"
	"achrip/internal/components/telemetry"
	"achrip/internal/history"
	"achrip/internal/notify"
	"achrip/internal/render"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_runner_icons   = "runner.icons"
	report_runner_history = "runner.history"
)

var tracer = telemetry.Tracer("achrip.app")

// ScoreSource gives the current gamerscore of a player, -1 if unknown.
type ScoreSource interface {
	Score(ctx context.Context, gamertag string) int64
}

type Runner struct {
	config   Config
	tel      telemetry.API
	progress telemetry.Progress
	scores   ScoreSource
	history  *history.Store
	mailer   *notify.Mailer
}

func NewRunner(config Config, tel telemetry.API, progress telemetry.Progress, scores ScoreSource) Runner {
	assert.NotNil(tel)
	assert.NotNil(scores)
	assert.NotEmptyStr(config.Pattern)

	return Runner{
		config:   config,
		tel:      telemetry.NewScopedAPI("app", tel),
		progress: progress,
		scores:   scores,
	}
}

// WithHistory archives every run into store.
func (r Runner) WithHistory(store history.Store) Runner {
	r.history = &store
	return r
}

// WithMailer mails the forum post after every run.
func (r Runner) WithMailer(mailer notify.Mailer) Runner {
	r.mailer = &mailer
	return r
}

func (r Runner) reader() (achievements.Reader, error) {
	clock, err := chrono.NewStandardImpl(r.config.Timezone)
	if err != nil {
		return achievements.Reader{}, fmt.Errorf("load timezone %q: %w", r.config.Timezone, err)
	}
	return achievements.NewReader(r.tel, r.progress, achievements.ReaderOptions{
		Pattern:  r.config.Pattern,
		Exclude:  []string{filepath.Base(r.config.GamesFile)},
		Location: clock.Location(),
	}), nil
}

// Catalog reads the pages in the configured directory.
func (r Runner) Catalog(ctx context.Context) (achievements.Catalog, achievements.Stats, error) {
	reader, err := r.reader()
	if err != nil {
		return nil, achievements.Stats{}, err
	}
	return reader.Read(ctx, r.config.Dir)
}

// Icons reads the games list, a missing or unreadable list gives no icons.
func (r Runner) Icons() achievements.Icons {
	icons, err := achievements.ReadIcons(r.config.GamesPath())
	if err != nil {
		r.tel.ReportWarning(report_runner_icons, err)
		return achievements.Icons{}
	}
	return icons
}

type Summary struct {
	Stats       achievements.Stats
	Collections int
	Increase    int
	Gamerscore  int64
	// RunID is the id of the archived run, empty if runs are not archived.
	RunID  string
	Mailed bool
}

// Run reads the pages, writes the CSV sheet and the forum post, then
// archives and mails the result when configured to.
func (r Runner) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Runner.Run")
	defer span.End()

	fail := func(err error) (Summary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Summary{}, err
	}

	icons := r.Icons()
	catalog, stats, err := r.Catalog(ctx)
	if err != nil {
		return fail(err)
	}
	summary := Summary{
		Stats:       stats,
		Collections: len(catalog),
	}

	r.progress.Print("Creating CSV File...")
	err = render.WriteCSVFile(ctx, r.config.CSVFile, catalog, r.progress.Nest())
	if err != nil {
		return fail(err)
	}

	r.progress.Print("Creating forum post...")
	summary.Gamerscore = r.scores.Score(ctx, r.config.Gamertag)
	forum := render.NewForum(r.tel, r.progress.Nest(), render.ForumOptions{
		ScoreIcon:  r.config.ScoreIcon,
		Icons:      icons,
		Gamerscore: summary.Gamerscore,
	})

	post := &bytes.Buffer{}
	forumPost, err := forum.Write(ctx, post, catalog)
	if err != nil {
		return fail(err)
	}
	summary.Increase = forumPost.Increase
	err = render.WriteFile(r.config.ForumFile, func(w io.Writer) error {
		_, err := w.Write(post.Bytes())
		return err
	})
	if err != nil {
		return fail(err)
	}

	if r.history != nil {
		run, err := r.history.Save(ctx, history.SaveRequest{
			Gamertag:   r.config.Gamertag,
			Gamerscore: summary.Gamerscore,
			Increase:   summary.Increase,
			Catalog:    catalog,
		})
		if err != nil {
			r.tel.ReportWarning(report_runner_history, err)
		} else {
			summary.RunID = run.ID
		}
	}

	if r.mailer != nil {
		summary.Mailed = r.mailer.SendForumPost(ctx, post.String()) == nil
	}

	span.SetAttributes(
		attribute.Int("collections", summary.Collections),
		attribute.Int("increase", summary.Increase),
		attribute.Int64("gamerscore", summary.Gamerscore),
	)
	telemetry.ReportPerfStats(ctx, r.tel)

	return summary, nil
}
