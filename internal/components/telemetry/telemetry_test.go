package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressNesting(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, true)

	p.Print("top")
	func(p Progress) {
		require.Equal(t, 1, p.Depth())
		p.Printf("nested %d", 1)
		p.Nest().Print("deeper")
		require.Equal(t, 2, p.Nest().Depth())
	}(p.Nest())
	p.Print("back")
	require.Equal(t, 0, p.Depth())

	require.Equal(t, "top\n....nested 1\n........deeper\nback\n", out.String())
}

func TestProgressQuiet(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, false)
	p.Print("hidden")
	p.Nest().Printf("also %s", "hidden")
	require.Empty(t, out.String())

	var zero Progress
	require.False(t, zero.Enabled())
	zero.Print("no writer")
}

func TestScopedAPI(t *testing.T) {
	rec := NewRecorderAPI()
	scoped := NewScopedAPI("reader", rec)

	scoped.ReportWarning("reader.read-file", "a.html")
	scoped.ReportCount("documents", 3)
	NewScopedAPI("outer", scoped).ReportBroken("x")

	warnings := rec.Reports("warning", "reader.read-file")
	require.Len(t, warnings, 1)
	require.Equal(t, "reader: reader.read-file", warnings[0].Id)
	require.Equal(t, []any{"a.html"}, warnings[0].Params)

	counts := rec.Reports("count", "documents")
	require.Len(t, counts, 1)
	require.EqualValues(t, 3, counts[0].Count)

	broken := rec.Reports("broken", "x")
	require.Len(t, broken, 1)
	require.Equal(t, "reader: outer: x", broken[0].Id)
}

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestReportPerfStats(t *testing.T) {
	rec := NewRecorderAPI()
	ReportPerfStats(context.Background(), rec)
	require.NotEmpty(t, rec.Reports("count", "allocated-mb"))
}
