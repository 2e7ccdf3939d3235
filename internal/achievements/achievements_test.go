package achievements

import (
	"math/rand"
	"regexp"
	"testing"
	"time"
	_ "time/tzdata"

	"achrip/internal/achievements/pagetest"
	"achrip/internal/components/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	testCases := []struct {
		title    string
		expected string
	}{
		{title: "Foo &#38; Bar!!", expected: "Foo  Bar"},
		{title: "Halo 3", expected: "Halo 3"},
		{title: "Tom Clancy&#39;s Rainbow Six&#174; Vegas", expected: "Tom Clancys Rainbow Six Vegas"},
		{title: "Pok&eacute;mon", expected: "Pokeacutemon"},
		{title: "Gears of War™ 2", expected: "Gears of War 2"},
		{title: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, GenerateKey(test.title), test.title)
	}
}

var keyCharset = regexp.MustCompile(`^[A-Za-z0-9 ]*$`)

func TestGenerateKeyIdempotent(t *testing.T) {
	rndm := rand.New(rand.NewSource(42))
	for range 500 {
		title := testutil.RandomString(rndm, rndm.Intn(40))
		key := GenerateKey(title)
		require.Regexp(t, keyCharset, key, title)
		require.Equal(t, key, GenerateKey(key), title)
	}
}

func TestSchemaCompile(t *testing.T) {
	_, err := Schema{
		Name:     "ok",
		Template: `a{{x}}b{{y}}`,
		Fields:   []Field{{Name: "x", Rule: `\d+`}, {Name: "y", Rule: `.*`}},
	}.Compile()
	require.NoError(t, err)

	_, err = Schema{
		Name:     "undeclared",
		Template: `a{{x}}b{{y}}`,
		Fields:   []Field{{Name: "x", Rule: `\d+`}},
	}.Compile()
	require.Error(t, err)

	_, err = Schema{
		Name:     "unused",
		Template: `a{{x}}`,
		Fields:   []Field{{Name: "x", Rule: `\d+`}, {Name: "y", Rule: `.*`}},
	}.Compile()
	require.Error(t, err)

	_, err = Schema{
		Name:     "repeated",
		Template: `{{x}}{{x}}`,
		Fields:   []Field{{Name: "x", Rule: `\d+`}},
	}.Compile()
	require.Error(t, err)

	_, err = Schema{
		Name:     "bad rule",
		Template: `{{x}}`,
		Fields:   []Field{{Name: "x", Rule: `(`}},
	}.Compile()
	require.Error(t, err)
}

func TestSchemaMatch(t *testing.T) {
	schema := Schema{
		Name:     "pairs",
		Template: `<{{key}}={{value}}>`,
		Fields:   []Field{{Name: "key", Rule: `\w+`}, {Name: "value", Rule: `\d+`}},
	}.MustCompile()

	record, ok := schema.Match("junk <a=1> <b=2>")
	require.True(t, ok)
	require.Equal(t, Record{"key": "a", "value": "1"}, record)

	value, err := record.Int("value")
	require.NoError(t, err)
	require.Equal(t, 1, value)
	_, err = record.Int("key")
	require.Error(t, err)

	records := schema.MatchAll("<a=1><b=2> <c=x> <d=4>")
	require.Equal(t, []Record{
		{"key": "a", "value": "1"},
		{"key": "b", "value": "2"},
		{"key": "d", "value": "4"},
	}, records)

	_, ok = schema.Match("nothing here")
	require.False(t, ok)
	require.Empty(t, schema.MatchAll("nothing here"))
}

func TestExtract(t *testing.T) {
	page := pagetest.Page(
		pagetest.Header{
			Title: "Test Game&#174;", Percent: 50,
			Score: 10, ScoreTotal: 20, Count: 1, CountTotal: 2,
		},
		pagetest.Item{
			Image: "http://tiles.xbox.com/tiles/aa/first.jpg",
			Name:  "First!\n", Description: "Do the &quot;thing&quot;",
			Score: 10, Year: 2021, Month: 5, Day: 3, Hour: 12, Minute: 30,
		},
		pagetest.Item{
			Name: "Second", Description: "Again",
			Score: 5, Year: 2021, Month: 1, Day: 31, Hour: 0, Minute: 5,
		},
	)

	collection, ok, err := Extract(page)
	require.NoError(t, err)
	require.True(t, ok)

	expectedHeader := CollectionHeader{
		Key:        "Test Game",
		Title:      "Test Game&#174;",
		Percent:    50,
		Score:      10,
		ScoreTotal: 20,
		Count:      1,
		CountTotal: 2,
	}
	if diff := cmp.Diff(expectedHeader, collection.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	expectedItems := []Item{
		{
			Name: "First!", Description: "Do the &quot;thing&quot;",
			Image: "http://tiles.xbox.com/tiles/aa/first.jpg",
			Score: 10, Sequence: 998,
			Year: 2021, Month: 5, Day: 3, Hour: 12, Minute: 30,
		},
		{
			Name: "Second", Description: "Again",
			Image: "http://tiles.xbox.com/tiles/xx/item1.jpg",
			Score: 5, Sequence: 997,
			Year: 2021, Month: 1, Day: 31, Hour: 0, Minute: 5,
		},
	}
	if diff := cmp.Diff(expectedItems, collection.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	decoded, err := collection.Decode()
	require.NoError(t, err)
	require.Equal(t, "Test Game®", decoded.Header.Title)
	require.Equal(t, `Do the "thing"`, decoded.Items[0].Description)
	require.Equal(t, `Do the &quot;thing&quot;`, collection.Items[0].Description)
}

func TestExtractNoHeader(t *testing.T) {
	page := pagetest.Item{Name: "orphan", Year: 2020, Month: 1, Day: 1}.HTML(0)
	_, ok, err := Extract(page)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = Extract("<html></html>")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExtractHeaderWithoutItems(t *testing.T) {
	collection, ok, err := Extract(pagetest.Page(pagetest.Header{Title: "Empty", ScoreTotal: 100, CountTotal: 10}))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Empty", collection.Header.Key)
	require.Empty(t, collection.Items)
}

func TestDecodeInvalidEntity(t *testing.T) {
	collection, ok, err := Extract(pagetest.Page(
		pagetest.Header{Title: "Game"},
		pagetest.Item{Name: "bad &#9999999999;", Year: 2020, Month: 1, Day: 1},
	))
	require.NoError(t, err)
	require.True(t, ok)

	_, err = collection.Decode()
	require.Error(t, err)
}

func TestItemFormatting(t *testing.T) {
	item := Item{Year: 2020, Month: 1, Day: 2, Hour: 9, Minute: 5}
	require.Equal(t, "2020 01 02 09:05:00", item.Timestamp())
	require.Equal(t, Date{2020, 1, 2}, item.Date())
	require.Equal(t, time.Date(2020, time.January, 2, 9, 5, 0, 0, time.UTC), item.Time())

	require.Negative(t, Date{2020, 1, 2}.Compare(Date{2020, 2, 1}))
	require.Positive(t, Date{2021, 1, 1}.Compare(Date{2020, 12, 31}))
	require.Zero(t, Date{2020, 5, 5}.Compare(Date{2020, 5, 5}))
}

func TestItemIn(t *testing.T) {
	item := Item{Name: "late", Year: 2021, Month: 1, Day: 1, Hour: 3, Minute: 15}
	require.Equal(t, item, item.In(nil))
	require.Equal(t, item, item.In(time.UTC))

	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	converted := item.In(la)
	require.Equal(t, "2020 12 31 19:15:00", converted.Timestamp())
	require.Equal(t, "late", converted.Name)
}

func TestAggregate(t *testing.T) {
	catalog := Catalog{
		"Game A": {
			Header: CollectionHeader{Key: "Game A", Title: "Game A"},
			Items: []Item{
				{Score: 10, Year: 2020, Month: 1, Day: 1},
				{Score: 15, Year: 2020, Month: 1, Day: 1},
				{Score: 20, Year: 2020, Month: 1, Day: 2},
			},
		},
		"Game B": {
			Header: CollectionHeader{Key: "Game B", Title: "Game: B"},
			Items: []Item{
				{Score: 5, Year: 2020, Month: 1, Day: 1},
			},
		},
	}

	totals := Aggregate(catalog)
	require.Equal(t, DayTotals{
		{2020, 1, 1, "Game A"}: 25,
		{2020, 1, 2, "Game A"}: 20,
		{2020, 1, 1, "Game B"}: 5,
	}, totals)

	var keys []string
	for _, k := range totals.Keys() {
		keys = append(keys, k.String())
	}
	require.Equal(t, []string{
		"2020--01--01--Game A",
		"2020--01--01--Game B",
		"2020--01--02--Game A",
	}, keys)
}

func TestCatalogKeys(t *testing.T) {
	catalog := Catalog{
		"b": {Items: make([]Item, 2)},
		"a": {Items: make([]Item, 1)},
		"c": {},
	}
	require.Equal(t, []string{"a", "b", "c"}, catalog.Keys())
	require.Equal(t, 3, catalog.ItemCount())
}

func TestIcons(t *testing.T) {
	icons := ParseIcons(pagetest.GamesPage(
		pagetest.Game{Title: "Halo 3", Icon: "http://tiles.xbox.com/tiles/aa/halo.jpg"},
		pagetest.Game{Title: "Tom Clancy&#39;s EndWar", Icon: "http://tiles.xbox.com/tiles/bb/endwar.jpg"},
	))
	require.Equal(t, Icons{
		"Halo 3":             "http://tiles.xbox.com/tiles/aa/halo.jpg",
		"Tom Clancys EndWar": "http://tiles.xbox.com/tiles/bb/endwar.jpg",
	}, icons)

	icon, exact := icons.Lookup("Halo 3")
	require.True(t, exact)
	require.Equal(t, "http://tiles.xbox.com/tiles/aa/halo.jpg", icon)

	icon, exact = icons.Lookup("Tom Clancys EndWarr")
	require.False(t, exact)
	require.Equal(t, "http://tiles.xbox.com/tiles/bb/endwar.jpg", icon)

	icon, exact = icons.Lookup("Something Else Entirely")
	require.False(t, exact)
	require.Empty(t, icon)
}
