package achievements

import (
	"fmt"

	"achrip/pkg/htmlutil"
)

// sequenceStart is decremented before every item, so the first item found on
// a page gets sequenceStart-1.
const sequenceStart = 999

// Extract pulls the header and the items out of the text of an achievement
// page. ok is false if the page has no header, in which case it should be
// skipped.
//
// The returned text fields are still entity encoded, see Collection.Decode.
func Extract(text string) (collection Collection, ok bool, err error) {
	record, ok := HeaderSchema.Match(text)
	if !ok {
		return Collection{}, false, nil
	}

	header, err := headerFromRecord(record)
	if err != nil {
		return Collection{}, false, fmt.Errorf("extract header: %w", err)
	}

	records := ItemSchema.MatchAll(text)
	items := make([]Item, len(records))
	sequence := sequenceStart
	for i, r := range records {
		sequence--
		item, err := itemFromRecord(r, sequence)
		if err != nil {
			return Collection{}, false, fmt.Errorf("extract item %d: %w", i, err)
		}
		items[i] = item
	}

	return Collection{Header: header, Items: items}, true, nil
}

func headerFromRecord(r Record) (CollectionHeader, error) {
	rawTitle := r.String(fieldTitle)
	header := CollectionHeader{
		Key:   GenerateKey(rawTitle),
		Title: htmlutil.StripExtraASCII(rawTitle),
	}

	ints := []struct {
		field string
		dest  *int
	}{
		{fieldPercent, &header.Percent},
		{fieldScore, &header.Score},
		{fieldScoreTotal, &header.ScoreTotal},
		{fieldCount, &header.Count},
		{fieldCountTotal, &header.CountTotal},
	}
	for _, f := range ints {
		value, err := r.Int(f.field)
		if err != nil {
			return CollectionHeader{}, err
		}
		*f.dest = value
	}

	return header, nil
}

func itemFromRecord(r Record, sequence int) (Item, error) {
	item := Item{
		Name:        r.String(fieldName),
		Description: r.String(fieldDescription),
		Image:       r.String(fieldImage),
		Sequence:    sequence,
	}

	ints := []struct {
		field string
		dest  *int
	}{
		{fieldScore, &item.Score},
		{fieldMonth, &item.Month},
		{fieldDay, &item.Day},
		{fieldYear, &item.Year},
		{fieldHour, &item.Hour},
		{fieldMinute, &item.Minute},
	}
	for _, f := range ints {
		value, err := r.Int(f.field)
		if err != nil {
			return Item{}, err
		}
		*f.dest = value
	}
	item.Month++

	return item, nil
}

// Decode returns a copy of the collection with the entities in its title,
// item names and item descriptions decoded.
func (c Collection) Decode() (Collection, error) {
	title, err := htmlutil.DecodeEntities(c.Header.Title)
	if err != nil {
		return Collection{}, fmt.Errorf("decode title: %w", err)
	}
	c.Header.Title = title

	items := make([]Item, len(c.Items))
	for i, item := range c.Items {
		item.Name, err = htmlutil.DecodeEntities(item.Name)
		if err != nil {
			return Collection{}, fmt.Errorf("decode item name: %w", err)
		}
		item.Description, err = htmlutil.DecodeEntities(item.Description)
		if err != nil {
			return Collection{}, fmt.Errorf("decode item description: %w", err)
		}
		items[i] = item
	}
	c.Items = items

	return c, nil
}
