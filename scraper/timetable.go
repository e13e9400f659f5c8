package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a queryable document from raw timetable markup.
func Parse(markup string) (*goquery.Document, error) {
	return ParseReader(strings.NewReader(markup))
}

// ParseReader is Parse for a stream.
func ParseReader(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &Error{Kind: KindMarkupParse, Err: err}
	}
	return doc, nil
}

// Extractor decodes the day tables of a parsed export.
type Extractor struct {
	Locator TableLocator
}

// NewExtractor returns an Extractor using the positional table layout.
func NewExtractor() *Extractor {
	return &Extractor{Locator: NthChildLocator{}}
}

// ExtractEntries decodes every data row of the five day tables. The first
// failure stops extraction and nothing is returned with it.
func (x *Extractor) ExtractEntries(doc *goquery.Document) ([]DayEntries, error) {
	locator := x.Locator
	if locator == nil {
		locator = NthChildLocator{}
	}

	tables, err := DayTables(doc, locator)
	if err != nil {
		return nil, err
	}

	days := make([]DayEntries, 0, len(tables))
	for i, tbody := range tables {
		day := Weekdays[i]
		entries, err := decodeRows(RowsForDay(tbody))
		if err != nil {
			return nil, fmt.Errorf("%s table, %w", strings.ToLower(day.String()), err)
		}
		days = append(days, DayEntries{Day: day, Entries: entries})
	}
	return days, nil
}

func decodeRows(rows *goquery.Selection) ([]Entry, error) {
	entries := make([]Entry, 0, rows.Length())
	for i := range rows.Nodes {
		entry, err := DecodeRow(CellTexts(rows.Eq(i)))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExtractEntries decodes a parsed export using the positional table layout.
func ExtractEntries(doc *goquery.Document) ([]DayEntries, error) {
	return NewExtractor().ExtractEntries(doc)
}

// ScrapeTimetable parses markup and decodes all five day tables.
func ScrapeTimetable(markup string) ([]DayEntries, error) {
	doc, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	return ExtractEntries(doc)
}
