package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// TableLocator finds the table body holding the rows for one weekday.
type TableLocator interface {
	LocateDayTable(doc *goquery.Document, day Weekday) (*goquery.Selection, error)
}

// NthChildLocator finds day tables by position under <body>: Monday is the
// 3rd child, Tuesday the 5th, and so on up to Friday at the 11th.
type NthChildLocator struct{}

func (NthChildLocator) LocateDayTable(doc *goquery.Document, day Weekday) (*goquery.Selection, error) {
	selector := fmt.Sprintf("body > table:nth-child(%d)", 2*int(day)+3)
	tbody := doc.Find(selector).First().ChildrenFiltered("tbody").First()
	if tbody.Length() == 0 {
		return nil, &Error{Kind: KindTableNotFound, Text: fmt.Sprintf("%s (%s > tbody)", day, selector)}
	}
	return tbody, nil
}

// DayTables returns the five day table bodies, Monday first.
func DayTables(doc *goquery.Document, locator TableLocator) ([]*goquery.Selection, error) {
	tables := make([]*goquery.Selection, 0, len(Weekdays))
	for _, day := range Weekdays {
		tbody, err := locator.LocateDayTable(doc, day)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tbody)
	}
	return tables, nil
}

// RowsForDay returns the rows of a table body without the header row.
func RowsForDay(tbody *goquery.Selection) *goquery.Selection {
	rows := tbody.ChildrenFiltered("tr")
	if rows.Length() <= 1 {
		return rows.Slice(0, 0)
	}
	return rows.Slice(1, goquery.ToEnd)
}
