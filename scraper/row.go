package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// columnCount is the number of cells in every activity row:
// activity, module title, session title, type, weeks, day, start, end, staff, location, notes.
const columnCount = 11

// CellTexts returns the text of each cell in a table row.
func CellTexts(row *goquery.Selection) []string {
	return row.ChildrenFiltered("td").Map(func(_ int, cell *goquery.Selection) string {
		return cell.Text()
	})
}

// DecodeRow builds an entry from the cell texts of one row.
// The first failing column aborts the row.
func DecodeRow(cells []string) (Entry, error) {
	if len(cells) != columnCount {
		return Entry{}, &Error{Kind: KindRowWrongColumnCount, Count: len(cells)}
	}

	activities, err := ParseActivityCodes(cells[0])
	if err != nil {
		return Entry{}, err
	}
	moduleTitle := ParseNullableText(cells[1])
	weeks, err := ParseWeeks(cells[4])
	if err != nil {
		return Entry{}, err
	}
	day, err := ParseDay(cells[5])
	if err != nil {
		return Entry{}, err
	}
	start, err := ParseTime(cells[6])
	if err != nil {
		return Entry{}, err
	}
	end, err := ParseTime(cells[7])
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:           uuid.New(),
		Activities:   activities,
		ModuleTitle:  moduleTitle,
		SessionTitle: cells[2],
		Type:         cells[3],
		Weeks:        weeks,
		Day:          day,
		Start:        start,
		End:          end,
		Staff:        cells[8],
		Location:     cells[9],
		Notes:        ParseNullableText(cells[10]),
	}, nil
}
