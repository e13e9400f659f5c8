package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetable2json/scraper"
)

func TestWriteJSON(t *testing.T) {
	title := "Algorithms"
	days := []scraper.DayEntries{
		{Day: scraper.Monday, Entries: []scraper.Entry{{
			Activities:   []string{"COMP3007", "COMP4106"},
			ModuleTitle:  &title,
			SessionTitle: "Lecture",
			Type:         "Lecture",
			Weeks:        []scraper.WeekSpec{scraper.Single(1), scraper.Range(3, 5)},
			Day:          scraper.Monday,
			Start:        scraper.TimeOfDay{Hour: 9},
			End:          scraper.TimeOfDay{Hour: 10, Minute: 30},
			Staff:        "Dr Smith",
			Location:     "JC-A02",
		}}},
		{Day: scraper.Tuesday, Entries: []scraper.Entry{}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, days, true))

	assert.JSONEq(t, `[
		{"day": "Monday", "entries": [{
			"activities": ["COMP3007", "COMP4106"],
			"module_title": "Algorithms",
			"session_title": "Lecture",
			"type": "Lecture",
			"weeks": [{"week": 1}, {"start": 3, "end": 5}],
			"day": "Monday",
			"start": "09:00",
			"end": "10:30",
			"staff": "Dr Smith",
			"location": "JC-A02",
			"notes": null
		}]},
		{"day": "Tuesday", "entries": []}
	]`, buf.String())
}

func TestWriteJSONSingleWeekZero(t *testing.T) {
	days := []scraper.DayEntries{{Day: scraper.Friday, Entries: []scraper.Entry{{
		Activities: []string{"X1"},
		Weeks:      []scraper.WeekSpec{scraper.Single(0), scraper.Range(0, 0)},
		Day:        scraper.Friday,
	}}}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, days, false))
	assert.Contains(t, buf.String(), `"weeks":[{"week":0},{"start":0,"end":0}]`)
}
