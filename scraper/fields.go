package scraper

import (
	"strconv"
	"strings"
)

// nbsp marks an empty optional cell in the export.
const nbsp = "\u00a0"

// ParseDay matches the exact English name of a teaching day.
func ParseDay(text string) (Weekday, error) {
	for i, name := range weekdayNames {
		if text == name {
			return Weekday(i), nil
		}
	}
	return 0, &Error{Kind: KindInvalidDay, Text: text}
}

// ParseTime parses "H:M". Hours and minutes are not range checked.
func ParseTime(text string) (TimeOfDay, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, &Error{Kind: KindTimeWrongFieldCount, Count: len(parts)}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, &Error{Kind: KindTimeComponentNotInteger, Text: parts[0]}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, &Error{Kind: KindTimeComponentNotInteger, Text: parts[1]}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseWeeks parses a comma separated list of weeks such as "1,3-5, 7".
func ParseWeeks(text string) ([]WeekSpec, error) {
	tokens := strings.Split(text, ",")
	weeks := make([]WeekSpec, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if n, err := strconv.Atoi(token); err == nil {
			weeks = append(weeks, Single(n))
			continue
		}

		bounds := strings.Split(token, "-")
		if len(bounds) != 2 {
			return nil, &Error{Kind: KindWeekInvalidToken, Text: token}
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, &Error{Kind: KindWeekInvalidToken, Text: token}
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, &Error{Kind: KindWeekInvalidToken, Text: token}
		}
		weeks = append(weeks, Range(start, end))
	}
	return weeks, nil
}

// ParseNullableText returns nil for the non-breaking-space placeholder and the text otherwise.
func ParseNullableText(text string) *string {
	if text == nbsp {
		return nil
	}
	return &text
}

// ParseActivityCodes turns "COMP/3007/01/L/01/01,COMP/4106/..." into ["COMP3007", "COMP4106"].
// Anything from the first '<' onwards is ignored.
func ParseActivityCodes(text string) ([]string, error) {
	if i := strings.Index(text, "<"); i >= 0 {
		text = text[:i]
	}

	refs := strings.Split(text, ",")
	codes := make([]string, 0, len(refs))
	for _, ref := range refs {
		segments := strings.Split(ref, "/")
		if len(segments) < 2 {
			return nil, &Error{Kind: KindActivitySegmentCountTooLow, Count: len(segments)}
		}
		codes = append(codes, segments[0]+segments[1])
	}
	return codes, nil
}
