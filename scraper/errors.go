package scraper

import "fmt"

// ErrorKind identifies why a timetable could not be decoded.
type ErrorKind int

const (
	KindRowWrongColumnCount ErrorKind = iota + 1
	KindActivitySegmentCountTooLow
	KindInvalidDay
	KindTimeWrongFieldCount
	KindTimeComponentNotInteger
	KindWeekInvalidToken
	KindTableNotFound
	KindMarkupParse
)

// Error is returned by every decoding step. Count or Text holds the offending value.
type Error struct {
	Kind  ErrorKind
	Count int
	Text  string
	Err   error
}

// Sentinels for errors.Is; they match any Error of the same kind.
var (
	ErrRowWrongColumnCount        = &Error{Kind: KindRowWrongColumnCount}
	ErrActivitySegmentCountTooLow = &Error{Kind: KindActivitySegmentCountTooLow}
	ErrInvalidDay                 = &Error{Kind: KindInvalidDay}
	ErrTimeWrongFieldCount        = &Error{Kind: KindTimeWrongFieldCount}
	ErrTimeComponentNotInteger    = &Error{Kind: KindTimeComponentNotInteger}
	ErrWeekInvalidToken           = &Error{Kind: KindWeekInvalidToken}
	ErrTableNotFound              = &Error{Kind: KindTableNotFound}
	ErrMarkupParse                = &Error{Kind: KindMarkupParse}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindRowWrongColumnCount:
		return fmt.Sprintf("row has %d columns, expected %d", e.Count, columnCount)
	case KindActivitySegmentCountTooLow:
		return fmt.Sprintf("activity reference has %d segments, expected at least 2", e.Count)
	case KindInvalidDay:
		return fmt.Sprintf("invalid day %q", e.Text)
	case KindTimeWrongFieldCount:
		return fmt.Sprintf("time has %d fields, expected 2", e.Count)
	case KindTimeComponentNotInteger:
		return fmt.Sprintf("time component %q is not an integer", e.Text)
	case KindWeekInvalidToken:
		return fmt.Sprintf("invalid week token %q", e.Text)
	case KindTableNotFound:
		return fmt.Sprintf("day table not found: %s", e.Text)
	case KindMarkupParse:
		return fmt.Sprintf("parse markup: %v", e.Err)
	}
	return fmt.Sprintf("timetable error kind %d", int(e.Kind))
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
