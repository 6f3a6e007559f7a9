// Package access validates proposed door-access time windows before they
// are submitted. Validation is pure: the caller captures "now" once when
// the form opens and threads it in, so repeated keystrokes during one
// editing session are judged against a stable clock.
package access

import "time"

// Field names the form input a validation message belongs to.
type Field string

const (
	FieldDate    Field = "date"
	FieldInTime  Field = "inTime"
	FieldOutTime Field = "outTime"
)

// User-facing messages, keyed by rule.
const (
	msgDateInPast   = "Cannot select a date in the past"
	msgInTimeInPast = "In time cannot be in the past for today's date"
	msgOutBeforeIn  = "Out time must be after in time"
	msgBadDate      = "Enter a valid date (YYYY-MM-DD)"
	msgBadTime      = "Enter a valid time (HH:MM)"
)

// Now is the clock snapshot a window is validated against.
type Now struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// Snapshot captures t in the window's string formats.
func Snapshot(t time.Time) Now {
	return Now{
		Date: t.Format("2006-01-02"),
		Time: t.Format("15:04"),
	}
}

// Window is a proposed same-day access window. Multi-day spans are not
// supported.
type Window struct {
	Date    string
	InTime  string
	OutTime string
}

// Errors maps fields to messages; an absent key means the field is fine.
type Errors map[Field]string

// Valid reports whether the window passed every rule.
func (e Errors) Valid() bool { return len(e) == 0 }

// Validate applies the window rules against now:
//   - a date before now.Date fails on date
//   - on today's date, an in-time before now.Time fails on inTime
//   - when both times are present, an out-time at or before the in-time
//     fails on outTime regardless of date
//
// Zero-padded YYYY-MM-DD and HH:MM strings order lexically, so the
// comparisons are plain string compares once the formats are checked.
// Empty fields are left to the form's required-field handling; only
// present values are judged.
func Validate(w Window, now Now) Errors {
	errs := Errors{}

	if w.Date != "" {
		if !validDate(w.Date) {
			errs[FieldDate] = msgBadDate
		} else if w.Date < now.Date {
			errs[FieldDate] = msgDateInPast
		}
	}

	if w.InTime != "" && !validClock(w.InTime) {
		errs[FieldInTime] = msgBadTime
	}
	if w.OutTime != "" && !validClock(w.OutTime) {
		errs[FieldOutTime] = msgBadTime
	}

	if _, bad := errs[FieldInTime]; !bad && w.Date == now.Date && w.InTime != "" && w.InTime < now.Time {
		errs[FieldInTime] = msgInTimeInPast
	}

	_, inBad := errs[FieldInTime]
	_, outBad := errs[FieldOutTime]
	if !inBad && !outBad && w.InTime != "" && w.OutTime != "" && w.OutTime <= w.InTime {
		errs[FieldOutTime] = msgOutBeforeIn
	}

	return errs
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
