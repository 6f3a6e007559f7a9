package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = Now{Date: "2026-08-29", Time: "14:30"}

func TestSnapshot(t *testing.T) {
	at := time.Date(2026, 8, 29, 9, 5, 42, 0, time.UTC)
	now := Snapshot(at)
	assert.Equal(t, "2026-08-29", now.Date)
	assert.Equal(t, "09:05", now.Time)
}

func TestValidateDateRule(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"past date", "2026-08-28", true},
		{"today", "2026-08-29", false},
		{"future date", "2026-09-01", false},
		{"far past", "2020-01-01", true},
		{"empty date left to required handling", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(Window{Date: tt.date, InTime: "15:00", OutTime: "16:00"}, testNow)
			_, ok := errs[FieldDate]
			assert.Equal(t, tt.wantErr, ok)
		})
	}
}

func TestValidateInTimeRule(t *testing.T) {
	// One minute before the captured clock on today's date is rejected.
	errs := Validate(Window{Date: "2026-08-29", InTime: "14:29", OutTime: "16:00"}, testNow)
	require.Contains(t, errs, FieldInTime)
	assert.False(t, errs.Valid())

	// The same clock time on a future date is fine.
	errs = Validate(Window{Date: "2026-08-30", InTime: "14:29", OutTime: "16:00"}, testNow)
	assert.NotContains(t, errs, FieldInTime)

	// Exactly the captured time is not in the past.
	errs = Validate(Window{Date: "2026-08-29", InTime: "14:30", OutTime: "16:00"}, testNow)
	assert.NotContains(t, errs, FieldInTime)
}

func TestValidateOutTimeRule(t *testing.T) {
	tests := []struct {
		name    string
		in, out string
		wantErr bool
	}{
		{"out after in", "10:00", "11:00", false},
		{"out equals in", "10:00", "10:00", true},
		{"out before in", "11:00", "10:00", true},
		{"missing out", "10:00", "", false},
		{"missing in", "", "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Future date so the inTime rule stays out of the way.
			errs := Validate(Window{Date: "2026-09-10", InTime: tt.in, OutTime: tt.out}, testNow)
			_, ok := errs[FieldOutTime]
			assert.Equal(t, tt.wantErr, ok)
		})
	}
}

func TestValidateOutTimeRuleIgnoresDate(t *testing.T) {
	// The ordering rule applies even when the date rule already failed.
	errs := Validate(Window{Date: "2020-01-01", InTime: "12:00", OutTime: "11:00"}, testNow)
	assert.Contains(t, errs, FieldDate)
	assert.Contains(t, errs, FieldOutTime)
}

func TestValidateMalformedInputs(t *testing.T) {
	errs := Validate(Window{Date: "29-08-2026", InTime: "2pm", OutTime: "25:99"}, testNow)
	assert.Contains(t, errs, FieldDate)
	assert.Contains(t, errs, FieldInTime)
	assert.Contains(t, errs, FieldOutTime)
}

func TestValidateCleanWindow(t *testing.T) {
	errs := Validate(Window{Date: "2026-08-29", InTime: "15:00", OutTime: "17:30"}, testNow)
	assert.True(t, errs.Valid())
	assert.Empty(t, errs)
}
