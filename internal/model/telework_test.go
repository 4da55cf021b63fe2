package model

import (
	"testing"
	"time"
)

func TestOverrideIDDeterministic(t *testing.T) {
	date := time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC)
	id := OverrideID("user-1", date)

	if id != "user-1_2025-06-04" {
		t.Errorf("id = %q, want %q", id, "user-1_2025-06-04")
	}
	// Time-of-day is irrelevant: only the calendar day keys the row.
	other := OverrideID("user-1", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	if id != other {
		t.Errorf("same day at different times produced different ids: %q vs %q", id, other)
	}
}

func TestRecurrenceActiveOn(t *testing.T) {
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	weekly := Recurrence{
		Type:          RecurrenceWeekly,
		WeeklyPattern: &WeeklyRecurrence{DayOfWeek: int(time.Friday)},
	}
	if !weekly.ActiveOn(friday) {
		t.Error("weekly recurrence must match its weekday")
	}
	if weekly.ActiveOn(saturday) {
		t.Error("weekly recurrence must not match other weekdays")
	}

	missingPayload := Recurrence{Type: RecurrenceWeekly}
	if missingPayload.ActiveOn(friday) {
		t.Error("weekly recurrence without a payload must be inactive")
	}

	dates := Recurrence{
		Type:          RecurrenceSpecificDates,
		SpecificDates: []string{"2025-06-06", "2025-07-14"},
	}
	if !dates.ActiveOn(friday) {
		t.Error("specific_dates recurrence must match a listed day")
	}
	if dates.ActiveOn(saturday) {
		t.Error("specific_dates recurrence must not match an unlisted day")
	}

	unknown := Recurrence{Type: "lunar"}
	if unknown.ActiveOn(friday) {
		t.Error("unknown recurrence kinds must be inactive")
	}
}

func TestRuleAppliesTo(t *testing.T) {
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	rule := TeamTeleworkRule{
		AffectedUserIDs: StringArray{"u1", "u2"},
		Exemptions:      StringArray{"u2"},
		Recurrence: Recurrence{
			Type:          RecurrenceWeekly,
			WeeklyPattern: &WeeklyRecurrence{DayOfWeek: int(time.Friday)},
		},
	}

	if !rule.AppliesTo("u1", friday) {
		t.Error("affected user on an active day must be bound")
	}
	if rule.AppliesTo("u2", friday) {
		t.Error("exempt user must not be bound")
	}
	if rule.AppliesTo("u3", friday) {
		t.Error("unlisted user must not be bound")
	}
	if rule.AppliesTo("u1", friday.AddDate(0, 0, 1)) {
		t.Error("inactive day must not bind anyone")
	}
}

func TestConstraintsEffectiveMax(t *testing.T) {
	c := TeleworkConstraints{MaxRemoteDaysPerWeek: 3}
	if got := c.EffectiveMaxRemoteDaysPerWeek(); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	c.MaxRemoteDaysPerWeek = 0
	if got := c.EffectiveMaxRemoteDaysPerWeek(); got != DefaultMaxRemoteDaysPerWeek {
		t.Errorf("got %d, want default %d", got, DefaultMaxRemoteDaysPerWeek)
	}
}

func TestProfileModeOn(t *testing.T) {
	p := UserTeleworkProfile{
		DefaultMode: ModeOnsite,
		WeeklyPattern: WeeklyPattern{
			"monday":  ModeRemote,
			"tuesday": PatternDefault,
		},
	}

	mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := p.ModeOn(mon); got != ModeRemote {
		t.Errorf("monday = %q, want %q", got, ModeRemote)
	}
	// "default" entries and absent weekdays both fall back to the default mode.
	if got := p.ModeOn(mon.AddDate(0, 0, 1)); got != ModeOnsite {
		t.Errorf("tuesday = %q, want %q", got, ModeOnsite)
	}
	if got := p.ModeOn(mon.AddDate(0, 0, 2)); got != ModeOnsite {
		t.Errorf("wednesday = %q, want %q", got, ModeOnsite)
	}
}

func TestStringArrayValueScan(t *testing.T) {
	arr := StringArray{"a", "b"}
	v, err := arr.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var back StringArray
	if err := back.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(back) != 2 || back[0] != "a" || back[1] != "b" {
		t.Errorf("round trip = %v", back)
	}
	if !back.Contains("b") || back.Contains("c") {
		t.Error("Contains misbehaved")
	}
}
