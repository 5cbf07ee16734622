package model

import "time"

type Unit int

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

type StopType int

const (
	StopForever StopType = iota
	StopUntil
	StopAfterCount
)

// StopCondition decides when a series stops producing occurrences.
// Until is used only with StopUntil, Count only with StopAfterCount.
type StopCondition struct {
	Type  StopType
	Until time.Time
	Count int
}

type Mode int

const (
	ModeByDate Mode = iota
	ModeByWeekday
)

type Ordinal int

const (
	OrdinalFirst Ordinal = iota + 1
	OrdinalSecond
	OrdinalThird
	OrdinalLast
)

// Rule is an immutable recurrence rule. All dates are civil dates stored as
// midnight UTC.
type Rule struct {
	Anchor      time.Time
	Interval    int
	Unit        Unit
	Stop        StopCondition
	MonthMode   Mode
	YearMode    Mode
	Weekdays    []time.Weekday
	Ordinal     Ordinal
	Weekday     time.Weekday
	DayOfMonth  int
	MonthOfYear time.Month
}

type RecurrenceState struct {
	ID         int64
	TaskID     int64
	Rule       Rule
	NextAnchor time.Time
	Count      int
	Version    int64
	// RRule is the RFC 5545 text of Rule, kept for clients that speak iCalendar.
	RRule string
}

type RecurrencePreview struct {
	Dates   []time.Time
	HasMore bool
	Total   int
	Message string
	RRule   string
}

type SweepResult struct {
	Due     int
	Created int
	Skipped int
	Failed  int
}
