package planner

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Cadence is the repeat interval between scheduling ticks.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

var (
	ErrTotalInvalid     = errors.New("planner: total must be at least one")
	ErrPerPeriodInvalid = errors.New("planner: per-period quantity must be at least one")
	ErrCadenceInvalid   = errors.New("planner: cadence must be daily, weekly or monthly")
	ErrBaseTimeInvalid  = errors.New("planner: base time must use the HH:MM 24h format")
)

// ParseCadence coerces user-supplied cadence strings into the known set.
func ParseCadence(input string) (Cadence, error) {
	switch Cadence(strings.ToLower(strings.TrimSpace(input))) {
	case CadenceDaily:
		return CadenceDaily, nil
	case CadenceWeekly:
		return CadenceWeekly, nil
	case CadenceMonthly:
		return CadenceMonthly, nil
	default:
		return "", ErrCadenceInvalid
	}
}

// Request is the cadence configuration for a planning run. StartDate is
// optional; when absent or not in the future the anchor falls on tomorrow.
type Request struct {
	Total     int
	Cadence   Cadence
	PerPeriod int
	StartDate *time.Time
	BaseTime  string
}

// Planner computes conflict-free sequences of future publish timestamps.
// The zero-argument constructor uses the wall clock; tests inject a fixed
// clock through WithClock.
type Planner struct {
	now func() time.Time
}

// Option customizes a Planner.
type Option func(*Planner)

// WithClock overrides the clock used to resolve "today", mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Planner) {
		if clock != nil {
			p.now = clock
		}
	}
}

// New constructs a Planner.
func New(opts ...Option) *Planner {
	p := &Planner{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns exactly req.Total timestamps in chronological order. The
// clock is read once, up front, to resolve the anchor; everything after that
// is deterministic for identical inputs.
func (p *Planner) Plan(req Request) ([]time.Time, error) {
	if req.Total < 1 {
		return nil, ErrTotalInvalid
	}
	if req.PerPeriod < 1 {
		return nil, ErrPerPeriodInvalid
	}
	cadence, err := ParseCadence(string(req.Cadence))
	if err != nil {
		return nil, err
	}
	hour, minute, err := parseBaseTime(req.BaseTime)
	if err != nil {
		return nil, err
	}

	now := p.now()
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Anchors at or before today are always bumped to tomorrow; scheduling
	// into the past or "right now" is disallowed.
	base := today.AddDate(0, 0, 1)
	if req.StartDate != nil {
		start := time.Date(req.StartDate.Year(), req.StartDate.Month(), req.StartDate.Day(), 0, 0, 0, 0, loc)
		if start.After(today) {
			base = start
		}
	}

	out := make([]time.Time, 0, req.Total)
	remaining := req.Total
	for tick := 0; remaining > 0; tick++ {
		batch := req.PerPeriod
		if remaining < batch {
			batch = remaining
		}
		anchor := advance(base, cadence, tick)
		for i := 0; i < batch; i++ {
			h := slotHour(hour, i, batch)
			out = append(out, time.Date(anchor.Year(), anchor.Month(), anchor.Day(), h, minute, 0, 0, loc))
		}
		remaining -= batch
	}
	return out, nil
}

// advance computes the anchor date for the given tick. Every tick derives
// from the base anchor rather than the previous tick so monthly cadences
// keep the original day-of-month whenever the month is long enough.
func advance(base time.Time, cadence Cadence, tick int) time.Time {
	if tick == 0 {
		return base
	}
	switch cadence {
	case CadenceWeekly:
		return base.AddDate(0, 0, 7*tick)
	case CadenceMonthly:
		return addMonthsClamped(base, tick)
	default:
		return base.AddDate(0, 0, tick)
	}
}

func addMonthsClamped(base time.Time, months int) time.Time {
	firstOfMonth := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
	shifted := firstOfMonth.AddDate(0, months, 0)
	day := base.Day()
	if last := daysInMonth(shifted); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, 0, 0, 0, 0, base.Location())
}

func daysInMonth(t time.Time) int {
	// Day zero of the following month.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// slotHour implements the intra-day distribution policy. Hours past the end
// of the day clamp to 23; a batch never spills into the next calendar day.
func slotHour(baseHour, index, batch int) int {
	var offset int
	switch {
	case batch <= 1:
		offset = 0
	case batch == 2:
		offset = index * 8
	case batch == 3:
		offset = index * 6
	default:
		offset = index * (24 / batch)
	}
	h := baseHour + offset
	if h > 23 {
		h = 23
	}
	return h
}

func parseBaseTime(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, ErrBaseTimeInvalid
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrBaseTimeInvalid
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrBaseTimeInvalid
	}
	return hour, minute, nil
}
