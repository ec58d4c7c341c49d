package domain

import (
	"errors"
	"time"
)

var (
	ErrPeriodMissingDates = errors.New("start date and end date are required")
	ErrPeriodInverted     = errors.New("start date cannot be after end date")
)

// Period é um intervalo de datas fechado: End inclui o dia inteiro
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewPeriod(start, end time.Time) Period {
	return Period{Start: truncateDay(start), End: truncateDay(end)}
}

// LastDays retorna o período de n dias encerrado no dia anterior a ref
func LastDays(ref time.Time, days int) Period {
	end := truncateDay(ref).AddDate(0, 0, -1)
	return Period{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return ErrPeriodMissingDates
	}
	if p.Start.After(p.End) {
		return ErrPeriodInverted
	}
	return nil
}

// EndExclusive é o limite superior usado nas consultas (End + 1 dia)
func (p Period) EndExclusive() time.Time {
	return truncateDay(p.End).AddDate(0, 0, 1)
}

// Days retorna a quantidade de dias cobertos pelo período
func (p Period) Days() int {
	return int(p.EndExclusive().Sub(truncateDay(p.Start)).Hours() / 24)
}

func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + " to " + p.End.Format(time.DateOnly)
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
