package event

import (
	"time"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
)

// Window is a half-open calendar range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Validate() error {
	ve := &httperr.ValidationError{}
	if w.Start.IsZero() {
		ve.Add("start", "Campo obrigatório.")
	}
	if w.End.IsZero() {
		ve.Add("end", "Campo obrigatório.")
	}
	if !w.Start.IsZero() && !w.End.IsZero() && !w.End.After(w.Start) {
		ve.Add("end", "Deve ser posterior ao início.")
	}
	return ve.OrNil()
}

// Overlaps reports whether [start, end) intersects the window. An event that
// began before the window but is still running counts.
func (w Window) Overlaps(start, end time.Time) bool {
	return end.After(w.Start) && start.Before(w.End)
}

// MonthWindow spans the whole calendar month in loc.
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

type ListFilter struct {
	Window          Window
	ProfessionalIDs []uint
}
