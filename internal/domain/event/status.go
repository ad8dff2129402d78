package event

import (
	"fmt"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
)

// ===============================
// Event Status
// ===============================

// Status is a label: any status may be replaced by any other.
type Status string

const (
	StatusScheduled      Status = "scheduled"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusNoShow         Status = "no_show"
	StatusInProgress     Status = "in_progress"
	StatusPendingPayment Status = "pending_payment"
)

const (
	textDark  = "#000000"
	textLight = "#ffffff"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusInProgress,
	StatusPendingPayment,
}

type Palette struct {
	Background string
	Border     string
	Text       string
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func InitialStatus() Status {
	return StatusScheduled
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", httperr.Validation("status", fmt.Sprintf("Status inválido: %q.", s))
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled,
		StatusNoShow, StatusInProgress, StatusPendingPayment:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Agendado"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	case StatusNoShow:
		return "Não compareceu"
	case StatusInProgress:
		return "Em andamento"
	case StatusPendingPayment:
		return "Pendente pagamento"
	}
	panic(fmt.Sprintf("event: unknown status %q", string(s)))
}

// Palette is defined for every valid status. Callers holding a raw string
// must go through ParseStatus first.
func (s Status) Palette() Palette {
	switch s {
	case StatusScheduled:
		return palette("#3788d8", textDark)
	case StatusCompleted:
		return palette("#28a745", textDark)
	case StatusCancelled:
		return palette("#dc3545", textLight)
	case StatusNoShow:
		return palette("#fd7e14", textDark)
	case StatusInProgress:
		return palette("#17a2b8", textLight)
	case StatusPendingPayment:
		return palette("#6f42c1", textLight)
	}
	panic(fmt.Sprintf("event: unknown status %q", string(s)))
}

func palette(bg, text string) Palette {
	return Palette{Background: bg, Border: bg, Text: text}
}

func Choices() []Choice {
	out := make([]Choice, 0, len(Statuses))
	for _, s := range Statuses {
		out = append(out, Choice{Value: string(s), Label: s.Label()})
	}
	return out
}
