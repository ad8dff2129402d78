// Package calendar shapes professionals and events for the calendar widget.
// Every function here is pure.
package calendar

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

type Resource struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	HasUserAccount bool   `json:"has_user_account"`
}

type Client struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type Entry struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	ResourceID      uint      `json:"resourceId"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	TextColor       string    `json:"textColor"`
	ClientPhone     *string   `json:"clientPhone"`
	Client          Client    `json:"client"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"statusDisplay"`
}

func ToResource(p models.Professional) Resource {
	return Resource{
		ID:             p.ID,
		Title:          p.Name,
		HasUserAccount: p.HasUserAccount(),
	}
}

func ToResources(ps []models.Professional) []Resource {
	out := make([]Resource, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToResource(p))
	}
	return out
}

func ToClient(c models.Client) Client {
	return Client{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

// ToEntry expects Client and Service to be loaded. A stored status outside
// the known set is reported as an error instead of guessed.
func ToEntry(ev models.Event) (Entry, error) {
	status, err := event.ParseStatus(ev.Status)
	if err != nil {
		return Entry{}, fmt.Errorf("event %d: %w", ev.ID, err)
	}
	palette := status.Palette()

	return Entry{
		ID:              ev.ID,
		Title:           ev.Service.Name + " - " + ev.Client.Name,
		Start:           ev.StartTime,
		End:             ev.EndTime,
		ResourceID:      ev.ProfessionalID,
		BackgroundColor: palette.Background,
		BorderColor:     palette.Border,
		TextColor:       palette.Text,
		ClientPhone:     ev.Client.Phone,
		Client:          ToClient(ev.Client),
		Status:          string(status),
		StatusDisplay:   status.Label(),
	}, nil
}

func ToEntries(evs []models.Event) ([]Entry, error) {
	out := make([]Entry, 0, len(evs))
	for _, ev := range evs {
		e, err := ToEntry(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
