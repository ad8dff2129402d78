package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

// EventGormRepository stores events. Times are written in UTC and handed
// back in the scope's location.
type EventGormRepository struct {
	*CatalogGormRepository
	db *gorm.DB
}

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{
		CatalogGormRepository: NewCatalogGormRepository(db),
		db:                    db,
	}
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *EventGormRepository) CreateEvent(
	ctx context.Context,
	scope tenant.Scope,
	ev *models.Event,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}

	ev.ID = 0
	ev.CompanyID = scope.CompanyID
	ev.CreatedByID = scope.Actor()
	ev.UpdatedByID = scope.Actor()
	toUTC(ev)

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ev).Error
	toLocal(ev, scope)
	return writeErr(err)
}

// UpdateEvent locks the row, keeps its creation stamps and overwrites the
// rest. Concurrent updates are last-write-wins.
func (r *EventGormRepository) UpdateEvent(
	ctx context.Context,
	scope tenant.Scope,
	ev *models.Event,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.Event
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ?", scope.CompanyID).
			First(&stored, ev.ID).Error; err != nil {
			return notFound(err, "event")
		}

		ev.CompanyID = scope.CompanyID
		ev.CreatedAt = stored.CreatedAt
		ev.CreatedByID = stored.CreatedByID
		ev.UpdatedByID = scope.Actor()
		toUTC(ev)

		return tx.Omit(clause.Associations).Save(ev).Error
	})

	toLocal(ev, scope)
	return writeErr(err)
}

func (r *EventGormRepository) SetEventStatus(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
	status event.Status,
) error {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return err
	}

	res := q.Model(&models.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        string(status),
			"updated_by_id": scope.Actor(),
		})
	if res.Error != nil {
		return writeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "event")
	}
	return nil
}

func (r *EventGormRepository) DeleteEvent(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) error {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return err
	}

	res := q.Delete(&models.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "event")
	}
	return nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *EventGormRepository) GetEvent(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) (*models.Event, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var ev models.Event
	if err := q.
		Preload("Professional").
		Preload("Client").
		Preload("Service").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&ev, id).Error; err != nil {
		return nil, notFound(err, "event")
	}

	toLocal(&ev, scope)
	return &ev, nil
}

// ListEvents returns every event that overlaps the window, including those
// that started before it and are still running.
func (r *EventGormRepository) ListEvents(
	ctx context.Context,
	scope tenant.Scope,
	filter event.ListFilter,
) ([]models.Event, error) {

	if err := filter.Window.Validate(); err != nil {
		return nil, err
	}

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	q = q.Where(
		"end_time > ? AND start_time < ?",
		filter.Window.Start.UTC(),
		filter.Window.End.UTC(),
	)
	if len(filter.ProfessionalIDs) > 0 {
		q = q.Where("professional_id IN ?", filter.ProfessionalIDs)
	}

	var evs []models.Event
	if err := q.
		Preload("Professional").
		Preload("Client").
		Preload("Service").
		Order("start_time ASC").
		Order("id ASC").
		Find(&evs).Error; err != nil {
		return nil, err
	}

	for i := range evs {
		toLocal(&evs[i], scope)
	}
	return evs, nil
}

func toUTC(ev *models.Event) {
	ev.StartTime = ev.StartTime.UTC()
	ev.EndTime = ev.EndTime.UTC()
}

func toLocal(ev *models.Event, scope tenant.Scope) {
	loc := scope.Loc()
	ev.StartTime = ev.StartTime.In(loc)
	ev.EndTime = ev.EndTime.In(loc)
}

// Compile-time check
var _ event.Repository = (*EventGormRepository)(nil)
