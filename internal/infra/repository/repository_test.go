package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/calendar-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type fixture struct {
	db      *gorm.DB
	catalog *CatalogGormRepository
	events  *EventGormRepository

	scope tenant.Scope
	prof  *models.Professional
	cl    *models.Client
	svc   *models.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.Open(t)
	company := dbtest.Company(t, gdb, "acme")
	user := dbtest.User(t, gdb, company.ID, "ana@acme.test")

	f := &fixture{
		db:      gdb,
		catalog: NewCatalogGormRepository(gdb),
		events:  NewEventGormRepository(gdb),
		scope:   tenant.New(company.ID, user.ID, time.UTC),
	}

	ctx := context.Background()
	f.prof = &models.Professional{Name: "Dr. Smith", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, f.prof))

	f.cl = &models.Client{Name: "Carla"}
	require.NoError(t, f.catalog.CreateClient(ctx, f.scope, f.cl))

	f.svc = catalog.NewService(f.prof.ID, "Consulta", nil, decimal.RequireFromString("150.00"))
	require.NoError(t, f.catalog.CreateService(ctx, f.scope, f.svc))

	return f
}

func (f *fixture) newEvent(start time.Time, minutes int) *models.Event {
	return &models.Event{
		ProfessionalID: f.prof.ID,
		ClientID:       f.cl.ID,
		ServiceID:      f.svc.ID,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		DurationMin:    minutes,
		Value:          f.svc.Value,
		Status:         string(event.StatusScheduled),
	}
}

// ======================================================
// Tenant isolation
// ======================================================

func TestRepository_RequiresTenant(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.catalog.ListClients(ctx, tenant.Scope{}, catalog.ClientFilter{})
	assert.ErrorIs(t, err, tenant.ErrNoTenant)

	_, err = f.events.ListEvents(ctx, tenant.Scope{}, event.ListFilter{Window: event.Window{
		Start: time.Now(), End: time.Now().Add(time.Hour),
	}})
	assert.ErrorIs(t, err, tenant.ErrNoTenant)

	err = f.events.CreateEvent(ctx, tenant.Scope{}, f.newEvent(time.Now(), 30))
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}

func TestRepository_SameNameInTwoCompanies(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := dbtest.Company(t, f.db, "globex")
	otherScope := tenant.New(other.ID, 0, time.UTC)

	twin := &models.Professional{Name: "Dr. Smith", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, otherScope, twin))

	mine, err := f.catalog.ListProfessionals(ctx, f.scope, catalog.ProfessionalFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.prof.ID, mine[0].ID)

	theirs, err := f.catalog.ListProfessionals(ctx, otherScope, catalog.ProfessionalFilter{})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, twin.ID, theirs[0].ID)

	// cross-tenant ids look like missing rows
	_, err = f.catalog.GetProfessional(ctx, otherScope, f.prof.ID)
	assert.True(t, httperr.IsNotFound(err))
	_, err = f.catalog.GetService(ctx, otherScope, f.svc.ID)
	assert.True(t, httperr.IsNotFound(err))
}

func TestRepository_DuplicateNameInCompany(t *testing.T) {
	f := setup(t)

	err := f.catalog.CreateProfessional(context.Background(), f.scope, &models.Professional{Name: "Dr. Smith"})

	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "duplicate", ce.Code)
	assert.Equal(t, "name", ce.Field)
}

func TestRepository_ClientPhoneIsGloballyUnique(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	phone := "11987654321"
	require.NoError(t, f.catalog.CreateClient(ctx, f.scope, &models.Client{Name: "Paula", Phone: &phone}))

	other := dbtest.Company(t, f.db, "globex")
	err := f.catalog.CreateClient(ctx, tenant.New(other.ID, 0, nil), &models.Client{Name: "Paula", Phone: &phone})

	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "phone", ce.Field)
}

// ======================================================
// Listing rules
// ======================================================

func TestRepository_ProfessionalActiveFilter(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	off := &models.Professional{Name: "Retired", Active: false}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, off))

	stored, err := f.catalog.GetProfessional(ctx, f.scope, off.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	active, err := f.catalog.ListProfessionals(ctx, f.scope, catalog.ProfessionalFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.catalog.ListProfessionals(ctx, f.scope, catalog.ProfessionalFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_ClientListCaps(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, f.catalog.CreateClient(ctx, f.scope, &models.Client{Name: fmt.Sprintf("Silva %02d", i)}))
	}

	recent, err := f.catalog.ListClients(ctx, f.scope, catalog.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, recent, catalog.ClientRecentLimit)
	assert.Equal(t, "Silva 59", recent[0].Name)
	assert.Greater(t, recent[0].ID, recent[1].ID)

	found, err := f.catalog.ListClients(ctx, f.scope, catalog.ClientFilter{Query: "SILVA"})
	require.NoError(t, err)
	assert.Len(t, found, catalog.ClientSearchLimit)

	none, err := f.catalog.ListClients(ctx, f.scope, catalog.ClientFilter{Query: "%"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_ServiceFilterByProfessional(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := &models.Professional{Name: "Dr. Jones", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, other))
	require.NoError(t, f.catalog.CreateService(ctx, f.scope, catalog.NewService(other.ID, "Consulta", nil, decimal.Zero)))

	svcs, err := f.catalog.ListServices(ctx, f.scope, catalog.ServiceFilter{ProfessionalID: &other.ID})
	require.NoError(t, err)
	require.Len(t, svcs, 1)
	assert.Equal(t, other.ID, svcs[0].ProfessionalID)

	all, err := f.catalog.ListServices(ctx, f.scope, catalog.ServiceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// ======================================================
// Events
// ======================================================

func TestEvents_WindowOverlap(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	overnight := f.newEvent(day.Add(-time.Hour), 120) // 23:00 → 01:00
	morning := f.newEvent(day.Add(9*time.Hour), 45)
	nextDay := f.newEvent(day.Add(24*time.Hour), 30)
	for _, ev := range []*models.Event{overnight, morning, nextDay} {
		require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))
	}

	got, err := f.events.ListEvents(ctx, f.scope, event.ListFilter{
		Window: event.Window{Start: day, End: day.Add(24 * time.Hour)},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, overnight.ID, got[0].ID)
	assert.Equal(t, morning.ID, got[1].ID)

	assert.Equal(t, "Consulta", got[1].Service.Name)
	assert.Equal(t, "Carla", got[1].Client.Name)
	assert.Equal(t, "Dr. Smith", got[1].Professional.Name)
	assert.Equal(t, 45, got[1].DurationMin)
	assert.True(t, got[1].Value.Equal(decimal.RequireFromString("150")))
}

func TestEvents_ProfessionalFilter(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, f.newEvent(start, 30)))

	w := event.Window{Start: start.Add(-time.Hour), End: start.Add(time.Hour)}

	got, err := f.events.ListEvents(ctx, f.scope, event.ListFilter{Window: w, ProfessionalIDs: []uint{f.prof.ID + 100}})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.events.ListEvents(ctx, f.scope, event.ListFilter{Window: w, ProfessionalIDs: []uint{f.prof.ID}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEvents_AuditStamps(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 30)
	ev.CreatedByID = nil
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))
	require.NotNil(t, ev.CreatedByID)
	assert.Equal(t, f.scope.UserID, *ev.CreatedByID)
	assert.Equal(t, f.scope.UserID, *ev.UpdatedByID)

	editor := dbtest.User(t, f.db, f.scope.CompanyID, "bob@acme.test")
	editorScope := tenant.New(f.scope.CompanyID, editor.ID, time.UTC)

	forged := editor.ID
	ev.CreatedByID = &forged
	ev.Description = "moved"
	require.NoError(t, f.events.UpdateEvent(ctx, editorScope, ev))

	stored, err := f.events.GetEvent(ctx, f.scope, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, f.scope.UserID, *stored.CreatedByID)
	assert.Equal(t, editor.ID, *stored.UpdatedByID)
	assert.Equal(t, "moved", stored.Description)
	require.NotNil(t, stored.UpdatedBy)
	assert.Equal(t, "bob@acme.test", stored.UpdatedBy.Email)
}

func TestEvents_CrossTenantAccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 30)
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))

	other := dbtest.Company(t, f.db, "globex")
	otherScope := tenant.New(other.ID, 0, time.UTC)

	_, err := f.events.GetEvent(ctx, otherScope, ev.ID)
	assert.True(t, httperr.IsNotFound(err))
	assert.True(t, httperr.IsNotFound(f.events.DeleteEvent(ctx, otherScope, ev.ID)))
	assert.True(t, httperr.IsNotFound(f.events.UpdateEvent(ctx, otherScope, ev)))

	require.NoError(t, f.events.DeleteEvent(ctx, f.scope, ev.ID))
	_, err = f.events.GetEvent(ctx, f.scope, ev.ID)
	assert.True(t, httperr.IsNotFound(err))
}

func TestEvents_ReturnedInScopeLocation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	loc := time.FixedZone("BRT", -3*3600)
	local := tenant.New(f.scope.CompanyID, f.scope.UserID, loc)

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, loc), 30)
	require.NoError(t, f.events.CreateEvent(ctx, local, ev))

	stored, err := f.events.GetEvent(ctx, local, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.StartTime.Hour())
	assert.Equal(t, loc, stored.StartTime.Location())
	assert.True(t, stored.StartTime.Equal(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)))
}

func TestService_DeleteBlockedWhileInUse(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 30)
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))

	err := f.catalog.DeleteService(ctx, f.scope, f.svc.ID)
	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "service_in_use", ce.Code)

	require.NoError(t, f.events.DeleteEvent(ctx, f.scope, ev.ID))
	require.NoError(t, f.catalog.DeleteService(ctx, f.scope, f.svc.ID))
}

// ======================================================
// Updates
// ======================================================

func TestProfessional_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := &models.Professional{Name: "Dr. Jones", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, other))

	p, err := f.catalog.GetProfessional(ctx, f.scope, f.prof.ID)
	require.NoError(t, err)
	p.Name = "Dr. Smith Jr."
	p.Active = false
	require.NoError(t, f.catalog.UpdateProfessional(ctx, f.scope, p))

	stored, err := f.catalog.GetProfessional(ctx, f.scope, f.prof.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smith Jr.", stored.Name)
	assert.False(t, stored.Active)

	stored.Name = "Dr. Jones"
	err = f.catalog.UpdateProfessional(ctx, f.scope, stored)
	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "name", ce.Field)

	foreign := dbtest.Company(t, f.db, "globex")
	err = f.catalog.UpdateProfessional(ctx, tenant.New(foreign.ID, 0, time.UTC), &models.Professional{ID: f.prof.ID, Name: "X"})
	assert.True(t, httperr.IsNotFound(err))
}

func TestClient_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateClient(ctx, f.scope, &models.Client{Name: "Paula"}))

	cl, err := f.catalog.GetClient(ctx, f.scope, f.cl.ID)
	require.NoError(t, err)
	phone := "11987654321"
	cl.Name = "Carla Souza"
	cl.Phone = &phone
	require.NoError(t, f.catalog.UpdateClient(ctx, f.scope, cl))

	stored, err := f.catalog.GetClient(ctx, f.scope, f.cl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carla Souza", stored.Name)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, phone, *stored.Phone)

	stored.Phone = nil
	require.NoError(t, f.catalog.UpdateClient(ctx, f.scope, stored))
	cleared, err := f.catalog.GetClient(ctx, f.scope, f.cl.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.Phone)

	cleared.Name = "Paula"
	err = f.catalog.UpdateClient(ctx, f.scope, cleared)
	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "name", ce.Field)
}

func TestService_Update(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := &models.Professional{Name: "Dr. Jones", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, other))

	s, err := f.catalog.GetService(ctx, f.scope, f.svc.ID)
	require.NoError(t, err)
	s.Name = "Retorno"
	s.DurationMin = 30
	s.Value = decimal.RequireFromString("80.50")
	s.Active = false
	s.ProfessionalID = other.ID
	require.NoError(t, f.catalog.UpdateService(ctx, f.scope, s))

	stored, err := f.catalog.GetService(ctx, f.scope, f.svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retorno", stored.Name)
	assert.Equal(t, 30, stored.DurationMin)
	assert.Equal(t, "80.50", stored.Value.StringFixed(2))
	assert.False(t, stored.Active)
	assert.Equal(t, other.ID, stored.ProfessionalID)
	assert.Equal(t, "Dr. Jones", stored.Professional.Name)

	foreign := dbtest.Company(t, f.db, "globex")
	outsider := &models.Professional{Name: "Dr. Who", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, tenant.New(foreign.ID, 0, time.UTC), outsider))

	stored.ProfessionalID = outsider.ID
	err = f.catalog.UpdateService(ctx, f.scope, stored)
	assert.True(t, httperr.IsNotFound(err))
}

func TestService_ReassignBlockedWhileInUse(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	other := &models.Professional{Name: "Dr. Jones", Active: true}
	require.NoError(t, f.catalog.CreateProfessional(ctx, f.scope, other))

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 30)
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))

	s, err := f.catalog.GetService(ctx, f.scope, f.svc.ID)
	require.NoError(t, err)
	s.ProfessionalID = other.ID
	err = f.catalog.UpdateService(ctx, f.scope, s)

	var ce *httperr.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "service_in_use", ce.Code)
	assert.Equal(t, "professional", ce.Field)

	stored, err := f.catalog.GetService(ctx, f.scope, f.svc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.prof.ID, stored.ProfessionalID)

	// other fields stay editable while in use
	stored.Name = "Consulta longa"
	require.NoError(t, f.catalog.UpdateService(ctx, f.scope, stored))

	got, err := f.events.GetEvent(ctx, f.scope, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ProfessionalID, got.Service.ProfessionalID)
	assert.Equal(t, "Consulta longa", got.Service.Name)
}

func TestEvents_SetStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ev := f.newEvent(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 30)
	ev.Description = "primeira consulta"
	require.NoError(t, f.events.CreateEvent(ctx, f.scope, ev))

	require.NoError(t, f.events.SetEventStatus(ctx, f.scope, ev.ID, event.StatusNoShow))

	stored, err := f.events.GetEvent(ctx, f.scope, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, string(event.StatusNoShow), stored.Status)
	assert.Equal(t, "primeira consulta", stored.Description)
	assert.Equal(t, 30, stored.DurationMin)
	assert.Equal(t, f.scope.UserID, *stored.UpdatedByID)

	other := dbtest.Company(t, f.db, "globex")
	err = f.events.SetEventStatus(ctx, tenant.New(other.ID, 0, time.UTC), ev.ID, event.StatusCompleted)
	assert.True(t, httperr.IsNotFound(err))

	assert.ErrorIs(t, f.events.SetEventStatus(ctx, tenant.Scope{}, ev.ID, event.StatusCompleted), tenant.ErrNoTenant)
}
