package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/event"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *CatalogGormRepository) ListProfessionals(
	ctx context.Context,
	scope tenant.Scope,
	f catalog.ProfessionalFilter,
) ([]models.Professional, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}

	var out []models.Professional
	if err := q.
		Preload("UserAccount").
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetProfessional(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) (*models.Professional, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var p models.Professional
	if err := q.Preload("UserAccount").First(&p, id).Error; err != nil {
		return nil, notFound(err, "professional")
	}
	return &p, nil
}

func (r *CatalogGormRepository) CreateProfessional(
	ctx context.Context,
	scope tenant.Scope,
	p *models.Professional,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}
	p.ID = 0
	p.CompanyID = scope.CompanyID

	if err := r.assertProfessionalNameFree(ctx, scope, p); err != nil {
		return err
	}
	active := p.Active
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return writeErr(err)
	}
	return keepInactive(ctx, r.db, p, active)
}

func (r *CatalogGormRepository) UpdateProfessional(
	ctx context.Context,
	scope tenant.Scope,
	p *models.Professional,
) error {

	if _, err := r.GetProfessional(ctx, scope, p.ID); err != nil {
		return err
	}
	p.CompanyID = scope.CompanyID

	if err := r.assertProfessionalNameFree(ctx, scope, p); err != nil {
		return err
	}
	return writeErr(r.db.WithContext(ctx).
		Model(p).
		Omit(clause.Associations).
		Updates(map[string]any{"name": p.Name, "active": p.Active}).Error)
}

func (r *CatalogGormRepository) assertProfessionalNameFree(
	ctx context.Context,
	scope tenant.Scope,
	p *models.Professional,
) error {

	taken, err := exists(r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("company_id = ? AND name = ? AND id <> ?", scope.CompanyID, p.Name, p.ID))
	if err != nil {
		return err
	}
	if taken {
		return httperr.Constraint("duplicate", "name", "Já existe um profissional com este nome.")
	}
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// ListClients searches by name when f.Query is set, otherwise returns the
// most recently created clients.
func (r *CatalogGormRepository) ListClients(
	ctx context.Context,
	scope tenant.Scope,
	f catalog.ClientFilter,
) ([]models.Client, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query != "" {
		like := "%" + catalog.EscapeLike(query) + "%"
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, like).
			Order("name ASC").
			Limit(catalog.ClientSearchLimit)
	} else {
		q = q.Order("id DESC").Limit(catalog.ClientRecentLimit)
	}

	var out []models.Client
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetClient(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) (*models.Client, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var cl models.Client
	if err := q.First(&cl, id).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &cl, nil
}

func (r *CatalogGormRepository) CreateClient(
	ctx context.Context,
	scope tenant.Scope,
	cl *models.Client,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}
	cl.ID = 0
	cl.CompanyID = scope.CompanyID

	if err := r.assertClientFree(ctx, scope, cl); err != nil {
		return err
	}
	return writeErr(r.db.WithContext(ctx).Create(cl).Error)
}

func (r *CatalogGormRepository) UpdateClient(
	ctx context.Context,
	scope tenant.Scope,
	cl *models.Client,
) error {

	if _, err := r.GetClient(ctx, scope, cl.ID); err != nil {
		return err
	}
	cl.CompanyID = scope.CompanyID

	if err := r.assertClientFree(ctx, scope, cl); err != nil {
		return err
	}
	return writeErr(r.db.WithContext(ctx).
		Model(cl).
		Omit(clause.Associations).
		Updates(map[string]any{"name": cl.Name, "phone": cl.Phone}).Error)
}

// assertClientFree checks the name inside the company and the phone across
// all companies.
func (r *CatalogGormRepository) assertClientFree(
	ctx context.Context,
	scope tenant.Scope,
	cl *models.Client,
) error {

	taken, err := exists(r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("company_id = ? AND name = ? AND id <> ?", scope.CompanyID, cl.Name, cl.ID))
	if err != nil {
		return err
	}
	if taken {
		return httperr.Constraint("duplicate", "name", "Já existe um cliente com este nome.")
	}

	if cl.Phone != nil {
		taken, err := exists(r.db.WithContext(ctx).
			Model(&models.Client{}).
			Where("phone = ? AND id <> ?", *cl.Phone, cl.ID))
		if err != nil {
			return err
		}
		if taken {
			return httperr.Constraint("duplicate", "phone", "Já existe um cliente com este telefone.")
		}
	}

	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	scope tenant.Scope,
	f catalog.ServiceFilter,
) ([]models.Service, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}
	if f.ProfessionalID != nil {
		q = q.Where("professional_id = ?", *f.ProfessionalID)
	}
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}

	var out []models.Service
	if err := q.Preload("Professional").Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) (*models.Service, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var s models.Service
	if err := q.Preload("Professional").First(&s, id).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	scope tenant.Scope,
	s *models.Service,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}
	s.ID = 0
	s.CompanyID = scope.CompanyID

	if err := r.assertServiceRefs(ctx, scope, s); err != nil {
		return err
	}
	active := s.Active
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error; err != nil {
		return writeErr(err)
	}
	return keepInactive(ctx, r.db, s, active)
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	scope tenant.Scope,
	s *models.Service,
) error {

	stored, err := r.GetService(ctx, scope, s.ID)
	if err != nil {
		return err
	}
	s.CompanyID = scope.CompanyID

	if s.ProfessionalID != stored.ProfessionalID {
		inUse, err := r.serviceInUse(ctx, scope, s.ID)
		if err != nil {
			return err
		}
		if inUse {
			return httperr.Constraint("service_in_use", "professional", "Serviço possui agendamentos e não pode mudar de profissional.")
		}
	}

	if err := r.assertServiceRefs(ctx, scope, s); err != nil {
		return err
	}
	return writeErr(r.db.WithContext(ctx).
		Model(s).
		Omit(clause.Associations).
		Updates(map[string]any{
			"professional_id": s.ProfessionalID,
			"name":            s.Name,
			"duration_min":    s.DurationMin,
			"value":           s.Value,
			"active":          s.Active,
		}).Error)
}

// assertServiceRefs checks the professional belongs to the company and the
// name is free for that professional.
func (r *CatalogGormRepository) assertServiceRefs(
	ctx context.Context,
	scope tenant.Scope,
	s *models.Service,
) error {

	if _, err := r.GetProfessional(ctx, scope, s.ProfessionalID); err != nil {
		return err
	}

	taken, err := exists(r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where(
			"company_id = ? AND professional_id = ? AND name = ? AND id <> ?",
			scope.CompanyID, s.ProfessionalID, s.Name, s.ID,
		))
	if err != nil {
		return err
	}
	if taken {
		return httperr.Constraint("duplicate", "name", "Este profissional já possui um serviço com este nome.")
	}
	return nil
}

func (r *CatalogGormRepository) DeleteService(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) error {

	s, err := r.GetService(ctx, scope, id)
	if err != nil {
		return err
	}

	inUse, err := r.serviceInUse(ctx, scope, s.ID)
	if err != nil {
		return err
	}
	if inUse {
		return httperr.Constraint("service_in_use", "service", "Serviço possui agendamentos e não pode ser removido.")
	}

	return writeErr(r.db.WithContext(ctx).Delete(s).Error)
}

// serviceInUse reports whether any event references the service.
func (r *CatalogGormRepository) serviceInUse(ctx context.Context, scope tenant.Scope, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("company_id = ? AND service_id = ?", scope.CompanyID, id))
}

// Compile-time check
var (
	_ catalog.Repository = (*CatalogGormRepository)(nil)
	_ event.Resolver     = (*CatalogGormRepository)(nil)
)
