package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/tenant"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AccountGormRepository) CreateCompany(
	ctx context.Context,
	company *models.Company,
	owner *models.User,
) error {

	return writeErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx.Model(&models.Company{}).Where("slug = ?", company.Slug))
		if err != nil {
			return err
		}
		if taken {
			return httperr.Constraint("duplicate", "slug", "Já existe uma empresa com este identificador.")
		}

		active := company.Active
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		if err := keepInactive(ctx, tx, company, active); err != nil {
			return err
		}

		if owner == nil {
			return nil
		}
		owner.CompanyID = company.ID
		if err := assertEmailFree(tx, owner.Email); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(owner).Error
	}))
}

func (r *AccountGormRepository) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

func (r *AccountGormRepository) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

// UpdateCompany changes name and timezone of the caller's own company.
// Slug and active flag are administrator concerns.
func (r *AccountGormRepository) UpdateCompany(
	ctx context.Context,
	scope tenant.Scope,
	company *models.Company,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}
	if company.ID != scope.CompanyID {
		return httperr.NotFoundErr("company")
	}

	return r.db.WithContext(ctx).
		Model(company).
		Updates(map[string]any{
			"name":     company.Name,
			"timezone": company.Timezone,
		}).Error
}

func (r *AccountGormRepository) SetCompanyActive(ctx context.Context, slug string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("slug = ?", slug).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("company")
	}
	return nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *AccountGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("email = ?", account.NormalizeEmail(email)).
		First(&u).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(
	ctx context.Context,
	scope tenant.Scope,
	id uint,
) (*models.User, error) {

	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := q.
		Preload("Company").
		Preload("Professional").
		First(&u, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *AccountGormRepository) ListUsers(ctx context.Context, scope tenant.Scope) ([]models.User, error) {
	q, err := scoped(ctx, r.db, scope)
	if err != nil {
		return nil, err
	}

	var out []models.User
	if err := q.Preload("Professional").Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	scope tenant.Scope,
	user *models.User,
) error {

	if err := scope.Validate(); err != nil {
		return err
	}
	user.ID = 0
	user.CompanyID = scope.CompanyID

	if err := assertEmailFree(r.db.WithContext(ctx), user.Email); err != nil {
		return err
	}
	if user.ProfessionalID != nil {
		if err := r.assertProfessionalLinkable(ctx, scope, 0, *user.ProfessionalID); err != nil {
			return err
		}
	}
	return writeErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *AccountGormRepository) LinkProfessional(
	ctx context.Context,
	scope tenant.Scope,
	userID uint,
	professionalID *uint,
) error {

	user, err := r.GetUser(ctx, scope, userID)
	if err != nil {
		return err
	}
	if professionalID != nil {
		if err := r.assertProfessionalLinkable(ctx, scope, user.ID, *professionalID); err != nil {
			return err
		}
	}

	return writeErr(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND company_id = ?", user.ID, scope.CompanyID).
		Update("professional_id", professionalID).Error)
}

// assertProfessionalLinkable requires the professional to be in the company
// and not already linked to another user.
func (r *AccountGormRepository) assertProfessionalLinkable(
	ctx context.Context,
	scope tenant.Scope,
	userID uint,
	professionalID uint,
) error {

	found, err := exists(r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ? AND company_id = ?", professionalID, scope.CompanyID))
	if err != nil {
		return err
	}
	if !found {
		return httperr.NotFoundErr("professional")
	}

	linked, err := exists(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("professional_id = ? AND id <> ?", professionalID, userID))
	if err != nil {
		return err
	}
	if linked {
		return httperr.Constraint("duplicate", "professional", "Profissional já vinculado a outro usuário.")
	}
	return nil
}

func assertEmailFree(db *gorm.DB, email string) error {
	taken, err := exists(db.Model(&models.User{}).Where("email = ?", email))
	if err != nil {
		return err
	}
	if taken {
		return httperr.Constraint("duplicate", "email", "E-mail já cadastrado.")
	}
	return nil
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
