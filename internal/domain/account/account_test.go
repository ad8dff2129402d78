package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/calendar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
	"github.com/BruksfildServices01/calendar-scheduler/internal/timezone"
)

func TestValidateCompany(t *testing.T) {
	c := models.Company{Name: "  Acme ", Slug: " Acme-Clinic "}
	require.NoError(t, ValidateCompany(&c))
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "acme-clinic", c.Slug)
	assert.Equal(t, timezone.DefaultTimezone, c.Timezone)

	bad := models.Company{Slug: "acme clinic!", Timezone: "Mars/Olympus"}
	var ve *httperr.ValidationError
	require.ErrorAs(t, ValidateCompany(&bad), &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "slug")
	assert.Contains(t, ve.Fields, "timezone")
}

func TestValidateUser(t *testing.T) {
	u := models.User{Name: "Rita", Email: "  Rita@Acme.TEST "}
	require.NoError(t, ValidateUser(&u))
	assert.Equal(t, "rita@acme.test", u.Email)
	assert.Equal(t, models.RoleStaff, u.Role)

	bad := models.User{Email: "rita", Role: "admin"}
	var ve *httperr.ValidationError
	require.ErrorAs(t, ValidateUser(&bad), &ve)
	assert.Len(t, ve.Fields, 3)
}
