package tenant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScope_Validate(t *testing.T) {
	assert.ErrorIs(t, Scope{}.Validate(), ErrNoTenant)
	assert.ErrorIs(t, Scope{UserID: 3}.Validate(), ErrNoTenant)
	assert.NoError(t, New(1, 0, nil).Validate())
}

func TestScope_Actor(t *testing.T) {
	assert.Nil(t, New(1, 0, nil).Actor())

	actor := New(1, 7, nil).Actor()
	if assert.NotNil(t, actor) {
		assert.Equal(t, uint(7), *actor)
	}
}

func TestScope_Loc(t *testing.T) {
	assert.Equal(t, time.UTC, Scope{}.Loc())

	loc := time.FixedZone("BRT", -3*3600)
	assert.Equal(t, loc, New(1, 1, loc).Loc())
}
