package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarhub-backend/internal/models"
)

func TestUserListRoleFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	for _, role := range []string{
		models.RoleModerator, models.RoleModerator,
		models.RoleUser, models.RoleUser, models.RoleUser,
		models.RoleAdmin,
	} {
		seedUser(t, db, role)
	}

	moderators, err := svc.List(models.RoleModerator)
	require.NoError(t, err)
	require.Len(t, moderators, 2)
	for _, u := range moderators {
		assert.Equal(t, models.RoleModerator, u.Role)
	}

	all, err := svc.List("all")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	unfiltered, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 6)

	_, err = svc.List("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
