package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, RoleMember.Can(CapModerateContent))
	assert.False(t, RoleMember.Can(CapManageAccounts))

	assert.True(t, RoleModerator.Can(CapModerateContent))
	assert.True(t, RoleModerator.Can(CapViewAuditLog))
	assert.False(t, RoleModerator.Can(CapManageAccounts))

	assert.True(t, RoleAdmin.Can(CapModerateContent))
	assert.True(t, RoleAdmin.Can(CapManageAccounts))
	assert.True(t, RoleAdmin.Can(CapViewAuditLog))

	assert.False(t, UserRole("guest").Can(CapModerateContent))
}

func TestUserRoleIsValid(t *testing.T) {
	assert.True(t, RoleMember.IsValid())
	assert.True(t, RoleModerator.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("root").IsValid())
}
