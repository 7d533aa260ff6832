package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.userRepo, env.roleRepo)

	env.createUser(t, "admin", "password", nil, env.adminRole)
	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	alice := env.createUser(t, "alice", "password", &manager.ID, env.userRole)
	env.createUser(t, "bob", "password", &manager.ID, env.userRole)
	require.NoError(t, env.db.Model(alice).Update("is_active", false).Error)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.ActiveUsers)
	assert.EqualValues(t, 1, stats.AdminCount)
	assert.EqualValues(t, 3, stats.TotalRoles)
}

func TestDashboardRecentUsers(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(env.userRepo, env.roleRepo)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	require.NoError(t, env.db.Model(manager).Update("created_date", base).Error)
	for i, name := range []string{"u1", "u2", "u3"} {
		u := env.createUser(t, name, "password", &manager.ID, env.userRole)
		require.NoError(t, env.db.Model(u).Update("created_date", base.Add(time.Duration(i+1)*time.Hour)).Error)
	}

	recent, err := svc.RecentUsers(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "u3", recent[0].UserName)
	assert.Equal(t, "u2", recent[1].UserName)

	// Non-positive counts fall back to the default window.
	recent, err = svc.RecentUsers(0)
	require.NoError(t, err)
	assert.Len(t, recent, 4)
}
