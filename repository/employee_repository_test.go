package repository

import (
	"context"
	"testing"

	"casetrack/domain/entities"
	"casetrack/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_GetByEmployeeID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEmployeeRepository(testDB.DB, testTenantID)
	ctx := context.Background()

	id := testutil.InsertTestTelecaller(t, testDB.DB, testTenantID, "EMP-100", "Neha Singh")

	t.Run("found", func(t *testing.T) {
		e, err := repo.GetByEmployeeID(ctx, "EMP-100")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, id, e.ID)
		assert.Equal(t, "Neha Singh", e.Name)
		assert.True(t, e.CanReceiveCases())
	})

	t.Run("not found", func(t *testing.T) {
		e, err := repo.GetByEmployeeID(ctx, "EMP-NOPE")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("scoped to tenant", func(t *testing.T) {
		otherRepo := NewEmployeeRepository(testDB.DB, testTenantID+1)
		e, err := otherRepo.GetByEmployeeID(ctx, "EMP-100")
		require.NoError(t, err)
		assert.Nil(t, e)
	})
}

func TestEmployeeRepository_ListActiveTelecallers(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEmployeeRepository(testDB.DB, testTenantID)
	ctx := context.Background()

	testutil.InsertTestTelecaller(t, testDB.DB, testTenantID, "EMP-201", "Caller A")
	testutil.InsertTestTelecaller(t, testDB.DB, testTenantID, "EMP-202", "Caller B")
	testutil.InsertTestEmployee(t, testDB.DB, testTenantID, "EMP-203", "Inactive C", entities.RoleTelecaller, false)
	testutil.InsertTestEmployee(t, testDB.DB, testTenantID, "EMP-204", "Incharge D", entities.RoleTeamIncharge, true)
	testutil.InsertTestTelecaller(t, testDB.DB, testTenantID+1, "EMP-205", "Other Tenant E")

	roster, err := repo.ListActiveTelecallers(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "EMP-201", roster[0].EmployeeID)
	assert.Equal(t, "EMP-202", roster[1].EmployeeID)
}

func TestEmployeeRepository_ListByTeam(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEmployeeRepository(testDB.DB, testTenantID)
	teamRepo := NewTeamRepository(testDB.DB, testTenantID)
	ctx := context.Background()

	teamID := testutil.InsertTestTeam(t, testDB.DB, testTenantID, "South Zone")
	memberID := testutil.InsertTestTelecaller(t, testDB.DB, testTenantID, "EMP-301", "Member One")
	_, err := testDB.DB.Pool.Exec(ctx,
		`UPDATE employees SET team_id = $1 WHERE id = $2`, teamID, memberID)
	require.NoError(t, err)
	testutil.InsertTestTelecaller(t, testDB.DB, testTenantID, "EMP-302", "No Team")

	members, err := repo.ListByTeam(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "EMP-301", members[0].EmployeeID)

	team, err := teamRepo.GetByID(ctx, teamID)
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "South Zone", team.Name)
}
