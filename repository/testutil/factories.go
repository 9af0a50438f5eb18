package testutil

import (
	"context"
	"testing"

	"casetrack/database"
	"casetrack/domain/entities"

	"github.com/stretchr/testify/require"
)

// CreateTestCase creates an unassigned case with default values
func CreateTestCase(loanID, customerName string) *entities.Case {
	return &entities.Case{
		LoanID:            loanID,
		CustomerName:      customerName,
		Mobile:            "9876543210",
		OutstandingAmount: "15000",
		LoanAmount:        "50000",
		EMIAmount:         "2500",
		DaysPastDue:       "45",
		Status:            entities.WorkingStatusNew,
		CaseStatus:        entities.CaseStatusPending,
	}
}

// CreateTestCaseWithOutstanding creates a case with a specific outstanding amount
func CreateTestCaseWithOutstanding(loanID, outstanding string) *entities.Case {
	c := CreateTestCase(loanID, "Test Customer")
	c.OutstandingAmount = outstanding
	return c
}

// InsertTestTeam inserts a team row and returns its id
func InsertTestTeam(t *testing.T, db *database.DB, tenantID int64, name string) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO teams (tenant_id, name) VALUES ($1, $2) RETURNING id`,
		tenantID, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertTestEmployee inserts an employee row and returns its id
func InsertTestEmployee(t *testing.T, db *database.DB, tenantID int64, employeeID, name string, role entities.EmployeeRole, active bool) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO employees (tenant_id, employee_id, name, role, active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		tenantID, employeeID, name, role, active,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertTestTelecaller inserts an active telecaller and returns its id
func InsertTestTelecaller(t *testing.T, db *database.DB, tenantID int64, employeeID, name string) int64 {
	return InsertTestEmployee(t, db, tenantID, employeeID, name, entities.RoleTelecaller, true)
}
