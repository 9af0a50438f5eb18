package services

import (
	"context"
	"errors"
	"testing"

	"casetrack/domain/entities"
	"casetrack/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rosterOf(employees ...*entities.Employee) []*entities.Employee {
	return employees
}

func telecaller(id int64, employeeID string) *entities.Employee {
	return &entities.Employee{
		ID:         id,
		EmployeeID: employeeID,
		Name:       "Telecaller " + employeeID,
		Role:       entities.RoleTelecaller,
		Active:     true,
	}
}

func TestReconciliationService_ReconcileRows(t *testing.T) {
	ctx := context.Background()

	t.Run("matched EMPID auto-assigns, unmatched stays unassigned", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockEmployees.On("ListActiveTelecallers", ctx).
			Return(rosterOf(telecaller(7, "EMP-7")), nil)
		mockCases.On("Upsert", ctx, mock.AnythingOfType("*entities.Case")).Return(nil)

		rows := []entities.MappedRow{
			{Index: 0, EmployeeID: "EMP-7", Fields: map[string]string{entities.KeyLoanID: "LN-1"}},
			{Index: 1, EmployeeID: "EMP-404", Fields: map[string]string{entities.KeyLoanID: "LN-2"}},
			{Index: 2, EmployeeID: "", Fields: map[string]string{entities.KeyLoanID: "LN-3"}},
		}

		result, err := service.ReconcileRows(ctx, rows)
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalUploaded)
		assert.Equal(t, 1, result.AutoAssigned)
		assert.Equal(t, 2, result.Unassigned)
		assert.Empty(t, result.Errors)
		assert.NotEqual(t, result.BatchID.String(), "00000000-0000-0000-0000-000000000000")

		assigned := mockCases.Calls[0].Arguments.Get(1).(*entities.Case)
		require.NotNil(t, assigned.TelecallerID)
		assert.Equal(t, int64(7), *assigned.TelecallerID)
		assert.Equal(t, entities.WorkingStatusAssigned, assigned.Status)

		unassigned := mockCases.Calls[1].Arguments.Get(1).(*entities.Case)
		assert.Nil(t, unassigned.TelecallerID)
		assert.Equal(t, entities.WorkingStatusNew, unassigned.Status)

		mockCases.AssertExpectations(t)
		mockEmployees.AssertExpectations(t)
	})

	t.Run("row without loan id is recorded and skipped", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockEmployees.On("ListActiveTelecallers", ctx).Return(rosterOf(), nil)
		mockCases.On("Upsert", ctx, mock.AnythingOfType("*entities.Case")).Return(nil).Once()

		rows := []entities.MappedRow{
			{Index: 0, Fields: map[string]string{entities.KeyCustomerName: "No Loan"}},
			{Index: 1, Fields: map[string]string{entities.KeyLoanID: "LN-OK"}},
		}

		result, err := service.ReconcileRows(ctx, rows)
		require.NoError(t, err)

		assert.Equal(t, 1, result.TotalUploaded)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 0, result.Errors[0].RowIndex)
		assert.Equal(t, "No Loan", result.Errors[0].Row[entities.KeyCustomerName])

		mockCases.AssertExpectations(t)
	})

	t.Run("upsert failure does not abort the batch", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockEmployees.On("ListActiveTelecallers", ctx).Return(rosterOf(), nil)
		mockCases.On("Upsert", ctx, mock.MatchedBy(func(c *entities.Case) bool {
			return c.LoanID == "LN-BAD"
		})).Return(errors.New("constraint violation"))
		mockCases.On("Upsert", ctx, mock.MatchedBy(func(c *entities.Case) bool {
			return c.LoanID == "LN-GOOD"
		})).Return(nil)

		rows := []entities.MappedRow{
			{Index: 0, Fields: map[string]string{entities.KeyLoanID: "LN-BAD"}},
			{Index: 1, Fields: map[string]string{entities.KeyLoanID: "LN-GOOD"}},
		}

		result, err := service.ReconcileRows(ctx, rows)
		require.NoError(t, err)

		assert.Equal(t, 1, result.TotalUploaded)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 0, result.Errors[0].RowIndex)

		mockCases.AssertExpectations(t)
	})

	t.Run("roster load failure fails the batch up front", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockEmployees.On("ListActiveTelecallers", ctx).Return(nil, errors.New("db down"))

		_, err := service.ReconcileRows(ctx, []entities.MappedRow{
			{Index: 0, Fields: map[string]string{entities.KeyLoanID: "LN-1"}},
		})
		require.Error(t, err)
		mockCases.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("known keys land on fields, unknown keys in extensions", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockEmployees.On("ListActiveTelecallers", ctx).Return(rosterOf(), nil)
		mockCases.On("Upsert", ctx, mock.AnythingOfType("*entities.Case")).Return(nil)

		rows := []entities.MappedRow{{
			Index: 0,
			Fields: map[string]string{
				entities.KeyLoanID:            "LN-9",
				entities.KeyOutstandingAmount: "12500.50",
				"branch":                      "Pune East",
				"bucket":                      "B3",
			},
		}}

		_, err := service.ReconcileRows(ctx, rows)
		require.NoError(t, err)

		c := mockCases.Calls[0].Arguments.Get(1).(*entities.Case)
		assert.Equal(t, "12500.50", c.OutstandingAmount)

		branch, ok := c.Extensions.Get("branch")
		require.True(t, ok)
		assert.Equal(t, "Pune East", branch.String())
		_, ok = c.Extensions.Get(entities.KeyOutstandingAmount)
		assert.False(t, ok)
	})
}

func TestReconciliationService_CreateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults lifecycle fields", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		mockCases.On("Upsert", ctx, mock.AnythingOfType("*entities.Case")).Return(nil)

		created, err := service.CreateCase(ctx, &entities.Case{LoanID: "LN-NEW"})
		require.NoError(t, err)
		assert.Equal(t, entities.WorkingStatusNew, created.Status)
		assert.Equal(t, entities.CaseStatusPending, created.CaseStatus)
	})

	t.Run("rejects missing loan id", func(t *testing.T) {
		mockCases := new(testhelpers.MockCaseRepository)
		mockEmployees := new(testhelpers.MockEmployeeRepository)
		service := NewReconciliationService(mockCases, mockEmployees)

		_, err := service.CreateCase(ctx, &entities.Case{})
		require.Error(t, err)
		mockCases.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
