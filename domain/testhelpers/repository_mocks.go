package testhelpers

import (
	"context"

	"casetrack/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCaseRepository is a mock implementation of CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id int64) (*entities.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Case), args.Error(1)
}

func (m *MockCaseRepository) GetByLoanID(ctx context.Context, loanID string) (*entities.Case, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Case), args.Error(1)
}

func (m *MockCaseRepository) Upsert(ctx context.Context, c *entities.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateAssignment(ctx context.Context, c *entities.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateStatus(ctx context.Context, caseID int64, status entities.WorkingStatus, caseStatus entities.CaseStatus) error {
	args := m.Called(ctx, caseID, status, caseStatus)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateCollectedConditional(ctx context.Context, caseID int64, prior, newTotal decimal.Decimal, close bool) (bool, error) {
	args := m.Called(ctx, caseID, prior, newTotal, close)
	return args.Bool(0), args.Error(1)
}

func (m *MockCaseRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCallLogRepository is a mock implementation of CallLogRepository
type MockCallLogRepository struct {
	mock.Mock
}

func (m *MockCallLogRepository) Append(ctx context.Context, entry *entities.CallLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCallLogRepository) ListByCase(ctx context.Context, caseID int64, limit int) ([]*entities.CallLogEntry, error) {
	args := m.Called(ctx, caseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CallLogEntry), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*entities.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*entities.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActiveTelecallers(ctx context.Context) ([]*entities.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListByTeam(ctx context.Context, teamID int64) ([]*entities.Employee, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Employee), args.Error(1)
}

// MockTeamRepository is a mock implementation of TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context) ([]*entities.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

// MockColumnConfigRepository is a mock implementation of ColumnConfigRepository
type MockColumnConfigRepository struct {
	mock.Mock
}

func (m *MockColumnConfigRepository) ListByProduct(ctx context.Context, product string) ([]*entities.ColumnConfiguration, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ColumnConfiguration), args.Error(1)
}

func (m *MockColumnConfigRepository) Upsert(ctx context.Context, cfg *entities.ColumnConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
