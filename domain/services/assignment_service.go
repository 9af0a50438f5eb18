package services

import (
	"context"
	"fmt"
	"strconv"

	"casetrack/domain"
	"casetrack/domain/entities"
	"casetrack/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ErrCaseClosed is returned for assignment mutations on a closed case.
// Closure is terminal; re-opening is a supervisor concern outside the engine.
var ErrCaseClosed = domain.NewConflictError("case is closed")

// AssignmentService moves cases between telecallers and teams and derives
// the working status from the assignment state
type AssignmentService struct {
	cases     interfaces.CaseRepository
	employees interfaces.EmployeeRepository
	teams     interfaces.TeamRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(cases interfaces.CaseRepository, employees interfaces.EmployeeRepository, teams interfaces.TeamRepository) *AssignmentService {
	return &AssignmentService{cases: cases, employees: employees, teams: teams}
}

// BulkOperateRequest describes one bulk assignment action
type BulkOperateRequest struct {
	Operation    entities.BulkCaseOperation
	TelecallerID int64 // required for assign
	TeamID       int64 // required for change_team
}

// Assign assigns a case to a telecaller and marks it assigned. Assigning a
// case to its current telecaller is idempotent.
func (s *AssignmentService) Assign(ctx context.Context, caseID, telecallerID int64) (*entities.Case, error) {
	c, err := s.mutableCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	tc, err := s.employees.GetByID(ctx, telecallerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up telecaller %d: %w", telecallerID, err)
	}
	if tc == nil || !tc.CanReceiveCases() {
		return nil, domain.NewNotFoundError("telecaller", strconv.FormatInt(telecallerID, 10))
	}

	if c.IsAssignedTo(telecallerID) {
		return c, nil
	}

	c.TelecallerID = &tc.ID
	empID := tc.EmployeeID
	c.AssignedEmployeeID = &empID
	c.Status = entities.WorkingStatusAssigned

	if err := s.cases.UpdateAssignment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to assign case %d: %w", caseID, err)
	}
	return c, nil
}

// Unassign clears the case's telecaller and returns it to the new state.
// Permitted from any non-closed state.
func (s *AssignmentService) Unassign(ctx context.Context, caseID int64) (*entities.Case, error) {
	c, err := s.mutableCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	c.TelecallerID = nil
	c.AssignedEmployeeID = nil
	c.Status = entities.WorkingStatusNew

	if err := s.cases.UpdateAssignment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to unassign case %d: %w", caseID, err)
	}
	return c, nil
}

// ChangeTeam moves the case to another team. Team and telecaller assignment
// are independent axes; the working status is untouched.
func (s *AssignmentService) ChangeTeam(ctx context.Context, caseID, newTeamID int64) (*entities.Case, error) {
	c, err := s.mutableCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, newTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up team %d: %w", newTeamID, err)
	}
	if team == nil {
		return nil, domain.NewNotFoundError("team", strconv.FormatInt(newTeamID, 10))
	}

	c.TeamID = &team.ID
	if err := s.cases.UpdateAssignment(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to change team for case %d: %w", caseID, err)
	}
	return c, nil
}

// BulkOperate applies one operation to each case sequentially. Each case
// succeeds or fails on its own; a failure never blocks the rest.
func (s *AssignmentService) BulkOperate(ctx context.Context, caseIDs []int64, req BulkOperateRequest) (*entities.BulkOperationResult, error) {
	result := &entities.BulkOperationResult{Total: len(caseIDs)}
	for _, caseID := range caseIDs {
		var err error
		switch req.Operation {
		case entities.BulkOpAssign:
			_, err = s.Assign(ctx, caseID, req.TelecallerID)
		case entities.BulkOpUnassign:
			_, err = s.Unassign(ctx, caseID)
		case entities.BulkOpChangeTeam:
			_, err = s.ChangeTeam(ctx, caseID, req.TeamID)
		default:
			return nil, domain.NewValidationError("operation", fmt.Sprintf("unknown bulk operation %q", req.Operation))
		}

		if err != nil {
			log.WithError(err).WithField("case_id", caseID).Warn("Bulk operation failed for case")
			result.Failed++
			result.ErrorDetails = append(result.ErrorDetails, entities.CaseOperationError{
				CaseID:  caseID,
				Message: err.Error(),
			})
			continue
		}
		result.Success++
	}
	return result, nil
}

// DeleteCase hard-deletes a case. Explicit supervisor action; irreversible.
func (s *AssignmentService) DeleteCase(ctx context.Context, caseID int64) error {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to load case %d: %w", caseID, err)
	}
	if c == nil {
		return domain.NewNotFoundError("case", strconv.FormatInt(caseID, 10))
	}
	if err := s.cases.Delete(ctx, caseID); err != nil {
		return fmt.Errorf("failed to delete case %d: %w", caseID, err)
	}
	log.WithFields(log.Fields{"case_id": caseID, "loan_id": c.LoanID}).Info("Case deleted")
	return nil
}

// mutableCase loads a case and rejects assignment mutation once it is closed
func (s *AssignmentService) mutableCase(ctx context.Context, caseID int64) (*entities.Case, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %d: %w", caseID, err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("case", strconv.FormatInt(caseID, 10))
	}
	if c.IsClosed() {
		return nil, ErrCaseClosed
	}
	return c, nil
}
