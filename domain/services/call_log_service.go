package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"casetrack/domain"
	"casetrack/domain/entities"
	"casetrack/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrMissingPromiseDate is returned when a PTP outcome is logged without a
// usable promise date
var ErrMissingPromiseDate = domain.NewValidationError("promise_to_pay_at", "promise-to-pay date is required")

// Promise dates earlier than this are treated as placeholder values, not
// real commitments
var minPromiseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RecentHistoryLimit is the default window the UI shows per case
const RecentHistoryLimit = 5

// LogCallRequest carries one interaction to be recorded
type LogCallRequest struct {
	CaseID          int64
	EmployeeID      int64
	Outcome         entities.CallOutcome
	Notes           string
	PromiseToPayAt  *time.Time
	AmountCollected *decimal.Decimal
}

// CallLogService appends immutable interaction records and drives the
// case's working status from them
type CallLogService struct {
	cases    interfaces.CaseRepository
	callLogs interfaces.CallLogRepository
}

// NewCallLogService creates a new CallLogService
func NewCallLogService(cases interfaces.CaseRepository, callLogs interfaces.CallLogRepository) *CallLogService {
	return &CallLogService{cases: cases, callLogs: callLogs}
}

// LogCall validates and appends one interaction record. The first logged
// contact advances an assigned case to in_progress; logging never
// regresses status.
func (s *CallLogService) LogCall(ctx context.Context, req LogCallRequest) (*entities.CallLogEntry, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	c, err := s.cases.GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %d: %w", req.CaseID, err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("case", strconv.FormatInt(req.CaseID, 10))
	}

	entry := &entities.CallLogEntry{
		CaseID:          c.ID,
		EmployeeID:      req.EmployeeID,
		Outcome:         req.Outcome,
		Notes:           req.Notes,
		PromiseToPayAt:  req.PromiseToPayAt,
		AmountCollected: req.AmountCollected,
	}
	if err := s.callLogs.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append call log for case %d: %w", req.CaseID, err)
	}

	beforeStatus, beforeCaseStatus := c.Status, c.CaseStatus
	c.MarkContacted()
	if c.Status != beforeStatus || c.CaseStatus != beforeCaseStatus {
		if err := s.cases.UpdateStatus(ctx, c.ID, c.Status, c.CaseStatus); err != nil {
			return nil, fmt.Errorf("failed to advance status for case %d: %w", req.CaseID, err)
		}
	}

	log.WithFields(log.Fields{
		"case_id":  c.ID,
		"outcome":  req.Outcome,
		"employee": req.EmployeeID,
	}).Debug("Call logged")

	return entry, nil
}

// GetHistory returns a case's interaction records, most recent first.
// limit <= 0 returns the full history. Entries carry the logging employee's
// display name; a failed lookup degrades to the Unknown sentinel instead of
// failing the read.
func (s *CallLogService) GetHistory(ctx context.Context, caseID int64, limit int) ([]*entities.CallLogEntry, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %d: %w", caseID, err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("case", strconv.FormatInt(caseID, 10))
	}

	entries, err := s.callLogs.ListByCase(ctx, caseID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs for case %d: %w", caseID, err)
	}
	for _, e := range entries {
		if e.EmployeeName == "" {
			e.EmployeeName = entities.UnknownEmployeeName
		}
	}
	return entries, nil
}

func (s *CallLogService) validate(req LogCallRequest) error {
	if !req.Outcome.IsValid() {
		return domain.NewValidationError("outcome", fmt.Sprintf("unknown outcome %q", req.Outcome))
	}
	if req.Notes == "" {
		return domain.NewValidationError("notes", "notes are required")
	}
	if req.Outcome.RequiresPromiseDate() {
		if req.PromiseToPayAt == nil || req.PromiseToPayAt.Before(minPromiseDate) {
			return ErrMissingPromiseDate
		}
	}
	if req.Outcome.RequiresAmount() {
		if req.AmountCollected == nil {
			return domain.NewValidationError("amount_collected", "collected amount is required")
		}
		if req.AmountCollected.IsNegative() {
			return domain.NewValidationError("amount_collected", "collected amount cannot be negative")
		}
	}
	return nil
}
