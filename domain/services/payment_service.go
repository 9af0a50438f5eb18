package services

import (
	"context"
	"fmt"
	"strconv"

	"casetrack/domain"
	"casetrack/domain/entities"
	"casetrack/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrPaymentConflict is returned when concurrent payments on the same case
// keep invalidating the conditional write
var ErrPaymentConflict = domain.NewConflictError("concurrent payment detected, retry the operation")

// paymentRetries bounds the compare-and-swap retry loop
const paymentRetries = 3

// PaymentService accumulates collected amounts per case and closes the case
// once the outstanding balance is settled. The running total is monotonic;
// closure is irreversible.
type PaymentService struct {
	cases    interfaces.CaseRepository
	callLogs interfaces.CallLogRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(cases interfaces.CaseRepository, callLogs interfaces.CallLogRepository) *PaymentService {
	return &PaymentService{cases: cases, callLogs: callLogs}
}

// RecordPayment appends a payment_received log entry and applies the amount
// to the case's running total with a conditional write: the new total is
// stored only if the previously read total is still current, retrying a
// bounded number of times before surfacing a conflict.
//
// A case whose outstanding amount is missing or unparsable accrues the
// total but is never auto-closed.
func (s *PaymentService) RecordPayment(ctx context.Context, caseID, employeeID int64, amount decimal.Decimal, notes string) (*entities.Case, error) {
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "payment amount must be positive")
	}
	if notes == "" {
		return nil, domain.NewValidationError("notes", "notes are required")
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %d: %w", caseID, err)
	}
	if c == nil {
		return nil, domain.NewNotFoundError("case", strconv.FormatInt(caseID, 10))
	}

	entry := &entities.CallLogEntry{
		CaseID:          c.ID,
		EmployeeID:      employeeID,
		Outcome:         entities.OutcomePaymentReceived,
		Notes:           notes,
		AmountCollected: &amount,
	}
	if err := s.callLogs.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record payment entry for case %d: %w", caseID, err)
	}

	for attempt := 0; attempt < paymentRetries; attempt++ {
		prior := c.TotalCollected
		newTotal := prior.Add(amount)
		settled := c.ShouldCloseAfter(newTotal)

		applied, err := s.cases.UpdateCollectedConditional(ctx, c.ID, prior, newTotal, settled)
		if err != nil {
			return nil, fmt.Errorf("failed to apply payment to case %d: %w", caseID, err)
		}
		if applied {
			c.TotalCollected = newTotal
			if settled {
				c.Close()
			}
			log.WithFields(log.Fields{
				"case_id":   c.ID,
				"amount":    amount,
				"new_total": newTotal,
				"closed":    settled,
			}).Info("Payment recorded")
			return c, nil
		}

		// Lost the race; reload and try again on the fresh total
		c, err = s.cases.GetByID(ctx, caseID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload case %d: %w", caseID, err)
		}
		if c == nil {
			return nil, domain.NewNotFoundError("case", strconv.FormatInt(caseID, 10))
		}
	}

	return nil, ErrPaymentConflict
}
