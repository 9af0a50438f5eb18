package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingStatus tracks where a case sits in the assignment lifecycle
type WorkingStatus string

const (
	WorkingStatusNew        WorkingStatus = "new"
	WorkingStatusAssigned   WorkingStatus = "assigned"
	WorkingStatusInProgress WorkingStatus = "in_progress"
	WorkingStatusClosed     WorkingStatus = "closed"
)

// CaseStatus tracks the resolution lifecycle, independent of assignment
type CaseStatus string

const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusResolved   CaseStatus = "resolved"
	CaseStatusClosed     CaseStatus = "closed"
)

// Case represents one debtor/loan record, keyed by (tenant, loan ID)
type Case struct {
	ID                 int64           `db:"id"`
	TenantID           int64           `db:"tenant_id"`
	LoanID             string          `db:"loan_id"`
	CustomerName       string          `db:"customer_name"`
	Mobile             string          `db:"mobile"`
	Address            string          `db:"address"`
	LoanAmount         string          `db:"loan_amount"`
	OutstandingAmount  string          `db:"outstanding_amount"`
	EMIAmount          string          `db:"emi_amount"`
	DaysPastDue        string          `db:"days_past_due"`
	Extensions         ExtensionMap    `db:"extensions"`
	TeamID             *int64          `db:"team_id"`
	TelecallerID       *int64          `db:"telecaller_id"`
	AssignedEmployeeID *string         `db:"assigned_employee_id"`
	Status             WorkingStatus   `db:"status"`
	CaseStatus         CaseStatus      `db:"case_status"`
	TotalCollected     decimal.Decimal `db:"total_collected_amount"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

// IsClosed returns true once the case has reached its terminal state
func (c *Case) IsClosed() bool {
	return c.CaseStatus == CaseStatusClosed
}

// IsAssignedTo checks whether the case is currently assigned to the given telecaller
func (c *Case) IsAssignedTo(telecallerID int64) bool {
	return c.TelecallerID != nil && *c.TelecallerID == telecallerID
}

// OutstandingDecimal parses the stored textual outstanding amount.
// The second return is false when the amount is missing or unparsable;
// callers must not treat that as a zero balance.
func (c *Case) OutstandingDecimal() (decimal.Decimal, bool) {
	if c.OutstandingAmount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(c.OutstandingAmount)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RemainingBalance computes outstanding minus collected. The second return
// is false when the outstanding amount is unknown.
func (c *Case) RemainingBalance() (decimal.Decimal, bool) {
	outstanding, ok := c.OutstandingDecimal()
	if !ok {
		return decimal.Zero, false
	}
	return outstanding.Sub(c.TotalCollected), true
}

// ShouldCloseAfter reports whether collecting up to newTotal settles the
// case. A case with an unknown outstanding amount never auto-closes.
func (c *Case) ShouldCloseAfter(newTotal decimal.Decimal) bool {
	outstanding, ok := c.OutstandingDecimal()
	if !ok {
		return false
	}
	return outstanding.IsPositive() && newTotal.GreaterThanOrEqual(outstanding)
}

// MarkContacted advances the working status on first logged contact.
// Logging never regresses status.
func (c *Case) MarkContacted() {
	if c.Status == WorkingStatusAssigned {
		c.Status = WorkingStatusInProgress
		if c.CaseStatus == CaseStatusPending {
			c.CaseStatus = CaseStatusInProgress
		}
	}
}

// Close moves both lifecycle fields to their terminal state
func (c *Case) Close() {
	c.Status = WorkingStatusClosed
	c.CaseStatus = CaseStatusClosed
}
