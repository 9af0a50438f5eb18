package entities

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CallOutcome represents the coded result of one debtor interaction
type CallOutcome string

const (
	OutcomeWrongNumber      CallOutcome = "wrong_number"
	OutcomeSwitchedOff      CallOutcome = "switched_off"
	OutcomeNoResponse       CallOutcome = "no_response"
	OutcomeBusy             CallOutcome = "busy"
	OutcomeCallBack         CallOutcome = "call_back"
	OutcomePromiseToPay     CallOutcome = "promise_to_pay"
	OutcomeFuturePromise    CallOutcome = "future_promise_to_pay"
	OutcomeBrokenPromise    CallOutcome = "broken_promise"
	OutcomeRefusedToPay     CallOutcome = "refused_to_pay"
	OutcomeNotContactable   CallOutcome = "not_contactable"
	OutcomeDisconnected     CallOutcome = "disconnected"
	OutcomeIncomplete       CallOutcome = "incomplete"
	OutcomePaymentReceived  CallOutcome = "payment_received"
)

var allOutcomes = map[CallOutcome]struct{}{
	OutcomeWrongNumber:     {},
	OutcomeSwitchedOff:     {},
	OutcomeNoResponse:      {},
	OutcomeBusy:            {},
	OutcomeCallBack:        {},
	OutcomePromiseToPay:    {},
	OutcomeFuturePromise:   {},
	OutcomeBrokenPromise:   {},
	OutcomeRefusedToPay:    {},
	OutcomeNotContactable:  {},
	OutcomeDisconnected:    {},
	OutcomeIncomplete:      {},
	OutcomePaymentReceived: {},
}

// IsValid reports whether the outcome is one of the fixed enumeration
func (o CallOutcome) IsValid() bool {
	_, ok := allOutcomes[o]
	return ok
}

// RequiresPromiseDate returns true for outcomes that carry a PTP commitment
func (o CallOutcome) RequiresPromiseDate() bool {
	return o == OutcomePromiseToPay || o == OutcomeFuturePromise
}

// RequiresAmount returns true for outcomes that carry a collected amount
func (o CallOutcome) RequiresAmount() bool {
	return o == OutcomePaymentReceived
}

// Description returns a human-readable label for the outcome
func (o CallOutcome) Description() string {
	switch o {
	case OutcomeWrongNumber:
		return "Wrong number"
	case OutcomeSwitchedOff:
		return "Switched off"
	case OutcomeNoResponse:
		return "No response"
	case OutcomeBusy:
		return "Busy"
	case OutcomeCallBack:
		return "Call back"
	case OutcomePromiseToPay:
		return "Promise to pay"
	case OutcomeFuturePromise:
		return "Future promise to pay"
	case OutcomeBrokenPromise:
		return "Broken promise"
	case OutcomeRefusedToPay:
		return "Refused to pay"
	case OutcomeNotContactable:
		return "Not contactable"
	case OutcomeDisconnected:
		return "Disconnected"
	case OutcomeIncomplete:
		return "Incomplete"
	case OutcomePaymentReceived:
		return "Payment received"
	default:
		return string(o)
	}
}

// UnknownEmployeeName is the sentinel used when display-name enrichment fails
const UnknownEmployeeName = "Unknown"

// CallLogEntry is one immutable interaction record on a case
type CallLogEntry struct {
	ID              int64            `db:"id"`
	TenantID        int64            `db:"tenant_id"`
	CaseID          int64            `db:"case_id"`
	EmployeeID      int64            `db:"employee_id"`
	EmployeeName    string           `db:"-"` // Enriched on read; degrades to UnknownEmployeeName
	Outcome         CallOutcome      `db:"outcome"`
	PromiseToPayAt  *time.Time       `db:"promise_to_pay_at"`
	Notes           string           `db:"notes"`
	AmountCollected *decimal.Decimal `db:"amount_collected"`
	CreatedAt       time.Time        `db:"created_at"`
}

// Validate checks the entry's internal invariants before it is appended
func (e *CallLogEntry) Validate() error {
	if !e.Outcome.IsValid() {
		return errors.New("unknown call outcome")
	}
	if e.Notes == "" {
		return errors.New("notes are required")
	}
	if e.Outcome.RequiresPromiseDate() && (e.PromiseToPayAt == nil || e.PromiseToPayAt.IsZero()) {
		return errors.New("promise-to-pay date is required")
	}
	if e.Outcome.RequiresAmount() {
		if e.AmountCollected == nil {
			return errors.New("collected amount is required")
		}
		if e.AmountCollected.IsNegative() {
			return errors.New("collected amount cannot be negative")
		}
	}
	return nil
}

// IsPayment returns true when the entry records a collection
func (e *CallLogEntry) IsPayment() bool {
	return e.Outcome == OutcomePaymentReceived
}
