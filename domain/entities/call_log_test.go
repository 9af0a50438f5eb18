package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCallOutcome_Helpers(t *testing.T) {
	assert.True(t, OutcomePromiseToPay.IsValid())
	assert.False(t, CallOutcome("shouted").IsValid())

	assert.True(t, OutcomePromiseToPay.RequiresPromiseDate())
	assert.True(t, OutcomeFuturePromise.RequiresPromiseDate())
	assert.False(t, OutcomeBusy.RequiresPromiseDate())

	assert.True(t, OutcomePaymentReceived.RequiresAmount())
	assert.False(t, OutcomePromiseToPay.RequiresAmount())

	assert.Equal(t, "Payment received", OutcomePaymentReceived.Description())
	assert.Equal(t, "made_up", CallOutcome("made_up").Description())
}

func TestCallLogEntry_Validate(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	amount := decimal.NewFromInt(500)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		entry   CallLogEntry
		wantErr bool
	}{
		{
			name:  "simple outcome with notes",
			entry: CallLogEntry{Outcome: OutcomeBusy, Notes: "line busy"},
		},
		{
			name:    "invalid outcome",
			entry:   CallLogEntry{Outcome: "made_up", Notes: "n/a"},
			wantErr: true,
		},
		{
			name:    "missing notes",
			entry:   CallLogEntry{Outcome: OutcomeBusy},
			wantErr: true,
		},
		{
			name:    "promise without date",
			entry:   CallLogEntry{Outcome: OutcomePromiseToPay, Notes: "will pay"},
			wantErr: true,
		},
		{
			name:  "promise with date",
			entry: CallLogEntry{Outcome: OutcomePromiseToPay, Notes: "will pay", PromiseToPayAt: &future},
		},
		{
			name:    "payment without amount",
			entry:   CallLogEntry{Outcome: OutcomePaymentReceived, Notes: "paid"},
			wantErr: true,
		},
		{
			name:    "payment with negative amount",
			entry:   CallLogEntry{Outcome: OutcomePaymentReceived, Notes: "paid", AmountCollected: &negative},
			wantErr: true,
		},
		{
			name:  "payment with amount",
			entry: CallLogEntry{Outcome: OutcomePaymentReceived, Notes: "paid 500", AmountCollected: &amount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCallLogEntry_IsPayment(t *testing.T) {
	assert.True(t, (&CallLogEntry{Outcome: OutcomePaymentReceived}).IsPayment())
	assert.False(t, (&CallLogEntry{Outcome: OutcomeBusy}).IsPayment())
}
