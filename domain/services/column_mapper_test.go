package services

import (
	"testing"

	"casetrack/domain"
	"casetrack/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goldLoanConfigs() []*entities.ColumnConfiguration {
	return []*entities.ColumnConfiguration{
		{InternalKey: entities.KeyLoanID, DisplayName: "Loan Account No", Position: 1},
		{InternalKey: entities.KeyCustomerName, DisplayName: "Customer Name", Position: 2},
		{InternalKey: entities.KeyOutstandingAmount, DisplayName: "POS", Position: 3},
	}
}

func TestColumnMapper_ResolveHeaders(t *testing.T) {
	mapper := NewColumnMapper()

	tests := []struct {
		name        string
		headers     []string
		wantErr     error
		wantIgnored []string
	}{
		{
			name:    "all headers match",
			headers: []string{"EMPID", "Loan Account No", "Customer Name", "POS"},
		},
		{
			name:    "identifier is case-insensitive and trimmed",
			headers: []string{"  empid ", "Loan Account No"},
		},
		{
			name:        "unmatched headers are ignored",
			headers:     []string{"EMPID", "Loan Account No", "Branch Code"},
			wantIgnored: []string{"Branch Code"},
		},
		{
			name:    "display names match ignoring case and padding",
			headers: []string{"EMPID", " loan account no "},
		},
		{
			name:    "missing identifier column",
			headers: []string{"Loan Account No", "Customer Name"},
			wantErr: ErrMissingIdentifierColumn,
		},
		{
			name:    "empty header row",
			headers: nil,
			wantErr: ErrMissingIdentifierColumn,
		},
		{
			name:    "nothing matches",
			headers: []string{"EMPID", "Branch Code", "Region"},
			wantErr: ErrNoColumnsMatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, err := mapper.ResolveHeaders(goldLoanConfigs(), tt.headers)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIgnored, mapping.Ignored)
		})
	}
}

func TestColumnMapper_MapRows(t *testing.T) {
	mapper := NewColumnMapper()

	mapping, err := mapper.ResolveHeaders(goldLoanConfigs(),
		[]string{"EMPID", "Loan Account No", "Customer Name", "POS"})
	require.NoError(t, err)

	rows := [][]string{
		{"EMP-1", "LN-1", " Asha Verma ", "15000"},
		{"", "LN-2", "Ravi Kumar"}, // short row: POS cell missing
		{"EMP-2"},                  // only the identifier
	}

	mapped := mapper.MapRows(mapping, rows)
	require.Len(t, mapped, 3)

	assert.Equal(t, "EMP-1", mapped[0].EmployeeID)
	assert.Equal(t, "LN-1", mapped[0].Fields[entities.KeyLoanID])
	assert.Equal(t, "Asha Verma", mapped[0].Fields[entities.KeyCustomerName])

	// Missing cells become empty strings, not omissions
	assert.Equal(t, "", mapped[1].EmployeeID)
	assert.Equal(t, "", mapped[1].Fields[entities.KeyOutstandingAmount])
	assert.Contains(t, mapped[1].Fields, entities.KeyOutstandingAmount)

	assert.Equal(t, "EMP-2", mapped[2].EmployeeID)
	assert.Equal(t, "", mapped[2].Fields[entities.KeyLoanID])
}

func TestColumnMapper_ExportHeaders(t *testing.T) {
	mapper := NewColumnMapper()

	headers := mapper.ExportHeaders(goldLoanConfigs())
	assert.Equal(t, []string{"EMPID", "Loan Account No", "Customer Name", "POS"}, headers)

	t.Run("no configs still yields the identifier", func(t *testing.T) {
		assert.Equal(t, []string{"EMPID"}, mapper.ExportHeaders(nil))
	})
}
