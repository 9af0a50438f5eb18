package importer

import (
	"bytes"
	"testing"

	"casetrack/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c
		}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadWorkbook(t *testing.T) {
	t.Run("header and data rows", func(t *testing.T) {
		buf := buildWorkbook(t, [][]string{
			{"EMPID", "Loan Account No", "Customer Name"},
			{"EMP-1", "LN-1", "Asha Verma"},
			{"", "LN-2", "Ravi Kumar"},
		})

		sheet, err := ReadWorkbook(buf)
		require.NoError(t, err)

		assert.Equal(t, []string{"EMPID", "Loan Account No", "Customer Name"}, sheet.Headers)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, "LN-2", sheet.Rows[1][1])
	})

	t.Run("header-only workbook has no data rows", func(t *testing.T) {
		buf := buildWorkbook(t, [][]string{{"EMPID", "Loan Account No"}})

		sheet, err := ReadWorkbook(buf)
		require.NoError(t, err)
		assert.Empty(t, sheet.Rows)
	})

	t.Run("empty sheet is a validation error", func(t *testing.T) {
		buf := buildWorkbook(t, nil)

		_, err := ReadWorkbook(buf)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("garbage input fails to open", func(t *testing.T) {
		_, err := ReadWorkbook(bytes.NewBufferString("not a zip archive"))
		assert.Error(t, err)
	})
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	headers := []string{"EMPID", "Loan Account No", "POS"}
	rows := [][]string{
		{"EMP-1", "LN-1", "15000"},
		{"EMP-2", "LN-2", "22000"},
	}

	require.NoError(t, WriteWorkbook(&buf, "Cases", headers, rows))

	sheet, err := ReadWorkbook(&buf)
	require.NoError(t, err)
	assert.Equal(t, headers, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "22000", sheet.Rows[1][2])
}
