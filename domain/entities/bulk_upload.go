package entities

import "github.com/google/uuid"

// MappedRow is one spreadsheet data row after header resolution: the EMPID
// identifier plus one entry per matched internal field key, cell values
// coerced to trimmed strings (empty cell → empty string, not omitted).
type MappedRow struct {
	Index      int
	EmployeeID string
	Fields     map[string]string
}

// RowError records one failed row of a bulk upload so the operator can
// correct and re-submit only the failed subset
type RowError struct {
	RowIndex int               `json:"row_index"`
	Message  string            `json:"message"`
	Row      map[string]string `json:"row"`
}

// BulkUploadResult is the ephemeral outcome of one reconciliation run.
// Invariants: AutoAssigned + Unassigned == TotalUploaded and
// TotalUploaded + len(Errors) equals the input row count.
type BulkUploadResult struct {
	BatchID       uuid.UUID  `json:"batch_id"`
	TotalUploaded int        `json:"total_uploaded"`
	AutoAssigned  int        `json:"auto_assigned"`
	Unassigned    int        `json:"unassigned"`
	Errors        []RowError `json:"errors"`
}

// BulkCaseOperation identifies which assignment operation a bulk request applies
type BulkCaseOperation string

const (
	BulkOpAssign     BulkCaseOperation = "assign"
	BulkOpUnassign   BulkCaseOperation = "unassign"
	BulkOpChangeTeam BulkCaseOperation = "change_team"
)

// CaseOperationError records one failed case in a bulk assignment operation
type CaseOperationError struct {
	CaseID  int64  `json:"case_id"`
	Message string `json:"message"`
}

// BulkOperationResult summarizes a bulk assignment operation. One case's
// failure never blocks the rest of the batch.
type BulkOperationResult struct {
	Total        int                  `json:"total"`
	Success      int                  `json:"success"`
	Failed       int                  `json:"failed"`
	ErrorDetails []CaseOperationError `json:"error_details"`
}
