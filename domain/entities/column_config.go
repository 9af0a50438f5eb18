package entities

import "time"

// FieldDataType declares how a mapped column's cells should be interpreted
type FieldDataType string

const (
	FieldTypeText   FieldDataType = "text"
	FieldTypeNumber FieldDataType = "number"
	FieldTypeDate   FieldDataType = "date"
)

// Canonical internal field keys. Columns mapped to one of these land on the
// case row itself; anything else goes into the extension map.
const (
	KeyLoanID            = "loan_id"
	KeyCustomerName      = "customer_name"
	KeyMobile            = "mobile"
	KeyAddress           = "address"
	KeyLoanAmount        = "loan_amount"
	KeyOutstandingAmount = "outstanding_amount"
	KeyEMIAmount         = "emi_amount"
	KeyDaysPastDue       = "days_past_due"
)

// ColumnConfiguration maps an internal field key to the display label a
// tenant uses in its spreadsheets. The mapping is bidirectional: import
// resolves label→key, export renders key→label.
// (tenant, internal key, product) is unique.
type ColumnConfiguration struct {
	ID          int64         `db:"id"`
	TenantID    int64         `db:"tenant_id"`
	InternalKey string        `db:"internal_key"`
	DisplayName string        `db:"display_name"`
	DataType    FieldDataType `db:"data_type"`
	Product     string        `db:"product"`
	Position    int           `db:"position"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}
