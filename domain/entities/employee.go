package entities

import "time"

// EmployeeRole distinguishes front-line callers from supervisors
type EmployeeRole string

const (
	RoleTelecaller   EmployeeRole = "telecaller"
	RoleTeamIncharge EmployeeRole = "team_incharge"
	RoleAdmin        EmployeeRole = "admin"
)

// Employee represents a company staff member within one tenant.
// EmployeeID is the human-readable identifier used in uploads (EMPID);
// ID is the internal surrogate key.
type Employee struct {
	ID         int64        `db:"id"`
	TenantID   int64        `db:"tenant_id"`
	EmployeeID string       `db:"employee_id"`
	Name       string       `db:"name"`
	Mobile     string       `db:"mobile"`
	Role       EmployeeRole `db:"role"`
	TeamID     *int64       `db:"team_id"`
	Active     bool         `db:"active"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

// IsTelecaller returns true for front-line workers
func (e *Employee) IsTelecaller() bool {
	return e.Role == RoleTelecaller
}

// CanReceiveCases reports whether cases may be assigned to this employee
func (e *Employee) CanReceiveCases() bool {
	return e.Active && e.IsTelecaller()
}

// Team represents a group of telecallers under one incharge
type Team struct {
	ID         int64     `db:"id"`
	TenantID   int64     `db:"tenant_id"`
	Name       string    `db:"name"`
	InchargeID *int64    `db:"incharge_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
