package domain

import "time"

type EmployeeRole string

const (
	RoleAdmin EmployeeRole = "admin"
	RoleStaff EmployeeRole = "staff"
)

func ParseEmployeeRole(raw string) (EmployeeRole, bool) {
	switch EmployeeRole(raw) {
	case RoleAdmin, RoleStaff:
		return EmployeeRole(raw), true
	}
	return "", false
}

type Employee struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         EmployeeRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
