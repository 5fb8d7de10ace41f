package identity

import "time"

// Role classifies a directory record; values mirror the type_user column.
type Role int

const (
	RoleAdmin Role = iota
	RolePatient
	RoleOperator
)

// User represents an authenticatable principal from the directory. The OTP
// subsystem only ever reads these records.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
	CreatedAt time.Time
}
