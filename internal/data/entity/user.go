package entity

import "time"

type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Phone        *string    `db:"phone"`
	DOB          *time.Time `db:"dob"`
	Gender       *string    `db:"gender"`
	Role         UserRole   `db:"role"`
	NameChanged  bool       `db:"name_changed"`
}
