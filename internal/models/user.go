package models

import "time"

type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleOperator UserRole = "operator"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"` // manager / operator
	EmployeeID   string   `gorm:"size:64;index"`    // head-office employee reference
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
