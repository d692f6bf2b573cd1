package model

import (
	"fmt"
	"time"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPending UserStatus = "pending"
	UserStatusBlocked UserStatus = "blocked"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch status := UserStatus(s); status {
	case UserStatusActive, UserStatusPending, UserStatusBlocked:
		return status, nil
	default:
		return "", fmt.Errorf("unknown user status: %q", s)
	}
}

type User struct {
	ID        string     `db:"id" json:"id"`
	Username  string     `db:"username" json:"username"`
	Email     string     `db:"email" json:"email"`
	Status    UserStatus `db:"status" json:"status"`
	IsAdmin   bool       `db:"is_admin" json:"is_admin"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
