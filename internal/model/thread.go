package model

import (
	"time"
)

const DefaultThreadTitle = "New conversation"

type ThreadList []Thread

type Thread struct {
	ID            string    `db:"id" json:"id"`
	OwnerID       string    `db:"owner_id" json:"owner_id"`
	Title         string    `db:"title" json:"title"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated" json:"last_updated"`
}
