package domain

import (
	"time"

	"github.com/google/uuid"
)

type Diary struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	IsPublic  bool      `json:"is_public" gorm:"not null;default:true"`
	Author    string    `json:"author" gorm:"not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
