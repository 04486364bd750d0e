package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DiaryID   uuid.UUID `json:"diary_id" gorm:"type:uuid;index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	Author    string    `json:"author" gorm:"not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentSort selects the ordering of a diary's comment listing.
type CommentSort string

const (
	CommentSortNewest CommentSort = "newest"
	CommentSortLikes  CommentSort = "likes"
)
