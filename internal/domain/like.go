package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget names the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetDiary   LikeTarget = "diary"
	LikeTargetComment LikeTarget = "comment"
)

// Like records "user X likes target Y". The composite unique index keeps
// at most one row per (target_type, target_id, user_id) even if two
// toggle requests race.
type Like struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TargetType LikeTarget `json:"target_type" gorm:"uniqueIndex:idx_like_target_user;not null"`
	TargetID   uuid.UUID  `json:"target_id" gorm:"type:uuid;uniqueIndex:idx_like_target_user;not null"`
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_like_target_user;not null"`
	CreatedAt  time.Time  `json:"created_at"`
}
