package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type DiaryRepository interface {
	Create(ctx context.Context, diary *domain.Diary) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error)
	List(ctx context.Context, publicOnly bool, limit, offset int) ([]*domain.Diary, int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Diary, int64, error)
	Update(ctx context.Context, diary *domain.Diary) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByDiaryID(ctx context.Context, diaryID uuid.UUID, sort domain.CommentSort) ([]*domain.Comment, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Get(ctx context.Context, targetType domain.LikeTarget, targetID, userID uuid.UUID) (*domain.Like, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTarget(ctx context.Context, targetType domain.LikeTarget, targetID uuid.UUID) (int64, error)
}

type Repositories struct {
	User    UserRepository
	Diary   DiaryRepository
	Comment CommentRepository
	Like    LikeRepository
}
