package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/repository"
	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	diaryRepo   repository.DiaryRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(likeRepo repository.LikeRepository, diaryRepo repository.DiaryRepository, commentRepo repository.CommentRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		diaryRepo:   diaryRepo,
		commentRepo: commentRepo,
	}
}

type ToggleResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// Toggle flips the caller's like on a diary or comment and returns the
// new state with the recomputed total. The read-then-write gap is not
// serialized; the unique index on likes keeps a racing double-insert
// from ever producing two rows.
func (s *LikeService) Toggle(ctx context.Context, targetType domain.LikeTarget, targetID, userID uuid.UUID) (*ToggleResult, error) {
	if err := s.checkTargetExists(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	liked := false
	existing, err := s.likeRepo.Get(ctx, targetType, targetID, userID)
	switch {
	case err == nil:
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &domain.Like{
			ID:         uuid.New(),
			TargetType: targetType,
			TargetID:   targetID,
			UserID:     userID,
			CreatedAt:  time.Now(),
		}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			return nil, err
		}
		liked = true
	default:
		return nil, err
	}

	count, err := s.likeRepo.CountByTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Liked: liked, LikesCount: count}, nil
}

func (s *LikeService) checkTargetExists(ctx context.Context, targetType domain.LikeTarget, targetID uuid.UUID) error {
	switch targetType {
	case domain.LikeTargetDiary:
		if _, err := s.diaryRepo.GetByID(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDiaryNotFound
			}
			return err
		}
	case domain.LikeTargetComment:
		if _, err := s.commentRepo.GetByID(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCommentNotFound
			}
			return err
		}
	}
	return nil
}
