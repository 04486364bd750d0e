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

type CommentService struct {
	commentRepo repository.CommentRepository
	diaryRepo   repository.DiaryRepository
	enrich      *enricher
}

func NewCommentService(commentRepo repository.CommentRepository, diaryRepo repository.DiaryRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		diaryRepo:   diaryRepo,
		enrich:      &enricher{userRepo: userRepo, likeRepo: likeRepo},
	}
}

func (s *CommentService) Create(ctx context.Context, diaryID uuid.UUID, user *domain.User, content string) (*CommentView, error) {
	// The diary must exist; comments never attach to missing entries.
	if _, err := s.diaryRepo.GetByID(ctx, diaryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiaryNotFound
		}
		return nil, err
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.New(),
		DiaryID:   diaryID,
		Content:   content,
		Author:    user.DisplayName(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	viewerID := user.ID
	return s.enrich.commentView(ctx, comment, &viewerID)
}

func (s *CommentService) ListByDiary(ctx context.Context, diaryID uuid.UUID, sort domain.CommentSort, viewerID *uuid.UUID) ([]*CommentView, error) {
	comments, err := s.commentRepo.ListByDiaryID(ctx, diaryID, sort)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, comments, viewerID)
}

func (s *CommentService) ListMine(ctx context.Context, userID uuid.UUID) ([]*CommentView, error) {
	comments, err := s.commentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, comments, &userID)
}

func (s *CommentService) buildViews(ctx context.Context, comments []*domain.Comment, viewerID *uuid.UUID) ([]*CommentView, error) {
	views := make([]*CommentView, 0, len(comments))
	for _, comment := range comments {
		view, err := s.enrich.commentView(ctx, comment, viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CommentService) Update(ctx context.Context, id, userID uuid.UUID, content string) (*CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.enrich.commentView(ctx, comment, &userID)
}

func (s *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return domain.ErrNotOwner
	}

	return s.commentRepo.Delete(ctx, id)
}
