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

type DiaryService struct {
	diaryRepo repository.DiaryRepository
	enrich    *enricher
}

func NewDiaryService(diaryRepo repository.DiaryRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository) *DiaryService {
	return &DiaryService{
		diaryRepo: diaryRepo,
		enrich:    &enricher{userRepo: userRepo, likeRepo: likeRepo},
	}
}

type CreateDiaryInput struct {
	Title    string
	Content  string
	IsPublic bool
}

type UpdateDiaryInput struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

func (s *DiaryService) Create(ctx context.Context, user *domain.User, input CreateDiaryInput) (*DiaryView, error) {
	now := time.Now()
	diary := &domain.Diary{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		IsPublic:  input.IsPublic,
		Author:    user.DisplayName(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.diaryRepo.Create(ctx, diary); err != nil {
		return nil, err
	}

	viewerID := user.ID
	return s.enrich.diaryView(ctx, diary, &viewerID)
}

func (s *DiaryService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*DiaryView, error) {
	diary, err := s.diaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiaryNotFound
		}
		return nil, err
	}
	return s.enrich.diaryView(ctx, diary, viewerID)
}

func (s *DiaryService) List(ctx context.Context, publicOnly bool, skip, limit int, viewerID *uuid.UUID) (*DiaryPage, error) {
	diaries, total, err := s.diaryRepo.List(ctx, publicOnly, limit, skip)
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, diaries, total, skip, limit, viewerID)
}

// ListMine returns the caller's diaries, private ones included.
func (s *DiaryService) ListMine(ctx context.Context, userID uuid.UUID, skip, limit int) (*DiaryPage, error) {
	diaries, total, err := s.diaryRepo.ListByUserID(ctx, userID, limit, skip)
	if err != nil {
		return nil, err
	}
	return s.buildPage(ctx, diaries, total, skip, limit, &userID)
}

func (s *DiaryService) buildPage(ctx context.Context, diaries []*domain.Diary, total int64, skip, limit int, viewerID *uuid.UUID) (*DiaryPage, error) {
	items := make([]*DiaryView, 0, len(diaries))
	for _, diary := range diaries {
		view, err := s.enrich.diaryView(ctx, diary, viewerID)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	return &DiaryPage{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *DiaryService) Update(ctx context.Context, id, userID uuid.UUID, input UpdateDiaryInput) (*DiaryView, error) {
	diary, err := s.diaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDiaryNotFound
		}
		return nil, err
	}

	if diary.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if input.Title == nil && input.Content == nil && input.IsPublic == nil {
		return nil, domain.ErrEmptyUpdate
	}

	if input.Title != nil {
		diary.Title = *input.Title
	}
	if input.Content != nil {
		diary.Content = *input.Content
	}
	if input.IsPublic != nil {
		diary.IsPublic = *input.IsPublic
	}
	diary.UpdatedAt = time.Now()

	if err := s.diaryRepo.Update(ctx, diary); err != nil {
		return nil, err
	}

	return s.enrich.diaryView(ctx, diary, &userID)
}

// Delete removes the diary only. Its comments and likes are left in
// place; nothing joins back to them once the diary row is gone.
func (s *DiaryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	diary, err := s.diaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDiaryNotFound
		}
		return err
	}

	if diary.UserID != userID {
		return domain.ErrNotOwner
	}

	return s.diaryRepo.Delete(ctx, id)
}
