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

// DiaryView is a diary enriched with the read-time fields the stored
// entity never carries: like aggregates and the author's current
// profile image.
type DiaryView struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	IsPublic           bool      `json:"is_public"`
	Author             string    `json:"author"`
	UserID             uuid.UUID `json:"user_id"`
	AuthorProfileImage *string   `json:"author_profile_image"`
	LikesCount         int64     `json:"likes_count"`
	IsLiked            bool      `json:"is_liked"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CommentView struct {
	ID                 uuid.UUID `json:"id"`
	DiaryID            uuid.UUID `json:"diary_id"`
	Content            string    `json:"content"`
	Author             string    `json:"author"`
	UserID             uuid.UUID `json:"user_id"`
	AuthorProfileImage *string   `json:"author_profile_image"`
	LikesCount         int64     `json:"likes_count"`
	IsLiked            bool      `json:"is_liked"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DiaryPage is the envelope for paginated diary listings.
type DiaryPage struct {
	Items []*DiaryView `json:"items"`
	Total int64        `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

// enricher computes the read-time view fields shared by the diary and
// comment services.
type enricher struct {
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
}

func (e *enricher) likeState(ctx context.Context, targetType domain.LikeTarget, targetID uuid.UUID, viewerID *uuid.UUID) (int64, bool, error) {
	count, err := e.likeRepo.CountByTarget(ctx, targetType, targetID)
	if err != nil {
		return 0, false, err
	}

	liked := false
	if viewerID != nil {
		_, err := e.likeRepo.Get(ctx, targetType, targetID, *viewerID)
		if err == nil {
			liked = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
	}
	return count, liked, nil
}

func (e *enricher) authorProfileImage(ctx context.Context, authorID uuid.UUID) *string {
	author, err := e.userRepo.GetByID(ctx, authorID)
	if err != nil {
		// A deleted author just renders without a profile image.
		return nil
	}
	return author.ProfileImage
}

func (e *enricher) diaryView(ctx context.Context, diary *domain.Diary, viewerID *uuid.UUID) (*DiaryView, error) {
	count, liked, err := e.likeState(ctx, domain.LikeTargetDiary, diary.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &DiaryView{
		ID:                 diary.ID,
		Title:              diary.Title,
		Content:            diary.Content,
		IsPublic:           diary.IsPublic,
		Author:             diary.Author,
		UserID:             diary.UserID,
		AuthorProfileImage: e.authorProfileImage(ctx, diary.UserID),
		LikesCount:         count,
		IsLiked:            liked,
		CreatedAt:          diary.CreatedAt,
		UpdatedAt:          diary.UpdatedAt,
	}, nil
}

func (e *enricher) commentView(ctx context.Context, comment *domain.Comment, viewerID *uuid.UUID) (*CommentView, error) {
	count, liked, err := e.likeState(ctx, domain.LikeTargetComment, comment.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &CommentView{
		ID:                 comment.ID,
		DiaryID:            comment.DiaryID,
		Content:            comment.Content,
		Author:             comment.Author,
		UserID:             comment.UserID,
		AuthorProfileImage: e.authorProfileImage(ctx, comment.UserID),
		LikesCount:         count,
		IsLiked:            liked,
		CreatedAt:          comment.CreatedAt,
		UpdatedAt:          comment.UpdatedAt,
	}, nil
}
