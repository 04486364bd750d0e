package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByDiaryID(ctx context.Context, diaryID uuid.UUID, sort domain.CommentSort) ([]*domain.Comment, error) {
	var comments []*domain.Comment

	query := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("comments.diary_id = ?", diaryID)

	if sort == domain.CommentSortLikes {
		// Order by live like count; ties keep arrival order.
		query = query.
			Select("comments.*, COUNT(likes.id) AS likes_count").
			Joins("LEFT JOIN likes ON likes.target_type = ? AND likes.target_id = comments.id", domain.LikeTargetComment).
			Group("comments.id").
			Order("likes_count DESC, comments.created_at ASC")
	} else {
		query = query.Order("comments.created_at DESC")
	}

	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id).Error
}
