package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"gorm.io/gorm"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Get(ctx context.Context, targetType domain.LikeTarget, targetID, userID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "target_type = ? AND target_id = ? AND user_id = ?", targetType, targetID, userID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "id = ?", id).Error
}

func (r *likeRepository) CountByTarget(ctx context.Context, targetType domain.LikeTarget, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
