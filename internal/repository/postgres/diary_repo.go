package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"gorm.io/gorm"
)

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *diaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Create(ctx context.Context, diary *domain.Diary) error {
	return r.db.WithContext(ctx).Create(diary).Error
}

func (r *diaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	var diary domain.Diary
	err := r.db.WithContext(ctx).First(&diary, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *diaryRepository) List(ctx context.Context, publicOnly bool, limit, offset int) ([]*domain.Diary, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Diary{})
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diaries []*domain.Diary
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&diaries).Error
	if err != nil {
		return nil, 0, err
	}
	return diaries, total, nil
}

func (r *diaryRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Diary, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Diary{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var diaries []*domain.Diary
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&diaries).Error
	if err != nil {
		return nil, 0, err
	}
	return diaries, total, nil
}

func (r *diaryRepository) Update(ctx context.Context, diary *domain.Diary) error {
	return r.db.WithContext(ctx).Save(diary).Error
}

func (r *diaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Diary{}, "id = ?", id).Error
}
