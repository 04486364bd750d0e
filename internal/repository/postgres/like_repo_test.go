package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/repository/postgres"
	"github.com/hana/diary-share/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_UniquePerUserAndTarget(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLikeRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	diary := testutil.NewDiaryBuilder().WithOwner(user).Build(t, testDB.DB)

	like := &domain.Like{
		ID:         uuid.New(),
		TargetType: domain.LikeTargetDiary,
		TargetID:   diary.ID,
		UserID:     user.ID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, like))

	// Second row for the same (target_type, target_id, user_id) must
	// hit the unique index.
	dup := &domain.Like{
		ID:         uuid.New(),
		TargetType: domain.LikeTargetDiary,
		TargetID:   diary.ID,
		UserID:     user.ID,
		CreatedAt:  time.Now(),
	}
	assert.Error(t, repo.Create(ctx, dup))

	// Same user liking the same ID as a different target type is fine
	other := &domain.Like{
		ID:         uuid.New(),
		TargetType: domain.LikeTargetComment,
		TargetID:   diary.ID,
		UserID:     user.ID,
		CreatedAt:  time.Now(),
	}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestLikeRepository_CountByTarget(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLikeRepository(testDB.DB)
	ctx := context.Background()

	diary := testutil.NewDiaryBuilder().Build(t, testDB.DB)

	count, err := repo.CountByTarget(ctx, domain.LikeTargetDiary, diary.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	for i := 0; i < 3; i++ {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		testutil.CreateLike(t, testDB.DB, domain.LikeTargetDiary, diary.ID, user.ID)
	}

	count, err = repo.CountByTarget(ctx, domain.LikeTargetDiary, diary.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestLikeRepository_GetAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLikeRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	diary := testutil.NewDiaryBuilder().WithOwner(user).Build(t, testDB.DB)

	_, err := repo.Get(ctx, domain.LikeTargetDiary, diary.ID, user.ID)
	assert.Error(t, err)

	created := testutil.CreateLike(t, testDB.DB, domain.LikeTargetDiary, diary.ID, user.ID)

	got, err := repo.Get(ctx, domain.LikeTargetDiary, diary.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.Get(ctx, domain.LikeTargetDiary, diary.ID, user.ID)
	assert.Error(t, err)
}
