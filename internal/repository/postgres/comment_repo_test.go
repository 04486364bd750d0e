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

func TestCommentRepository_ListByDiaryID_Sorting(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	diary := testutil.NewDiaryBuilder().WithOwner(owner).Build(t, testDB.DB)

	// Three comments with explicit arrival order
	base := time.Now().Add(-time.Hour)
	makeComment := func(content string, offset time.Duration) *domain.Comment {
		comment := &domain.Comment{
			ID:        uuid.New(),
			DiaryID:   diary.ID,
			Content:   content,
			Author:    owner.DisplayName(),
			UserID:    owner.ID,
			CreatedAt: base.Add(offset),
			UpdatedAt: base.Add(offset),
		}
		require.NoError(t, repo.Create(ctx, comment))
		return comment
	}

	first := makeComment("first", 0)
	second := makeComment("second", time.Minute)
	third := makeComment("third", 2*time.Minute)

	// second gets two likes, third gets one, first gets none
	for i := 0; i < 2; i++ {
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		testutil.CreateLike(t, testDB.DB, domain.LikeTargetComment, second.ID, user.ID)
	}
	liker, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.CreateLike(t, testDB.DB, domain.LikeTargetComment, third.ID, liker.ID)

	t.Run("newest first", func(t *testing.T) {
		comments, err := repo.ListByDiaryID(ctx, diary.ID, domain.CommentSortNewest)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, third.ID, comments[0].ID)
		assert.Equal(t, second.ID, comments[1].ID)
		assert.Equal(t, first.ID, comments[2].ID)
	})

	t.Run("by likes, ties in arrival order", func(t *testing.T) {
		comments, err := repo.ListByDiaryID(ctx, diary.ID, domain.CommentSortLikes)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, second.ID, comments[0].ID)
		assert.Equal(t, third.ID, comments[1].ID)
		assert.Equal(t, first.ID, comments[2].ID)
	})
}

func TestCommentRepository_ListByDiaryID_LikesSortTies(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	diary := testutil.NewDiaryBuilder().WithOwner(owner).Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		comment := &domain.Comment{
			ID:        uuid.New(),
			DiaryID:   diary.ID,
			Content:   "tied",
			Author:    owner.DisplayName(),
			UserID:    owner.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, comment))
		ids = append(ids, comment.ID)
	}

	// All zero likes: arrival order throughout
	comments, err := repo.ListByDiaryID(ctx, diary.ID, domain.CommentSortLikes)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, comment := range comments {
		assert.Equal(t, ids[i], comment.ID)
	}
}

func TestCommentRepository_ListByUserID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCommentRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	diary := testutil.NewDiaryBuilder().WithOwner(owner).Build(t, testDB.DB)

	testutil.NewCommentBuilder().WithDiary(diary).WithOwner(owner).WithContent("mine").Build(t, testDB.DB)
	testutil.NewCommentBuilder().WithDiary(diary).WithOwner(other).WithContent("theirs").Build(t, testDB.DB)

	comments, err := repo.ListByUserID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "mine", comments[0].Content)
}
