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

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "alice",
				Email:        "alice@example.com",
				Nickname:     "alice",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "alice", // Same as above
				Email:        "alice2@example.com",
				Nickname:     "alice2",
				PasswordHash: "hashedpassword2",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				ID:           uuid.New(),
				Username:     "bob",
				Email:        "alice@example.com", // Same as the first user
				Nickname:     "bob",
				PasswordHash: "hashedpassword3",
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("byname_user").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		want     *domain.User
		wantErr  bool
	}{
		{
			name:     "existing user",
			username: "byname_user",
			want:     user,
		},
		{
			name:     "non-existent user",
			username: "nonexistent",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByUsername(ctx, tt.username)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Username, got.Username)
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("byemail@example.com").
		Build(t, testDB.DB)

	got, err := repo.GetByEmail(ctx, "byemail@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.Error(t, err)
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("update_user").
		Build(t, testDB.DB)

	user.Nickname = "new nickname"
	imagePath := "/uploads/profile_images/test.png"
	user.ProfileImage = &imagePath
	err := repo.Update(ctx, user)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new nickname", got.Nickname)
	require.NotNil(t, got.ProfileImage)
	assert.Equal(t, imagePath, *got.ProfileImage)
}
