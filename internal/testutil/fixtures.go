package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	nickname string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithNickname sets the nickname
func (b *UserBuilder) WithNickname(nickname string) *UserBuilder {
	b.nickname = nickname
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	nickname := b.nickname
	if nickname == "" {
		nickname = b.username
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		Nickname:     nickname,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenResponse matches the API auth response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
	} `json:"user"`
}

// BuildAndAuthenticate registers a user via the API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"nickname": b.nickname,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(tokenResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: tokenResp.User.Username,
		Email:    tokenResp.User.Email,
		Nickname: tokenResp.User.Nickname,
	}

	return user, tokenResp.AccessToken
}

// DiaryBuilder creates test diaries with a builder pattern
type DiaryBuilder struct {
	owner    *domain.User
	title    string
	content  string
	isPublic bool
}

// NewDiaryBuilder creates a new DiaryBuilder with default values
func NewDiaryBuilder() *DiaryBuilder {
	return &DiaryBuilder{
		title:    "Test Diary",
		content:  "Test content",
		isPublic: true,
	}
}

// WithOwner sets the diary owner
func (b *DiaryBuilder) WithOwner(user *domain.User) *DiaryBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *DiaryBuilder) WithTitle(title string) *DiaryBuilder {
	b.title = title
	return b
}

// WithContent sets the content
func (b *DiaryBuilder) WithContent(content string) *DiaryBuilder {
	b.content = content
	return b
}

// Private marks the diary as private
func (b *DiaryBuilder) Private() *DiaryBuilder {
	b.isPublic = false
	return b
}

// Build creates the diary in the database
func (b *DiaryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Diary {
	t.Helper()

	if b.owner == nil {
		b.owner, _ = NewUserBuilder().Build(t, db)
	}

	diary := &domain.Diary{
		ID:        uuid.New(),
		Title:     b.title,
		Content:   b.content,
		IsPublic:  b.isPublic,
		Author:    b.owner.DisplayName(),
		UserID:    b.owner.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(diary).Error; err != nil {
		t.Fatalf("failed to create diary: %v", err)
	}

	return diary
}

// CommentBuilder creates test comments with a builder pattern
type CommentBuilder struct {
	diary   *domain.Diary
	owner   *domain.User
	content string
}

// NewCommentBuilder creates a new CommentBuilder with default values
func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{
		content: "Test comment",
	}
}

// WithDiary sets the diary the comment belongs to
func (b *CommentBuilder) WithDiary(diary *domain.Diary) *CommentBuilder {
	b.diary = diary
	return b
}

// WithOwner sets the comment owner
func (b *CommentBuilder) WithOwner(user *domain.User) *CommentBuilder {
	b.owner = user
	return b
}

// WithContent sets the content
func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.content = content
	return b
}

// Build creates the comment in the database
func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Comment {
	t.Helper()

	if b.owner == nil {
		b.owner, _ = NewUserBuilder().Build(t, db)
	}
	if b.diary == nil {
		b.diary = NewDiaryBuilder().WithOwner(b.owner).Build(t, db)
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		DiaryID:   b.diary.ID,
		Content:   b.content,
		Author:    b.owner.DisplayName(),
		UserID:    b.owner.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}

// CreateLike inserts a like row directly
func CreateLike(t *testing.T, db *gorm.DB, targetType domain.LikeTarget, targetID, userID uuid.UUID) *domain.Like {
	t.Helper()

	like := &domain.Like{
		ID:         uuid.New(),
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("failed to create like: %v", err)
	}
	return like
}

// DoRequest performs an HTTP request against the test server with an
// optional bearer token and JSON body.
func DoRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
