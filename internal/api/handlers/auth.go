package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hana/diary-share/internal/api/middleware"
	"github.com/hana/diary-share/internal/config"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/service"
	"go.uber.org/zap"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxUploadBytes = 10 << 20

type AuthHandler struct {
	authService *service.AuthService
	uploadDir   string
	log         *zap.SugaredLogger
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploadDir:   cfg.UploadDir,
		log:         log,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			respondError(w, http.StatusConflict, "Username already registered")
		case errors.Is(err, service.ErrEmailExists):
			respondError(w, http.StatusConflict, "Email already registered")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		User:        result.User,
	})
}

// Login accepts form-encoded credentials (the OAuth2 password flow the
// original frontend tooling speaks). LoginJSON is the JSON variant.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	h.login(w, r, r.PostFormValue("username"), r.PostFormValue("password"))
}

func (h *AuthHandler) LoginJSON(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.login(w, r, req.Username, req.Password)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, username, password string) {
	if username == "" || password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		User:        result.User,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		respondError(w, http.StatusBadRequest, "Invalid file type. Allowed types: jpg, jpeg, png, gif, webp")
		return
	}

	// One image per user: the file is keyed by user ID and overwrites
	// any previous upload.
	dir := filepath.Join(h.uploadDir, "profile_images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.log.Errorw("create upload dir", "dir", dir, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	filename := user.ID.String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		h.log.Errorw("create upload file", "file", filename, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.log.Errorw("write upload file", "file", filename, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	updated, err := h.authService.SetProfileImage(r.Context(), user.ID, "/uploads/profile_images/"+filename)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

type UpdateProfileRequest struct {
	Nickname        *string `json:"nickname"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, service.UpdateProfileInput{
		Nickname:        req.Nickname,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			respondError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, service.ErrCurrentPasswordMissing):
			respondError(w, http.StatusBadRequest, "Current password is required to change password")
		case errors.Is(err, service.ErrCurrentPasswordMismatch):
			respondError(w, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
