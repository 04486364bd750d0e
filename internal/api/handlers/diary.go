package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/api/middleware"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/service"
)

type DiaryHandler struct {
	diaryService *service.DiaryService
}

func NewDiaryHandler(diaryService *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

type CreateDiaryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic *bool  `json:"is_public"`
}

type UpdateDiaryRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

// viewerID returns the optional caller identity for read-path enrichment.
func viewerID(r *http.Request) *uuid.UUID {
	if user, ok := middleware.GetUser(r.Context()); ok {
		id := user.ID
		return &id
	}
	return nil
}

func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	view, err := h.diaryService.Create(r.Context(), user, service.CreateDiaryInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: isPublic,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)
	publicOnly := queryBool(r, "public_only", true)

	page, err := h.diaryService.List(r.Context(), publicOnly, skip, limit, viewerID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (h *DiaryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	page, err := h.diaryService.ListMine(r.Context(), user.ID, skip, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "diaryID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid diary ID format")
		return
	}

	view, err := h.diaryService.Get(r.Context(), id, viewerID(r))
	if err != nil {
		if errors.Is(err, domain.ErrDiaryNotFound) {
			respondError(w, http.StatusNotFound, "Diary not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *DiaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := urlUUID(r, "diaryID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid diary ID format")
		return
	}

	var req UpdateDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.diaryService.Update(r.Context(), id, user.ID, service.UpdateDiaryInput{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDiaryNotFound):
			respondError(w, http.StatusNotFound, "Diary not found")
		case errors.Is(err, domain.ErrNotOwner):
			respondError(w, http.StatusForbidden, "You can only edit your own diaries")
		case errors.Is(err, domain.ErrEmptyUpdate):
			respondError(w, http.StatusBadRequest, "No fields to update")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *DiaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := urlUUID(r, "diaryID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid diary ID format")
		return
	}

	if err := h.diaryService.Delete(r.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDiaryNotFound):
			respondError(w, http.StatusNotFound, "Diary not found")
		case errors.Is(err, domain.ErrNotOwner):
			respondError(w, http.StatusForbidden, "You can only delete your own diaries")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
