package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hana/diary-share/internal/api/middleware"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	diaryID, ok := urlUUID(r, "diaryID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid diary ID format")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	view, err := h.commentService.Create(r.Context(), diaryID, user, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrDiaryNotFound) {
			respondError(w, http.StatusNotFound, "Diary not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (h *CommentHandler) ListByDiary(w http.ResponseWriter, r *http.Request) {
	diaryID, ok := urlUUID(r, "diaryID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid diary ID format")
		return
	}

	sort := domain.CommentSortNewest
	if r.URL.Query().Get("sort_by") == string(domain.CommentSortLikes) {
		sort = domain.CommentSortLikes
	}

	views, err := h.commentService.ListByDiary(r.Context(), diaryID, sort, viewerID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *CommentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := h.commentService.ListMine(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, ok := urlUUID(r, "commentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid comment ID format")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "Content is required")
		return
	}

	view, err := h.commentService.Update(r.Context(), commentID, user.ID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCommentNotFound):
			respondError(w, http.StatusNotFound, "Comment not found")
		case errors.Is(err, domain.ErrNotOwner):
			respondError(w, http.StatusForbidden, "You can only edit your own comments")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, ok := urlUUID(r, "commentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid comment ID format")
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, user.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrCommentNotFound):
			respondError(w, http.StatusNotFound, "Comment not found")
		case errors.Is(err, domain.ErrNotOwner):
			respondError(w, http.StatusForbidden, "You can only delete your own comments")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
