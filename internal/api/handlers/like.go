package handlers

import (
	"errors"
	"net/http"

	"github.com/hana/diary-share/internal/api/middleware"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleDiary(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetDiary, "diaryID")
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, domain.LikeTargetComment, "commentID")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, targetType domain.LikeTarget, param string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, ok := urlUUID(r, param)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	result, err := h.likeService.Toggle(r.Context(), targetType, targetID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDiaryNotFound):
			respondError(w, http.StatusNotFound, "Diary not found")
		case errors.Is(err, domain.ErrCommentNotFound):
			respondError(w, http.StatusNotFound, "Comment not found")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}
