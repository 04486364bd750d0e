package service

import (
	"github.com/hana/diary-share/internal/config"
	"github.com/hana/diary-share/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Diary   *DiaryService
	Comment *CommentService
	Like    *LikeService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg),
		Diary:   NewDiaryService(repos.Diary, repos.User, repos.Like),
		Comment: NewCommentService(repos.Comment, repos.Diary, repos.User, repos.Like),
		Like:    NewLikeService(repos.Like, repos.Diary, repos.Comment),
	}
}
