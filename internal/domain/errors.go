package domain

import "errors"

// Content errors
var (
	ErrDiaryNotFound   = errors.New("diary not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("not the owner of this resource")
	ErrEmptyUpdate     = errors.New("no fields to update")
)
