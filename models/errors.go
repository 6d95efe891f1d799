package models

import "errors"

var (
	ErrPaperNotFound = errors.New("paper not found")
	ErrUserNotFound  = errors.New("user not found")

	ErrCollaborationNotFound = errors.New("collaboration not found")
)
