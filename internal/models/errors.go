package models

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrImageNotFound = errors.New("image not found")

	ErrFileTooLarge        = errors.New("file size too large")
	ErrUnsupportedFileType = errors.New("unsupported image type")
)
