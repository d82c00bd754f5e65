package poster

import "errors"

var (
	ErrPosterNotFound      = errors.New("poster not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrStorageError        = errors.New("storage error")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
