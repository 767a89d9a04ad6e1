package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogapi/service/internal/storage"
)

// ErrInvalidUpload is returned when an upload grant request or image
// confirmation fails validation. No URL is signed in that case.
var ErrInvalidUpload = errors.New("invalid upload request")

// UploadGrant is a time-limited permission to PUT a profile image directly to
// the object store. The service never sees the upload bytes.
type UploadGrant struct {
	UploadURL string `json:"uploadUrl"`
	ImagePath string `json:"imagePath"`
}

// store is the subset of Repository the service depends on.
type store interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	UpdateImagePath(ctx context.Context, id int64, imagePath string) (*User, error)
}

// Service contains business logic for user accounts and profile images.
type Service struct {
	repo           store
	storage        storage.Storage
	uploadTTL      time.Duration
	maxUploadBytes int64
}

// NewService creates a new user Service.
func NewService(repo store, st storage.Storage, uploadTTL time.Duration, maxUploadBytes int64) *Service {
	return &Service{
		repo:           repo,
		storage:        st,
		uploadTTL:      uploadTTL,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create registers a new user account with an already-hashed password.
func (s *Service) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	return s.repo.Create(ctx, username, passwordHash)
}

// GetByID returns a user by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// ExistsUsername reports whether the username is taken.
func (s *Service) ExistsUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsUsername(ctx, username)
}

// CreateUploadGrant validates the declared file metadata and returns a
// presigned URL for the caller's own profile-image key. The key is derived
// from the authenticated caller id, so a caller can never obtain a grant for
// anyone else's object.
func (s *Service) CreateUploadGrant(ctx context.Context, callerID int64, fileName, contentType string, contentLength int64) (*UploadGrant, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidUpload)
	}
	if !strings.HasPrefix(contentType, "image/") || len(contentType) == len("image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image type", ErrInvalidUpload, contentType)
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("%w: content length must not be negative", ErrInvalidUpload)
	}
	if contentLength > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds limit %d", ErrInvalidUpload, contentLength, s.maxUploadBytes)
	}

	key := ProfileImagePath(callerID)
	uploadURL, err := s.storage.PresignUpload(ctx, key, contentType, contentLength, s.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("create upload grant: %w", err)
	}

	return &UploadGrant{UploadURL: uploadURL, ImagePath: key}, nil
}

// ConfirmProfileImage records imagePath as the caller's profile image after
// the client reports a finished upload. Only the path derived for the caller
// is accepted, and the object must actually be present in the store.
func (s *Service) ConfirmProfileImage(ctx context.Context, callerID int64, imagePath string) (*User, error) {
	if imagePath != ProfileImagePath(callerID) {
		return nil, fmt.Errorf("%w: image path does not belong to the caller", ErrInvalidUpload)
	}

	exists, err := s.storage.Exists(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("confirm profile image: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: no uploaded object at %q", ErrInvalidUpload, imagePath)
	}

	return s.repo.UpdateImagePath(ctx, callerID, imagePath)
}

// ImageURL returns the public URL for a user's confirmed profile image, or
// the empty string when no image has been confirmed yet.
func (s *Service) ImageURL(u *User) string {
	if u.ImagePath == nil || *u.ImagePath == "" {
		return ""
	}
	return s.storage.PublicURL(*u.ImagePath)
}
