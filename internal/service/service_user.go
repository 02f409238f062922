package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register the JPEG decoder for avatar uploads
	"image/png"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// defaultAvatarMaxPixels applies when the config leaves the pixel limit unset.
const defaultAvatarMaxPixels = 4096 * 4096

var errImageTooLarge = errors.New("image dimensions are too large")

// avatarExtensions lists accepted avatar file name extensions (lower case).
var avatarExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

type userService struct {
	userRepository   store.UserRepository
	validator        validators.Validator
	passwordHashCost int
	avatarMaxBytes   int64
	avatarSize       int
	avatarMaxPixels  int64
	logger           *logger.Logger
}

// NewUserService builds the profile service. Password hashing follows the
// same cost as signup; avatars are limited by avatar.
func NewUserService(userRepository store.UserRepository, app config.App, avatar config.Avatar, logger *logger.Logger) UserService {
	maxPixels := avatar.MaxPixels
	if maxPixels <= 0 {
		maxPixels = defaultAvatarMaxPixels
	}

	return &userService{
		userRepository:   userRepository,
		validator:        validators.NewUserValidator(),
		passwordHashCost: app.PasswordHashCost,
		avatarMaxBytes:   avatar.MaxBytes,
		avatarSize:       avatar.Size,
		avatarMaxPixels:  maxPixels,
		logger:           logger,
	}
}

func (u *userService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, u.mapError(err)
	}

	return user, nil
}

// UpdateProfile normalizes and validates update, then persists it in a single
// statement. The password is rehashed only when it is part of update.
func (u *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	validators.NormalizeUserUpdate(&update)
	if err := u.validator.Validate(ctx, update); err != nil {
		log.Debug().Err(err).Msg("profile update rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if update.Password != nil {
		hash, err := utils.HashPassword(*update.Password, u.passwordHashCost)
		if err != nil {
			log.Err(err).Msg("error hashing password")
			return models.User{}, err
		}
		update.PasswordHash = &hash
		update.Password = nil
	}

	user, err := u.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		return models.User{}, u.mapError(err)
	}

	log.Info().Str("user_id", userID.String()).Msg("profile updated")
	return user, nil
}

// DeleteAccount removes the user, its sessions and its tasks atomically.
func (u *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := u.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID.String()).Msg("account deletion failed")
		return models.User{}, u.mapError(err)
	}

	logger.FromContext(ctx).Info().Str("user_id", userID.String()).Msg("account deleted")
	return user, nil
}

// SetAvatar checks the upload, scales it to a square PNG and stores it.
//
// Returns ErrInvalidAvatar when data is empty or too large, the file name has
// an unsupported extension, the bytes are not a decodable image or the image
// declares more pixels than allowed.
func (u *userService) SetAvatar(ctx context.Context, userID uuid.UUID, filename string, data []byte) error {
	log := logger.FromContext(ctx)

	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidAvatar)
	}
	if u.avatarMaxBytes > 0 && int64(len(data)) > u.avatarMaxBytes {
		return fmt.Errorf("%w: file is larger than %d bytes", ErrInvalidAvatar, u.avatarMaxBytes)
	}
	if _, ok := avatarExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		return fmt.Errorf("%w: please upload an image", ErrInvalidAvatar)
	}

	avatar, err := resizeAvatar(data, u.avatarSize, u.avatarMaxPixels)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID.String()).Msg("avatar rejected")
		return fmt.Errorf("%w: %w", ErrInvalidAvatar, err)
	}

	if err = u.userRepository.SetAvatar(ctx, userID, avatar); err != nil {
		return u.mapError(err)
	}

	return nil
}

func (u *userService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	if err := u.userRepository.SetAvatar(ctx, userID, nil); err != nil {
		return u.mapError(err)
	}

	return nil
}

func (u *userService) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	avatar, err := u.userRepository.GetAvatar(ctx, userID)
	if err != nil {
		return nil, u.mapError(err)
	}

	return avatar, nil
}

func (u *userService) mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrAvatarNotFound):
		return ErrAvatarNotFound
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailAlreadyExists
	default:
		return err
	}
}

// resizeAvatar decodes a JPEG or PNG image, crops its centre to a square and
// scales it to size x size pixels. The result is PNG-encoded.
//
// The header is read first; images declaring more than maxPixels are
// rejected before any bitmap is allocated.
func resizeAvatar(data []byte, size int, maxPixels int64) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", errImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	bounds := src.Bounds()
	edge := min(bounds.Dx(), bounds.Dy())
	if edge == 0 {
		return nil, errors.New("image has no pixels")
	}
	x0 := bounds.Min.X + (bounds.Dx()-edge)/2
	y0 := bounds.Min.Y + (bounds.Dy()-edge)/2
	crop := image.Rect(x0, y0, x0+edge, y0+edge)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("error encoding png: %w", err)
	}

	return buf.Bytes(), nil
}
