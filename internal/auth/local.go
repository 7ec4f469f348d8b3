package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

const whereID = "id = ?"

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
// username matches the login name or the email address.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var user models.User

	err := p.db.WithContext(ctx).Where("username = ? OR email = ?", username, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	now := time.Now()
	user.LastLogin = &now

	if err := p.db.WithContext(ctx).Model(&models.User{}).
		Where(whereID, user.ID).
		Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record last login: %w", err)
	}

	return &user, nil
}

// CreateUser creates a new active admin account.
func (p *LocalProvider) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var existingUser models.User

	err := p.db.WithContext(ctx).Where("username = ? OR email = ?", username, email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:   true,
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// EnsureUser creates the account unless any user exists already.
// It reports whether an account was created.
func (p *LocalProvider) EnsureUser(ctx context.Context, username, email, password string) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return false, nil
	}

	if _, err := p.CreateUser(ctx, username, email, password); err != nil {
		return false, err
	}

	return true, nil
}

// ChangePassword changes a user's password.
func (p *LocalProvider) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyCredentials
	}

	user, err := p.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := models.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return p.db.WithContext(ctx).Model(&models.User{}).
		Where(whereID, userID).
		Update("password", hashedPassword).Error
}

// SetActive enables or disables a user account.
func (p *LocalProvider) SetActive(ctx context.Context, userID uint64, active bool) error {
	res := p.db.WithContext(ctx).Model(&models.User{}).
		Where(whereID, userID).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
