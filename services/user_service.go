package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/database"
	"taskhive/taskhive/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetTokenTTL is the absolute lifetime of a password-reset token.
const ResetTokenTTL = 10 * time.Minute

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type ProfileInput struct {
	Name  string
	Email string
}

type UserServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	UpdateProfile(db *database.Database, id uuid.UUID, input ProfileInput) (models.User, error)
	UpdatePassword(db *database.Database, id uuid.UUID, currentPassword, newPassword string) (models.User, error)
	ForgotPassword(db *database.Database, email string) error
	ResetPassword(db *database.Database, rawToken, newPassword string) (models.User, error)
	VerifyEmail(db *database.Database, rawToken string) (models.User, error)
}

type UserService struct {
	auth   AuthServiceInterface
	emails EmailServiceInterface
}

func NewUserService(auth AuthServiceInterface, emails EmailServiceInterface) *UserService {
	return &UserService{auth: auth, emails: emails}
}

// newRandomToken returns nBytes of crypto/rand entropy, hex encoded.
func newRandomToken(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken is the one-way form reset tokens are stored in.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *UserService) Register(db *database.Database, input RegisterInput) (models.User, error) {
	email := normalizeEmail(input.Email)

	var count int64
	if err := db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	verificationToken, err := newRandomToken(24)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(input.Name),
		Email:             email,
		PasswordHash:      hash,
		Role:              models.RoleUser,
		VerificationToken: verificationToken,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	if s.emails != nil {
		if err := s.emails.SendVerificationEmail(user.Email, verificationToken); err != nil {
			log.Printf("Failed to send verification email to %s: %v", user.Email, err)
		}
	}

	broker.Publish(broker.UserSubject, broker.NewEvent(
		broker.UserCreated, "user", user.ID.String(),
		map[string]interface{}{"user_id": user.ID.String(), "email": user.Email},
	))

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: malformed user id", ErrInvalidInput)
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies the whitelisted mutable fields only: name and email.
func (s *UserService) UpdateProfile(db *database.Database, id uuid.UUID, input ProfileInput) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Name); name != "" {
		updates["name"] = name
	}
	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		var count int64
		if err := db.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return models.User{}, err
		}
		if count > 0 {
			return models.User{}, ErrEmailTaken
		}
		updates["email"] = email
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return models.User{}, err
		}
		broker.Publish(broker.UserSubject, broker.NewEvent(
			broker.UserUpdated, "user", user.ID.String(),
			map[string]interface{}{"user_id": user.ID.String()},
		))
	}

	return user, nil
}

// UpdatePassword requires the current password before accepting a new one.
func (s *UserService) UpdatePassword(db *database.Database, id uuid.UUID, currentPassword, newPassword string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if err := s.auth.ComparePasswords(user.PasswordHash, currentPassword); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return models.User{}, err
	}

	if err := db.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ForgotPassword stores the SHA-256 of a fresh random token with a 10-minute
// expiry and mails the raw token to the account address.
func (s *UserService) ForgotPassword(db *database.Database, email string) error {
	var user models.User
	if err := db.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	rawToken, err := newRandomToken(32)
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(ResetTokenTTL)

	updates := map[string]interface{}{
		"reset_password_token":  hashToken(rawToken),
		"reset_password_expiry": expiry,
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendPasswordResetEmail(user.Email, rawToken); err != nil {
			log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
		}
	}

	return nil
}

// ResetPassword matches by token hash and unelapsed expiry, then clears both
// so the token works exactly once.
func (s *UserService) ResetPassword(db *database.Database, rawToken, newPassword string) (models.User, error) {
	var user models.User
	err := db.DB.
		Where("reset_password_token = ? AND reset_password_expiry > ?", hashToken(rawToken), time.Now().UTC()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
		}
		return models.User{}, err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return models.User{}, err
	}

	updates := map[string]interface{}{
		"password_hash":         hash,
		"reset_password_token":  "",
		"reset_password_expiry": nil,
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// VerifyEmail matches the raw verification token, sets the verified flag and
// clears the token.
func (s *UserService) VerifyEmail(db *database.Database, rawToken string) (models.User, error) {
	if rawToken == "" {
		return models.User{}, fmt.Errorf("%w: verification token is required", ErrValidation)
	}

	var user models.User
	if err := db.DB.Where("verification_token = ?", rawToken).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: invalid verification token", ErrValidation)
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{
		"is_email_verified":  true,
		"verification_token": "",
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

var UserServiceInstance UserServiceInterface
