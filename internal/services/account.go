package services

import (
	"errors"
	"strings"
	"time"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"

	"gorm.io/gorm"
)

// ResetTokenTTL bounds how long a password reset link stays usable.
const ResetTokenTTL = time.Hour

type AccountService struct {
	mail *MailService
}

func NewAccountService() *AccountService {
	return &AccountService{mail: NewMailService()}
}

// Register creates an unconfirmed account and mails the confirmation
// link. The mail is fire-and-forget: a delivery failure never rolls back
// the committed user row.
func (s *AccountService) Register(name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	var count int64
	db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		ConfirmationToken: utils.GenerateToken(),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	s.mail.SendConfirmationEmail(user.Email, user.Name, user.ConfirmationToken)
	return &user, nil
}

// ConfirmEmail consumes a confirmation token. The token is single use:
// it is cleared on success, and a second attempt finds no row and
// reports ErrInvalidToken without touching anything.
func (s *AccountService) ConfirmEmail(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var user models.User
	err := db.DB.Where("confirmation_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	if user.EmailConfirmed {
		// Token survived a confirmed account; report done, change nothing.
		return &user, ErrAlreadyConfirmed
	}

	updates := map[string]interface{}{
		"email_confirmed":    true,
		"confirmation_token": "",
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	user.EmailConfirmed = true
	user.ConfirmationToken = ""
	return &user, nil
}

// Authenticate checks credentials and the confirmation gate.
func (s *AccountService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailConfirmed {
		return nil, ErrNotConfirmed
	}
	return &user, nil
}

// ForgotPassword issues a reset token valid for one hour and mails the
// reset link.
func (s *AccountService) ForgotPassword(email string) error {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrNotFound
	}

	expiry := time.Now().Add(ResetTokenTTL)
	user.ResetToken = utils.GenerateToken()
	user.ResetTokenExpiry = &expiry
	if err := db.DB.Save(&user).Error; err != nil {
		return err
	}

	s.mail.SendPasswordResetEmail(user.Email, user.Name, user.ResetToken)
	return nil
}

// ResetPassword consumes a reset token. Expired or unknown tokens leave
// the stored credential untouched.
func (s *AccountService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}

	var user models.User
	err := db.DB.Where("reset_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return ErrInvalidToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return db.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash":      hash,
		"reset_token":        "",
		"reset_token_expiry": nil,
	}).Error
}

// UpdatePassword sets a new credential for a logged-in user.
func (s *AccountService) UpdatePassword(userID uint, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// CreateUser is the admin path: the account is created confirmed, with
// an optional admin flag.
func (s *AccountService) CreateUser(name, email, password string, isAdmin bool) (*models.User, error) {
	var count int64
	db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		IsAdmin:        isAdmin,
		EmailConfirmed: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser is the admin edit path. Email uniqueness is re-checked
// against other accounts.
func (s *AccountService) UpdateUser(userID uint, name, email string, isAdmin bool) error {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return ErrNotFound
	}

	var count int64
	db.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count)
	if count > 0 {
		return ErrEmailTaken
	}

	return db.DB.Model(&user).Updates(map[string]interface{}{
		"name":     name,
		"email":    email,
		"is_admin": isAdmin,
	}).Error
}

// DeleteUser removes a non-admin account and everything hanging off it:
// follow edges in both directions, likes, comments, reports, boards with
// their pin links, and pins with their links/likes/comments/reports.
// One transaction, so the join tables never dangle. Returns the image
// paths orphaned by the delete (pin images and the profile photo) so
// the caller can remove the files after the commit.
func (s *AccountService) DeleteUser(userID uint) ([]string, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return nil, ErrNotFound
	}
	if user.IsAdmin {
		return nil, ErrAdminProtected
	}

	var imagePaths []string
	if user.ProfileImagePath != "" {
		imagePaths = append(imagePaths, user.ProfileImagePath)
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? OR following_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PinLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PinComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PinReport{}).Error; err != nil {
			return err
		}

		var boardIDs []uint
		if err := tx.Model(&models.Board{}).Where("user_id = ?", userID).
			Pluck("id", &boardIDs).Error; err != nil {
			return err
		}
		if len(boardIDs) > 0 {
			if err := tx.Where("board_id IN ?", boardIDs).Delete(&models.PinBoard{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", boardIDs).Delete(&models.Board{}).Error; err != nil {
				return err
			}
		}

		var pinIDs []uint
		if err := tx.Model(&models.Pin{}).Where("user_id = ?", userID).
			Pluck("id", &pinIDs).Error; err != nil {
			return err
		}
		if len(pinIDs) > 0 {
			var paths []string
			if err := tx.Model(&models.Pin{}).Where("id IN ?", pinIDs).
				Pluck("image_path", &paths).Error; err != nil {
				return err
			}
			imagePaths = append(imagePaths, paths...)

			if err := tx.Where("pin_id IN ?", pinIDs).Delete(&models.PinBoard{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pin_id IN ?", pinIDs).Delete(&models.PinLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pin_id IN ?", pinIDs).Delete(&models.PinComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pin_id IN ?", pinIDs).Delete(&models.PinReport{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", pinIDs).Delete(&models.Pin{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return imagePaths, nil
}
