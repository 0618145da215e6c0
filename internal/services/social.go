package services

import (
	"errors"
	"strings"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialService struct{}

func NewSocialService() *SocialService {
	return &SocialService{}
}

// Follow creates the edge actor -> target. Following someone twice is a
// no-op; following yourself is an error regardless of existence state.
func (s *SocialService) Follow(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	var count int64
	db.DB.Model(&models.User{}).Where("id = ?", targetID).Count(&count)
	if count == 0 {
		return ErrNotFound
	}

	follow := models.Follow{FollowerID: actorID, FollowingID: targetID}
	return db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow removes the edge, silently succeeding when it never existed.
func (s *SocialService) Unfollow(actorID, targetID uint) error {
	return db.DB.Where("follower_id = ? AND following_id = ?", actorID, targetID).
		Delete(&models.Follow{}).Error
}

func (s *SocialService) IsFollowing(actorID, targetID uint) bool {
	var count int64
	db.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", actorID, targetID).
		Count(&count)
	return count > 0
}

// LikePin adds a like. Unlike Follow, liking twice is reported, not
// swallowed: the detail page tells the user they already liked it.
func (s *SocialService) LikePin(actorID, pinID uint) error {
	var count int64
	db.DB.Model(&models.Pin{}).Where("id = ?", pinID).Count(&count)
	if count == 0 {
		return ErrNotFound
	}

	db.DB.Model(&models.PinLike{}).
		Where("pin_id = ? AND user_id = ?", pinID, actorID).Count(&count)
	if count > 0 {
		return ErrAlreadyLiked
	}

	like := models.PinLike{PinID: pinID, UserID: actorID}
	if err := db.DB.Create(&like).Error; err != nil {
		return err
	}

	// Likes reorder the popular list, so the cached copy is stale now.
	utils.GetCache().Delete(exploreCacheKey)
	return nil
}

// UnlikePin removes a like, reporting ErrLikeNotFound when there is none.
func (s *SocialService) UnlikePin(actorID, pinID uint) error {
	res := db.DB.Where("pin_id = ? AND user_id = ?", pinID, actorID).
		Delete(&models.PinLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}

	utils.GetCache().Delete(exploreCacheKey)
	return nil
}

// SavePinToBoard links a pin into one of the actor's own boards. The
// first pin saved into a board becomes its cover image; link insert and
// cover assignment share one transaction so two concurrent first saves
// cannot both win.
func (s *SocialService) SavePinToBoard(actorID, pinID, boardID uint) error {
	var board models.Board
	if err := db.DB.Where("id = ? AND user_id = ?", boardID, actorID).
		First(&board).Error; err != nil {
		return ErrInvalidBoard
	}

	var pin models.Pin
	if err := db.DB.First(&pin, pinID).Error; err != nil {
		return ErrNotFound
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.PinBoard{}).
			Where("pin_id = ? AND board_id = ?", pinID, boardID).Count(&count)
		if count > 0 {
			return ErrAlreadySaved
		}

		link := models.PinBoard{PinID: pinID, BoardID: boardID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		tx.Model(&models.PinBoard{}).Where("board_id = ?", boardID).Count(&count)
		if count == 1 {
			if err := tx.Model(&models.Board{}).Where("id = ?", boardID).
				Update("cover_image_path", pin.ImagePath).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreatePin persists a pin and links it into the requested boards.
// Duplicate board ids are skipped; an empty list is fine. Board links
// only attach to boards the actor owns.
func (s *SocialService) CreatePin(actorID uint, title, description, category, imagePath string, boardIDs []uint) (*models.Pin, error) {
	if strings.TrimSpace(title) == "" || imagePath == "" {
		return nil, ErrEmptyContent
	}
	if category == "" {
		category = "general"
	}

	pin := models.Pin{
		UserID:      actorID,
		Title:       title,
		Description: description,
		Category:    category,
		ImagePath:   imagePath,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pin).Error; err != nil {
			return err
		}
		seen := make(map[uint]bool)
		for _, boardID := range boardIDs {
			if boardID == 0 || seen[boardID] {
				continue
			}
			seen[boardID] = true

			var count int64
			tx.Model(&models.Board{}).
				Where("id = ? AND user_id = ?", boardID, actorID).Count(&count)
			if count == 0 {
				continue
			}

			link := models.PinBoard{PinID: pin.ID, BoardID: boardID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetCache().Delete(exploreCacheKey)
	return &pin, nil
}

// AddComment appends a comment with a server-assigned timestamp.
func (s *SocialService) AddComment(actorID, pinID uint, content string) (*models.PinComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var count int64
	db.DB.Model(&models.Pin{}).Where("id = ?", pinID).Count(&count)
	if count == 0 {
		return nil, ErrNotFound
	}

	comment := models.PinComment{
		PinID:   pinID,
		UserID:  actorID,
		Content: content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ReportPin files a moderation report against a pin.
func (s *SocialService) ReportPin(actorID, pinID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrEmptyContent
	}

	var count int64
	db.DB.Model(&models.Pin{}).Where("id = ?", pinID).Count(&count)
	if count == 0 {
		return ErrNotFound
	}

	report := models.PinReport{PinID: pinID, UserID: actorID, Reason: reason}
	return db.DB.Create(&report).Error
}

// CreateBoard makes an empty board for the actor.
func (s *SocialService) CreateBoard(actorID uint, title, description string, isPrivate bool) (*models.Board, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyContent
	}
	board := models.Board{
		UserID:      actorID,
		Title:       title,
		Description: description,
		IsPrivate:   isPrivate,
	}
	if err := db.DB.Create(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// UpdateBoard edits a board the actor owns.
func (s *SocialService) UpdateBoard(actorID, boardID uint, title, description string, isPrivate bool) error {
	var board models.Board
	if err := db.DB.Where("id = ? AND user_id = ?", boardID, actorID).
		First(&board).Error; err != nil {
		return ErrInvalidBoard
	}
	if strings.TrimSpace(title) == "" {
		return ErrEmptyContent
	}

	return db.DB.Model(&board).Updates(map[string]interface{}{
		"title":       title,
		"description": description,
		"is_private":  isPrivate,
	}).Error
}

// DeleteBoard removes a board and its pin links in one transaction.
func (s *SocialService) DeleteBoard(boardID uint) error {
	var board models.Board
	if err := db.DB.First(&board, boardID).Error; err != nil {
		return ErrNotFound
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.PinBoard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Board{}, boardID).Error
	})
}

// DeletePin removes a pin together with its board links, likes, comments
// and reports, and returns the orphaned image path so the caller can
// clean up the file after the commit.
func (s *SocialService) DeletePin(pinID uint) (string, error) {
	var pin models.Pin
	if err := db.DB.First(&pin, pinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pin_id = ?", pinID).Delete(&models.PinBoard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pin_id = ?", pinID).Delete(&models.PinLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pin_id = ?", pinID).Delete(&models.PinComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pin_id = ?", pinID).Delete(&models.PinReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pin{}, pinID).Error
	})
	if err != nil {
		return "", err
	}

	utils.GetCache().Delete(exploreCacheKey)
	return pin.ImagePath, nil
}
