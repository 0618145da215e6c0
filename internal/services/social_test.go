package services

import (
	"testing"

	"pinhub/internal/db"
	"pinhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelf(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")

	assert.ErrorIs(t, s.Follow(alice.ID, alice.ID), ErrSelfFollow)

	// Self-follow fails even for an id that does not exist at all
	assert.ErrorIs(t, s.Follow(42, 42), ErrSelfFollow)
}

func TestFollowMissingTarget(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")

	assert.ErrorIs(t, s.Follow(alice.ID, 9999), ErrNotFound)
}

func TestFollowIdempotent(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")

	require.NoError(t, s.Follow(alice.ID, bob.ID))
	require.NoError(t, s.Follow(alice.ID, bob.ID), "second follow is a no-op")

	var count int64
	db.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).Count(&count)
	assert.EqualValues(t, 1, count, "exactly one follow edge")

	assert.True(t, s.IsFollowing(alice.ID, bob.ID))
	assert.False(t, s.IsFollowing(bob.ID, alice.ID), "edges are directed")
}

func TestUnfollowNotFollowing(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")

	// Unfollow without a prior follow silently succeeds
	assert.NoError(t, s.Unfollow(alice.ID, bob.ID))

	require.NoError(t, s.Follow(alice.ID, bob.ID))
	require.NoError(t, s.Unfollow(alice.ID, bob.ID))
	assert.False(t, s.IsFollowing(alice.ID, bob.ID))
}

func TestLikePinTwice(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	pin := createTestPin(t, alice.ID, "sunset")

	require.NoError(t, s.LikePin(alice.ID, pin.ID))

	// Unlike Follow, a duplicate like is reported, not swallowed
	assert.ErrorIs(t, s.LikePin(alice.ID, pin.ID), ErrAlreadyLiked)

	var count int64
	db.DB.Model(&models.PinLike{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 1, count, "like count stays at 1")
}

func TestLikeMissingPin(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")

	assert.ErrorIs(t, s.LikePin(alice.ID, 9999), ErrNotFound)
}

func TestUnlikeNotLiked(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	pin := createTestPin(t, alice.ID, "sunset")

	assert.ErrorIs(t, s.UnlikePin(alice.ID, pin.ID), ErrLikeNotFound)

	require.NoError(t, s.LikePin(alice.ID, pin.ID))
	require.NoError(t, s.UnlikePin(alice.ID, pin.ID))
	assert.ErrorIs(t, s.UnlikePin(alice.ID, pin.ID), ErrLikeNotFound)
}

func TestSavePinSetsCoverOnce(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	board := createTestBoard(t, alice.ID, "travel")
	first := createTestPin(t, alice.ID, "first")
	second := createTestPin(t, alice.ID, "second")

	require.NoError(t, s.SavePinToBoard(alice.ID, first.ID, board.ID))

	var stored models.Board
	require.NoError(t, db.DB.First(&stored, board.ID).Error)
	assert.Equal(t, first.ImagePath, stored.CoverImagePath, "first save sets the cover")

	require.NoError(t, s.SavePinToBoard(alice.ID, second.ID, board.ID))
	require.NoError(t, db.DB.First(&stored, board.ID).Error)
	assert.Equal(t, first.ImagePath, stored.CoverImagePath, "second save must not change the cover")
}

func TestSavePinToBoardErrors(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	board := createTestBoard(t, alice.ID, "travel")
	bobsBoard := createTestBoard(t, bob.ID, "food")
	pin := createTestPin(t, bob.ID, "pasta")

	// Not the actor's board
	assert.ErrorIs(t, s.SavePinToBoard(alice.ID, pin.ID, bobsBoard.ID), ErrInvalidBoard)
	// Missing board
	assert.ErrorIs(t, s.SavePinToBoard(alice.ID, pin.ID, 9999), ErrInvalidBoard)
	// Missing pin
	assert.ErrorIs(t, s.SavePinToBoard(alice.ID, 9999, board.ID), ErrNotFound)

	require.NoError(t, s.SavePinToBoard(alice.ID, pin.ID, board.ID))
	assert.ErrorIs(t, s.SavePinToBoard(alice.ID, pin.ID, board.ID), ErrAlreadySaved)

	var count int64
	db.DB.Model(&models.PinBoard{}).Where("board_id = ?", board.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreatePinWithBoards(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	mine := createTestBoard(t, alice.ID, "mine")
	theirs := createTestBoard(t, bob.ID, "theirs")

	// Duplicate ids are skipped, foreign boards are ignored
	pin, err := s.CreatePin(alice.ID, "dunes", "desert shot", "travel", "/uploads/dunes.jpg",
		[]uint{mine.ID, mine.ID, theirs.ID, 0})
	require.NoError(t, err)
	require.NotZero(t, pin.ID)

	var links []models.PinBoard
	db.DB.Where("pin_id = ?", pin.ID).Find(&links)
	require.Len(t, links, 1)
	assert.Equal(t, mine.ID, links[0].BoardID)
}

func TestCreatePinNoBoards(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")

	pin, err := s.CreatePin(alice.ID, "solo", "", "", "/uploads/solo.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, "general", pin.Category, "category defaults when blank")

	var count int64
	db.DB.Model(&models.PinBoard{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreatePinRequiresTitleAndImage(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")

	_, err := s.CreatePin(alice.ID, "  ", "", "", "/uploads/x.jpg", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = s.CreatePin(alice.ID, "titled", "", "", "", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestAddComment(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	pin := createTestPin(t, alice.ID, "sunset")

	_, err := s.AddComment(alice.ID, pin.ID, "   \t  ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = s.AddComment(alice.ID, 9999, "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := s.AddComment(alice.ID, pin.ID, "  lovely colors  ")
	require.NoError(t, err)
	assert.Equal(t, "lovely colors", comment.Content, "content is trimmed")
	assert.False(t, comment.CreatedAt.IsZero(), "timestamp is server-assigned")
}

func TestReportPin(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	pin := createTestPin(t, alice.ID, "sunset")

	assert.ErrorIs(t, s.ReportPin(alice.ID, pin.ID, "  "), ErrEmptyContent)
	assert.ErrorIs(t, s.ReportPin(alice.ID, 9999, "spam"), ErrNotFound)

	require.NoError(t, s.ReportPin(alice.ID, pin.ID, "spam"))
	require.NoError(t, s.ReportPin(alice.ID, pin.ID, "still spam"), "reports are append-only")

	var count int64
	db.DB.Model(&models.PinReport{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDeletePinCascade(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	bob := createTestUser(t, "bob", "bob@example.com")
	pin := createTestPin(t, alice.ID, "sunset")
	board := createTestBoard(t, alice.ID, "sky")

	require.NoError(t, s.SavePinToBoard(alice.ID, pin.ID, board.ID))
	require.NoError(t, s.LikePin(bob.ID, pin.ID))
	_, err := s.AddComment(bob.ID, pin.ID, "wow")
	require.NoError(t, err)
	require.NoError(t, s.ReportPin(bob.ID, pin.ID, "too pretty"))

	imagePath, err := s.DeletePin(pin.ID)
	require.NoError(t, err)
	assert.Equal(t, pin.ImagePath, imagePath)

	var count int64
	db.DB.Model(&models.Pin{}).Where("id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.DB.Model(&models.PinBoard{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.DB.Model(&models.PinLike{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.DB.Model(&models.PinComment{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.DB.Model(&models.PinReport{}).Where("pin_id = ?", pin.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	_, err = s.DeletePin(pin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBoardCascade(t *testing.T) {
	setupTestDB(t)
	s := NewSocialService()
	alice := createTestUser(t, "alice", "alice@example.com")
	board := createTestBoard(t, alice.ID, "sky")
	pin := createTestPin(t, alice.ID, "sunset")

	require.NoError(t, s.SavePinToBoard(alice.ID, pin.ID, board.ID))
	require.NoError(t, s.DeleteBoard(board.ID))

	var count int64
	db.DB.Model(&models.Board{}).Where("id = ?", board.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.DB.Model(&models.PinBoard{}).Where("board_id = ?", board.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// The pin itself survives a board delete
	var pinCount int64
	db.DB.Model(&models.Pin{}).Where("id = ?", pin.ID).Count(&pinCount)
	assert.EqualValues(t, 1, pinCount)
}
