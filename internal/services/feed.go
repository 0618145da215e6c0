package services

import (
	"math"
	"time"

	"pinhub/internal/db"
	"pinhub/internal/models"
	"pinhub/internal/utils"
)

const (
	boardPageSize   = 6
	exploreListSize = 10
	exploreCacheKey = "feed:explore"
	exploreCacheTTL = 30 * time.Second
)

// BoardPage is one page of a user's board listing.
type BoardPage struct {
	Boards      []models.Board
	CurrentPage int
	TotalPages  int
}

// ExploreResult carries the three independently computed explore lists.
type ExploreResult struct {
	Popular     []models.Pin
	New         []models.Pin
	Recommended []models.Pin
}

// SearchScope selects what entity types a search covers.
type SearchScope string

const (
	SearchAll      SearchScope = "all"
	SearchPins     SearchScope = "pins"
	SearchAccounts SearchScope = "accounts"
)

// SearchResult holds matches grouped by entity type.
type SearchResult struct {
	Pins  []models.Pin
	Users []models.User
}

// DashboardStats feeds the admin dashboard.
type DashboardStats struct {
	UserCount   int64
	PinCount    int64
	BoardCount  int64
	ReportCount int64
	TopUsers    []models.User  // by pin count
	TopPins     []models.Pin   // by report count
	TopBoards   []models.Board // by pin count
}

type FeedService struct{}

func NewFeedService() *FeedService {
	return &FeedService{}
}

// ListBoards returns one page of the owner's boards, newest first, six
// per page, pin memberships eagerly loaded. The requested page is
// clamped into [1, totalPages].
func (s *FeedService) ListBoards(ownerID uint, page int) (*BoardPage, error) {
	var total int64
	if err := db.DB.Model(&models.Board{}).Where("user_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(boardPageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var boards []models.Board
	err := db.DB.Preload("PinBoards").Preload("PinBoards.Pin").
		Where("user_id = ?", ownerID).
		Order("id DESC").
		Limit(boardPageSize).
		Offset((page - 1) * boardPageSize).
		Find(&boards).Error
	if err != nil {
		return nil, err
	}

	for i := range boards {
		boards[i].PinCount = int64(len(boards[i].PinBoards))
	}

	return &BoardPage{Boards: boards, CurrentPage: page, TotalPages: totalPages}, nil
}

// Search does a case-sensitive substring match over pin title/description
// and user name/email, scoped to pins, accounts, or both.
func (s *FeedService) Search(query string, scope SearchScope) (*SearchResult, error) {
	result := &SearchResult{}
	if query == "" {
		return result, nil
	}
	pattern := "%" + query + "%"

	if scope == SearchAll || scope == SearchPins {
		err := db.DB.Preload("User").
			Where("title LIKE ? OR description LIKE ?", pattern, pattern).
			Order("id DESC").
			Limit(50).
			Find(&result.Pins).Error
		if err != nil {
			return nil, err
		}
		s.fillLikeCounts(result.Pins)
	}

	if scope == SearchAll || scope == SearchAccounts {
		err := db.DB.
			Where("name LIKE ? OR email LIKE ?", pattern, pattern).
			Order("id DESC").
			Limit(50).
			Find(&result.Users).Error
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Explore assembles the three discovery lists. Popular and New are
// shared across viewers and cached briefly; Recommended excludes the
// viewer's own pins and is freshly shuffled on every call.
func (s *FeedService) Explore(viewerID uint) (*ExploreResult, error) {
	result := &ExploreResult{}

	if cached := utils.GetCache().Get(exploreCacheKey); cached != nil {
		shared := cached.(*ExploreResult)
		result.Popular = shared.Popular
		result.New = shared.New
	} else {
		err := db.DB.Preload("User").
			Joins("LEFT JOIN pin_likes ON pin_likes.pin_id = pins.id").
			Group("pins.id").
			Order("COUNT(pin_likes.pin_id) DESC").
			Limit(exploreListSize).
			Find(&result.Popular).Error
		if err != nil {
			return nil, err
		}
		s.fillLikeCounts(result.Popular)

		err = db.DB.Preload("User").
			Order("id DESC").
			Limit(exploreListSize).
			Find(&result.New).Error
		if err != nil {
			return nil, err
		}

		utils.GetCache().Set(exploreCacheKey, &ExploreResult{
			Popular: result.Popular,
			New:     result.New,
		}, exploreCacheTTL)
	}

	if viewerID != 0 {
		err := db.DB.Preload("User").
			Where("user_id <> ?", viewerID).
			Order(randomOrder()).
			Limit(exploreListSize).
			Find(&result.Recommended).Error
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// randomOrder differs per dialect; sqlite and postgres both accept RANDOM().
func randomOrder() string {
	return "RANDOM()"
}

// Dashboard aggregates the admin overview counts and leaderboards.
func (s *FeedService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	db.DB.Model(&models.User{}).Count(&stats.UserCount)
	db.DB.Model(&models.Pin{}).Count(&stats.PinCount)
	db.DB.Model(&models.Board{}).Count(&stats.BoardCount)
	db.DB.Model(&models.PinReport{}).Count(&stats.ReportCount)

	err := db.DB.
		Joins("LEFT JOIN pins ON pins.user_id = users.id").
		Group("users.id").
		Order("COUNT(pins.id) DESC").
		Limit(5).
		Find(&stats.TopUsers).Error
	if err != nil {
		return nil, err
	}

	err = db.DB.Preload("User").
		Joins("LEFT JOIN pin_reports ON pin_reports.pin_id = pins.id").
		Group("pins.id").
		Order("COUNT(pin_reports.pin_id) DESC").
		Limit(5).
		Find(&stats.TopPins).Error
	if err != nil {
		return nil, err
	}

	err = db.DB.
		Joins("LEFT JOIN pin_boards ON pin_boards.board_id = boards.id").
		Group("boards.id").
		Order("COUNT(pin_boards.board_id) DESC").
		Limit(5).
		Find(&stats.TopBoards).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// LatestPins backs the home grid, optionally filtered by a search query
// over title/description.
func (s *FeedService) LatestPins(query string) ([]models.Pin, error) {
	q := db.DB.Preload("User").Order("id DESC")
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var pins []models.Pin
	if err := q.Limit(60).Find(&pins).Error; err != nil {
		return nil, err
	}
	s.fillLikeCounts(pins)
	return pins, nil
}

// fillLikeCounts batches the like totals for a pin slice.
func (s *FeedService) fillLikeCounts(pins []models.Pin) {
	if len(pins) == 0 {
		return
	}

	pinIDs := make([]uint, len(pins))
	for i, p := range pins {
		pinIDs[i] = p.ID
	}

	type countRow struct {
		PinID uint
		Count int64
	}
	var rows []countRow
	db.DB.Model(&models.PinLike{}).
		Select("pin_id, COUNT(*) as count").
		Where("pin_id IN ?", pinIDs).
		Group("pin_id").
		Scan(&rows)

	countMap := make(map[uint]int64)
	for _, r := range rows {
		countMap[r.PinID] = r.Count
	}
	for i := range pins {
		pins[i].LikeCount = countMap[pins[i].ID]
	}
}
