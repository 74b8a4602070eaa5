// services/search_service.go
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"darkzone-stats-server/models"
	"darkzone-stats-server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	searchMinLength   = 2  // runes, not bytes — queries are often Chinese
	searchResultLimit = 10 // uniform cap per entity kind
)

type PlayerMatch struct {
	Username   string `json:"username"`
	Level      int    `json:"level"`
	TotalKills int    `json:"total_kills"`
	TotalCoins int64  `json:"total_coins"`
}

type WeaponMatch struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Damage     int    `json:"damage"`
	UsageCount int    `json:"usage_count"`
}

type MapMatch struct {
	MapName     string  `json:"map_name"`
	PlayerCount int     `json:"player_count"`
	Difficulty  float64 `json:"difficulty"`
	LootQuality float64 `json:"loot_quality"`
}

// SearchResults is the composite envelope. Slices are never nil so an
// empty result serializes as empty arrays, not nulls.
type SearchResults struct {
	Players []PlayerMatch `json:"players"`
	Weapons []WeaponMatch `json:"weapons"`
	Maps    []MapMatch    `json:"maps"`
}

// SearchService fans a substring query out over players, weapons and maps.
type SearchService struct {
	DB     *gorm.DB
	logger *logrus.Entry
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{
		DB: db,
		logger: utils.Logger.WithFields(logrus.Fields{
			"module": "services.SearchService",
		}),
	}
}

// Search runs the three entity lookups concurrently and merges them. Any
// sub-query failure fails the whole operation; there is no partial-results
// mode.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResults, error) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < searchMinLength {
		return nil, validationErrorf("query must be at least %d characters", searchMinLength)
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()

	pattern := "%" + strings.ToLower(query) + "%"
	results := &SearchResults{
		Players: []PlayerMatch{},
		Weapons: []WeaponMatch{},
		Maps:    []MapMatch{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Player{}).
			Select("username", "level", "total_kills", "total_coins").
			Where("LOWER(username) LIKE ?", pattern).
			Limit(searchResultLimit).
			Find(&results.Players).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Weapon{}).
			Select("name", "type", "damage", "usage_count").
			Where("LOWER(name) LIKE ?", pattern).
			Limit(searchResultLimit).
			Find(&results.Weapons).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.MapStat{}).
			Select("map_name", "player_count", "difficulty", "loot_quality").
			Where("LOWER(map_name) LIKE ?", pattern).
			Limit(searchResultLimit).
			Find(&results.Maps).Error
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr("search", err)
	}

	return results, nil
}

func (s *SearchService) GetSearch(c *fiber.Ctx) error {
	results, err := s.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(results)
}
