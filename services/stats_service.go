// services/stats_service.go
package services

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"time"

	"darkzone-stats-server/models"
	"darkzone-stats-server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// StatsService answers the read-only statistics queries. Handler methods
// (Get*) adapt HTTP to the plain query methods underneath, which is also
// where the tests hook in.
type StatsService struct {
	DB     *gorm.DB
	logger *logrus.Entry

	// map names are Chinese; plain byte order would interleave them badly
	collator *collate.Collator
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		DB: db,
		logger: utils.Logger.WithFields(logrus.Fields{
			"module": "services.StatsService",
		}),
		collator: collate.New(language.Chinese),
	}
}

// activeWindow is how far back updated_at may be for a player to count as active.
const activeWindow = 7 * 24 * time.Hour

type TopMap struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

type PlayerStatsResponse struct {
	TotalPlayers  int64    `json:"totalPlayers"`
	ActivePlayers int64    `json:"activePlayers"`
	AvgLevel      float64  `json:"avgLevel"`
	AvgPlayTime   int      `json:"avgPlayTime"`
	TopMaps       []TopMap `json:"topMaps"`
}

type MapSummary struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	PlayerCount    int     `json:"playerCount"`
	AvgDuration    float64 `json:"avgDuration"`
	ExtractionRate float64 `json:"extractionRate"`
	Difficulty     float64 `json:"difficulty"`
	LootQuality    float64 `json:"lootQuality"`
}

type GoldLocationView struct {
	Location  string  `json:"location"`
	SpawnRate float64 `json:"spawnRate"`
	LastSeen  string  `json:"lastSeen"`
}

type MapGold struct {
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	GoldLocations []GoldLocationView `json:"goldLocations"`
}

type GoldSpawnRateResponse struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Maps        []MapGold `json:"maps"`
}

type EconomyDay struct {
	Date              string  `json:"date"`
	TotalCoinsEarned  int64   `json:"totalCoinsEarned"`
	TotalCoinsSpent   int64   `json:"totalCoinsSpent"`
	AvgCoinsPerPlayer float64 `json:"avgCoinsPerPlayer"`
	TotalItemsTraded  int64   `json:"totalItemsTraded"`
}

type LeaderboardStats struct {
	Kills       int   `json:"kills"`
	Extractions int   `json:"extractions"`
	Coins       int64 `json:"coins"`
}

type LeaderboardEntry struct {
	Rank     int              `json:"rank"`
	Username string           `json:"username"`
	Level    int              `json:"level"`
	Score    int64            `json:"score"`
	Stats    LeaderboardStats `json:"stats"`
}

type LeaderboardResponse struct {
	Category string             `json:"category"`
	Players  []LeaderboardEntry `json:"players"`
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// PlayerStats computes the aggregate player overview. The five reads are
// independent, so they run as a fan-out; they are not snapshot-consistent
// with each other, which is fine for dashboard numbers.
func (s *StatsService) PlayerStats(ctx context.Context) (*PlayerStatsResponse, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var (
		totalPlayers  int64
		activePlayers int64
		avgLevel      sql.NullFloat64
		avgPlayTime   sql.NullFloat64
		maps          []models.MapStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Player{}).Count(&totalPlayers).Error
	})
	g.Go(func() error {
		cutoff := time.Now().Add(-activeWindow)
		return s.DB.WithContext(gctx).Model(&models.Player{}).
			Where("updated_at > ?", cutoff).Count(&activePlayers).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Player{}).
			Select("AVG(level)").Scan(&avgLevel).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Model(&models.Player{}).
			Select("AVG(play_time)").Scan(&avgPlayTime).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Order("player_count DESC").Find(&maps).Error
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr("player stats", err)
	}

	var totalMapPlayers int
	for _, m := range maps {
		totalMapPlayers += m.PlayerCount
	}

	topMaps := make([]TopMap, 0, len(maps))
	for _, m := range maps {
		pct := 0.0
		if totalMapPlayers > 0 {
			pct = round1(float64(m.PlayerCount) / float64(totalMapPlayers) * 100)
		}
		topMaps = append(topMaps, TopMap{Name: m.MapName, Percentage: pct})
	}

	return &PlayerStatsResponse{
		TotalPlayers:  totalPlayers,
		ActivePlayers: activePlayers,
		AvgLevel:      round1(avgLevel.Float64),
		AvgPlayTime:   int(math.Round(avgPlayTime.Float64)),
		TopMaps:       topMaps,
	}, nil
}

// MapPreferences returns every map's raw stats, most played first.
func (s *StatsService) MapPreferences(ctx context.Context) ([]MapSummary, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var maps []models.MapStat
	if err := s.DB.WithContext(ctx).Order("player_count DESC").Find(&maps).Error; err != nil {
		return nil, storeErr("map preferences", err)
	}

	out := make([]MapSummary, 0, len(maps))
	for _, m := range maps {
		out = append(out, MapSummary{
			Name:           m.MapName,
			Slug:           slug.Make(m.MapName),
			PlayerCount:    m.PlayerCount,
			AvgDuration:    m.AvgDuration,
			ExtractionRate: m.ExtractionRate,
			Difficulty:     m.Difficulty,
			LootQuality:    m.LootQuality,
		})
	}
	return out, nil
}

// GoldSpawnRate groups gold locations per map, hottest spots first, with a
// relative "last seen" label on each.
func (s *StatsService) GoldSpawnRate(ctx context.Context) (*GoldSpawnRateResponse, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	var locations []models.GoldLocation
	if err := s.DB.WithContext(ctx).Order("spawn_rate DESC").Find(&locations).Error; err != nil {
		return nil, storeErr("gold spawn rate", err)
	}

	now := time.Now()
	byMap := make(map[string][]GoldLocationView)
	var names []string
	for _, loc := range locations {
		if _, ok := byMap[loc.MapName]; !ok {
			names = append(names, loc.MapName)
		}
		byMap[loc.MapName] = append(byMap[loc.MapName], GoldLocationView{
			Location:  loc.LocationName,
			SpawnRate: loc.SpawnRate,
			LastSeen:  utils.TimeAgo(loc.LastSeen, now),
		})
	}
	s.collator.SortStrings(names)

	maps := make([]MapGold, 0, len(names))
	for _, name := range names {
		maps = append(maps, MapGold{
			Name:          name,
			Slug:          slug.Make(name),
			GoldLocations: byMap[name],
		})
	}

	return &GoldSpawnRateResponse{LastUpdated: now, Maps: maps}, nil
}

// weaponSortColumns is the closed set of sortable columns. Anything else
// falls back to the default ordering rather than reaching the query.
var weaponSortColumns = map[string]string{
	"damage":      "damage",
	"fire_rate":   "fire_rate",
	"accuracy":    "accuracy",
	"usage_count": "usage_count",
}

// WeaponList returns weapons, optionally filtered by exact type and sorted
// descending by an allow-listed column (default usage_count).
func (s *StatsService) WeaponList(ctx context.Context, weaponType, sortBy string) ([]models.Weapon, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	column, ok := weaponSortColumns[sortBy]
	if !ok {
		column = "usage_count"
	}

	q := s.DB.WithContext(ctx).Order(column + " DESC")
	if weaponType != "" {
		q = q.Where("type = ?", weaponType)
	}

	var weapons []models.Weapon
	if err := q.Find(&weapons).Error; err != nil {
		return nil, storeErr("weapon list", err)
	}
	if weapons == nil {
		weapons = []models.Weapon{}
	}
	return weapons, nil
}

// EconomyStats returns the most recent days of economy rows in
// chronological order (fetched newest-first, then reversed for display).
func (s *StatsService) EconomyStats(ctx context.Context, days int) ([]EconomyDay, error) {
	if days < 1 {
		days = 30
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()

	var rows []models.EconomyStat
	if err := s.DB.WithContext(ctx).Order("date DESC").Limit(days).Find(&rows).Error; err != nil {
		return nil, storeErr("economy stats", err)
	}

	out := make([]EconomyDay, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		out = append(out, EconomyDay{
			Date:              r.Date,
			TotalCoinsEarned:  r.TotalCoinsEarned,
			TotalCoinsSpent:   r.TotalCoinsSpent,
			AvgCoinsPerPlayer: r.AvgCoinsPerPlayer,
			TotalItemsTraded:  r.TotalItemsTraded,
		})
	}
	return out, nil
}

// leaderboardColumns maps the public category names onto scoring columns.
var leaderboardColumns = map[string]string{
	"kills":       "total_kills",
	"extractions": "total_extractions",
	"coins":       "total_coins",
	"level":       "level",
}

// Leaderboard ranks players by the chosen category. Rank is the 1-based
// position in the result; ties keep store order.
func (s *StatsService) Leaderboard(ctx context.Context, category string, limit int) (*LeaderboardResponse, error) {
	column, ok := leaderboardColumns[category]
	if !ok {
		return nil, validationErrorf("invalid category %q, expected one of %v", category, leaderboardCategories())
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()

	var players []models.Player
	if err := s.DB.WithContext(ctx).Order(column + " DESC").Limit(limit).Find(&players).Error; err != nil {
		return nil, storeErr("leaderboard", err)
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for i, p := range players {
		var score int64
		switch category {
		case "kills":
			score = int64(p.TotalKills)
		case "extractions":
			score = int64(p.TotalExtractions)
		case "coins":
			score = p.TotalCoins
		case "level":
			score = int64(p.Level)
		}
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Username: p.Username,
			Level:    p.Level,
			Score:    score,
			Stats: LeaderboardStats{
				Kills:       p.TotalKills,
				Extractions: p.TotalExtractions,
				Coins:       p.TotalCoins,
			},
		})
	}

	return &LeaderboardResponse{Category: category, Players: entries}, nil
}

// Categories returns the valid leaderboard categories, for the error body.
func leaderboardCategories() []string {
	cats := make([]string, 0, len(leaderboardColumns))
	for c := range leaderboardColumns {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// --- HTTP handlers ---

func (s *StatsService) GetPlayerStats(c *fiber.Ctx) error {
	stats, err := s.PlayerStats(c.UserContext())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(stats)
}

func (s *StatsService) GetMapPreferences(c *fiber.Ctx) error {
	maps, err := s.MapPreferences(c.UserContext())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"maps": maps})
}

func (s *StatsService) GetGoldSpawnRate(c *fiber.Ctx) error {
	resp, err := s.GoldSpawnRate(c.UserContext())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(resp)
}

func (s *StatsService) GetGameplayInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"gameModes": models.GameModes,
		"tips":      models.GameplayTips,
	})
}

func (s *StatsService) GetWeapons(c *fiber.Ctx) error {
	weapons, err := s.WeaponList(c.UserContext(), c.Query("type"), c.Query("sort"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"weapons": weapons})
}

func (s *StatsService) GetEconomyStats(c *fiber.Ctx) error {
	stats, err := s.EconomyStats(c.UserContext(), c.QueryInt("days", 30))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (s *StatsService) GetLeaderboard(c *fiber.Ctx) error {
	resp, err := s.Leaderboard(c.UserContext(), c.Query("category", "kills"), c.QueryInt("limit", 10))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(resp)
}
