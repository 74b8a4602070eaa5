// services/export_service.go
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"darkzone-stats-server/models"
	"darkzone-stats-server/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExportDatasets is the closed set of downloadable data sets.
var ExportDatasets = []string{
	"player-stats",
	"map-preferences",
	"weapons",
	"economy-stats",
	"leaderboard",
}

const leaderboardExportLimit = 100

// ExportService turns an allow-listed dataset into a downloadable byte
// stream. The same fetch path feeds the HTTP download handler and the
// snapshot archival worker.
type ExportService struct {
	DB     *gorm.DB
	logger *logrus.Entry
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		DB: db,
		logger: utils.Logger.WithFields(logrus.Fields{
			"module": "services.ExportService",
		}),
	}
}

// exportPayload carries one dataset in both renderable forms: records for
// JSON, a fixed header plus stringified rows for CSV.
type exportPayload struct {
	headers []string
	rows    [][]string
	records interface{}
}

func (s *ExportService) fetch(ctx context.Context, dataset string) (*exportPayload, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	switch dataset {
	case "player-stats":
		var players []models.Player
		if err := s.DB.WithContext(ctx).Find(&players).Error; err != nil {
			return nil, storeErr("export "+dataset, err)
		}
		return playerPayload(players), nil

	case "leaderboard":
		var players []models.Player
		err := s.DB.WithContext(ctx).
			Order("total_kills DESC").Limit(leaderboardExportLimit).
			Find(&players).Error
		if err != nil {
			return nil, storeErr("export "+dataset, err)
		}
		return playerPayload(players), nil

	case "map-preferences":
		var maps []models.MapStat
		if err := s.DB.WithContext(ctx).Find(&maps).Error; err != nil {
			return nil, storeErr("export "+dataset, err)
		}
		p := &exportPayload{
			headers: []string{"id", "map_name", "player_count", "avg_duration", "extraction_rate", "difficulty", "loot_quality"},
			records: maps,
		}
		for _, m := range maps {
			p.rows = append(p.rows, []string{
				strconv.FormatUint(uint64(m.ID), 10),
				m.MapName,
				strconv.Itoa(m.PlayerCount),
				formatFloat(m.AvgDuration),
				formatFloat(m.ExtractionRate),
				formatFloat(m.Difficulty),
				formatFloat(m.LootQuality),
			})
		}
		return p, nil

	case "weapons":
		var weapons []models.Weapon
		if err := s.DB.WithContext(ctx).Find(&weapons).Error; err != nil {
			return nil, storeErr("export "+dataset, err)
		}
		p := &exportPayload{
			headers: []string{"id", "name", "type", "damage", "fire_rate", "accuracy", "recoil", "magazine_size", "usage_count"},
			records: weapons,
		}
		for _, w := range weapons {
			p.rows = append(p.rows, []string{
				strconv.FormatUint(uint64(w.ID), 10),
				w.Name,
				w.Type,
				strconv.Itoa(w.Damage),
				formatFloat(w.FireRate),
				formatFloat(w.Accuracy),
				formatFloat(w.Recoil),
				strconv.Itoa(w.MagazineSize),
				strconv.Itoa(w.UsageCount),
			})
		}
		return p, nil

	case "economy-stats":
		var rows []models.EconomyStat
		if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
			return nil, storeErr("export "+dataset, err)
		}
		p := &exportPayload{
			headers: []string{"id", "date", "total_coins_earned", "total_coins_spent", "avg_coins_per_player", "total_items_traded"},
			records: rows,
		}
		for _, r := range rows {
			p.rows = append(p.rows, []string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.Date,
				strconv.FormatInt(r.TotalCoinsEarned, 10),
				strconv.FormatInt(r.TotalCoinsSpent, 10),
				formatFloat(r.AvgCoinsPerPlayer),
				strconv.FormatInt(r.TotalItemsTraded, 10),
			})
		}
		return p, nil

	default:
		return nil, validationErrorf("unknown dataset %q", dataset)
	}
}

func playerPayload(players []models.Player) *exportPayload {
	p := &exportPayload{
		headers: []string{"id", "username", "level", "total_kills", "total_deaths", "total_extractions", "total_coins", "play_time", "created_at", "updated_at"},
		records: players,
	}
	for _, pl := range players {
		p.rows = append(p.rows, []string{
			strconv.FormatUint(uint64(pl.ID), 10),
			pl.Username,
			strconv.Itoa(pl.Level),
			strconv.Itoa(pl.TotalKills),
			strconv.Itoa(pl.TotalDeaths),
			strconv.Itoa(pl.TotalExtractions),
			strconv.FormatInt(pl.TotalCoins, 10),
			strconv.Itoa(pl.PlayTime),
			pl.CreatedAt.Format(time.RFC3339),
			pl.UpdatedAt.Format(time.RFC3339),
		})
	}
	return p
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// DatasetJSON renders a dataset as a pretty-printed JSON row list. An empty
// dataset renders as [].
func (s *ExportService) DatasetJSON(ctx context.Context, dataset string) ([]byte, error) {
	payload, err := s.fetch(ctx, dataset)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(payload.records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", dataset, err)
	}
	// a nil slice would otherwise serialize as null
	if bytes.Equal(out, []byte("null")) {
		out = []byte("[]")
	}
	return out, nil
}

// DatasetCSV renders a dataset as RFC 4180 CSV with a header row. Values
// containing commas, quotes or newlines are quoted by encoding/csv; an
// empty dataset yields the header row only.
func (s *ExportService) DatasetCSV(ctx context.Context, dataset string) ([]byte, error) {
	payload, err := s.fetch(ctx, dataset)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(payload.headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(payload.rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// Export handles GET /api/export/:format?data=<dataset>.
func (s *ExportService) Export(c *fiber.Ctx) error {
	format := c.Params("format")
	dataset := c.Query("data")

	filename := strings.ReplaceAll(dataset, "-", "_") + "." + format

	switch format {
	case "json":
		body, err := s.DatasetJSON(c.UserContext(), dataset)
		if err != nil {
			return httpError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
		return c.Send(body)

	case "csv":
		body, err := s.DatasetCSV(c.UserContext(), dataset)
		if err != nil {
			return httpError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
		return c.Send(body)

	default:
		return httpError(c, validationErrorf("invalid export format %q, expected json or csv", format))
	}
}
