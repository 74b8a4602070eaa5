// handlers/stats.go
package handlers

import (
	"darkzone-stats-server/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, stats *services.StatsService, search *services.SearchService) {
	api := app.Group("/api")

	api.Get("/player-stats", stats.GetPlayerStats)
	api.Get("/map-preferences", stats.GetMapPreferences)
	api.Get("/gold-spawn-rate", stats.GetGoldSpawnRate)
	api.Get("/gameplay-info", stats.GetGameplayInfo)
	api.Get("/weapons", stats.GetWeapons)
	api.Get("/economy-stats", stats.GetEconomyStats)
	api.Get("/leaderboard", stats.GetLeaderboard)
	api.Get("/search", search.GetSearch)
}
