package system

import (
	"time"

	"go-storefront/internal/database"

	"github.com/gofiber/fiber/v2"
)

type SystemAPI struct {
	DB    *database.MongodbDB
	start time.Time
}

func NewSystemAPI(db *database.MongodbDB) *SystemAPI {
	return &SystemAPI{DB: db, start: time.Now()}
}

func (api *SystemAPI) Setup(app *fiber.App) {
	app.Get("/api/health", api.health)
}

func (api *SystemAPI) health(c *fiber.Ctx) error {
	// Mongo ping plus uptime; enough for a load balancer check.
	status := "ok"
	if err := api.DB.DB.Client().Ping(c.UserContext(), nil); err != nil {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status": status,
		"uptime": time.Since(api.start).Round(time.Second).String(),
	})
}
