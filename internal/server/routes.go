package server

import (
	"github.com/init-pkg/sheet-loader/docs"

	swagger "github.com/Flussen/swagger-fiber-v3"
	"github.com/gofiber/fiber/v3"
	"github.com/swaggo/swag"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func registerSystemRoutes(app *fiber.App) {
	app.Get("/health", health)
	app.Get("/swagger/doc.json", swaggerDoc)
	app.Get("/swagger/*", swagger.HandlerDefault)
}

// health godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	server.HealthResponse
//	@Router		/health [get]
func health(c fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

func swaggerDoc(c fiber.Ctx) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
