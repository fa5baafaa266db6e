package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestiva/internal/application/catalog"
	appmovement "github.com/jhoicas/gestiva/internal/application/movement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DraftUC    *appmovement.DraftUseCase
	MovementUC *appmovement.MovementUseCase
	CatalogUC  *catalog.UseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Borradores de movimiento
	drafts := protected.Group("/movement-drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Patch("/:id", draftHandler.Update)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Post("/:id/lines", draftHandler.AddLine)
	drafts.Patch("/:id/lines/:index", draftHandler.UpdateLine)
	drafts.Delete("/:id/lines/:index", draftHandler.RemoveLine)
	drafts.Put("/:id/lines/:index/product", draftHandler.SelectProduct)
	drafts.Post("/:id/payments", draftHandler.AddPayment)
	drafts.Patch("/:id/payments/:index", draftHandler.UpdatePayment)
	drafts.Delete("/:id/payments/:index", draftHandler.RemovePayment)
	drafts.Post("/:id/receivables/:reference/toggle", draftHandler.ToggleReceivable)
	drafts.Put("/:id/receivables/:reference", draftHandler.SetReceivableAmount)
	drafts.Post("/:id/submit", draftHandler.Submit)
	drafts.Get("/:id/preview.pdf", draftHandler.Preview)

	// Movimientos registrados
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/:id/cancel", movementHandler.Cancel)

	// Catálogos
	cat := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat.Get("/clients", catalogHandler.Clients)
	cat.Get("/clients/:code/receivables", catalogHandler.Receivables)
	cat.Get("/suppliers", catalogHandler.Suppliers)
	cat.Get("/products", catalogHandler.Products)
	cat.Post("/refresh", catalogHandler.Refresh)
}
