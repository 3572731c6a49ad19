package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/employee"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/reports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/access"
	"github.com/jhoicas/pos-api/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProcessSale *sales.ProcessSaleUseCase
	SaleQuery   *sales.QueryUseCase
	ProductUC   *catalog.ProductUseCase
	CategoryUC  *catalog.CategoryUseCase
	AdjustStock *inventory.AdjustStockUseCase
	Movements   *inventory.MovementsUseCase
	SalesReport *reports.SalesReportUseCase
	Dashboard   *reports.DashboardUseCase
	EmployeeUC  *employee.UseCase
	Hub         *ws.Hub // opcional
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Ventas
	saleHandler := NewSaleHandler(deps.ProcessSale, deps.SaleQuery)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequireCapability(access.MakeSales), saleHandler.Submit)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.DownloadPDF)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireCapability(access.ManageProducts), productHandler.Create)
	products.Put("/:id", RequireCapability(access.ManageProducts), productHandler.Update)
	products.Delete("/:id", RequireCapability(access.ManageProducts), productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", RequireCapability(access.ManageProducts), categoryHandler.Create)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.Movements)
	inv := protected.Group("/inventory", RequireCapability(access.ManageInventory))
	inv.Post("/adjustments", inventoryHandler.Adjust)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/reconciliation", inventoryHandler.Reconcile)

	// Reportes
	reportHandler := NewReportHandler(deps.SalesReport, deps.Dashboard)
	protected.Get("/reports/sales", RequireCapability(access.ViewReports), reportHandler.Sales)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	emps := protected.Group("/employees", RequireCapability(access.ManageEmployees))
	emps.Get("/", employeeHandler.List)
	emps.Post("/", employeeHandler.Create)
	emps.Put("/:id", employeeHandler.Update)
	emps.Delete("/:id", employeeHandler.Deactivate)

	// WebSocket de stock: /ws/stock?token=<jwt>
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws/stock", QueryTokenMiddleware(deps.JWTSecret), websocket.New(deps.Hub.Handler()))
	}
}
