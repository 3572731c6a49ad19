package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/pos-api/docs"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/employee"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/application/reports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/cache"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/internal/interfaces/ws"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// txRunner reúne las transacciones de inventario, ventas y catálogo.
type txRunner interface {
	inventory.TxRunner
	sales.TxRunner
	catalog.TxRunner
}

// backend repositorios del driver elegido.
type backend struct {
	tx         txRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
	employees  repository.EmployeeRepository
	sales      repository.SaleRepository
	movements  repository.InventoryMovementRepository
	reports    repository.ReportRepository
	close      func()
}

func openBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		st := memory.New()
		return &backend{
			tx:         st,
			products:   st.Products(),
			categories: st.Categories(),
			employees:  st.Employees(),
			sales:      st.Sales(),
			movements:  st.Movements(),
			reports:    st.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		tx:         postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		employees:  postgres.NewEmployeeRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		movements:  postgres.NewInventoryMovementRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		close:      pool.Close,
	}, nil
}

// @title                       POS API
// @version                     1.0
// @description                 API del punto de venta: ventas, catálogo, inventario con ledger y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	be, err := openBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer be.close()

	// Caché de reportes (opcional)
	var reportCache ports.ReportCache
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; reportes sin caché")
			_ = rc.Close()
		} else {
			reportCache = rc
			defer rc.Close()
		}
	}

	// Notificaciones de stock por WebSocket
	hub := ws.NewHub(log.Component("ws"))
	go hub.Run(ctx)

	stock := inventory.NewStockAccessor()
	ledger := inventory.NewLedgerRecorder(time.Now)

	processSaleUC := sales.NewProcessSaleUseCase(be.tx, be.employees, stock, ledger, sales.NewInvoiceNumberGenerator(), hub, log.Component("sales"))
	saleQueryUC := sales.NewQueryUseCase(be.sales, infrapdf.NewMarotoPDFGenerator(), sales.StoreInfo{
		Name:           cfg.Store.Name,
		Address:        cfg.Store.Address,
		Phone:          cfg.Store.Phone,
		CurrencySymbol: cfg.Store.CurrencySymbol,
	})
	productUC := catalog.NewProductUseCase(be.tx, be.products, stock, ledger, hub, log.Component("catalog"))
	categoryUC := catalog.NewCategoryUseCase(be.categories)
	adjustStockUC := inventory.NewAdjustStockUseCase(be.tx, stock, ledger, hub, log.Component("inventory"))
	movementsUC := inventory.NewMovementsUseCase(be.movements, be.products)
	salesReportUC := reports.NewSalesReportUseCase(be.reports, reportCache, cfg.Redis.TTL(), log.Component("reports"))
	dashboardUC := reports.NewDashboardUseCase(be.reports, be.products)
	employeeUC := employee.NewUseCase(be.employees)
	authUC := auth.NewAuthUseCase(be.employees, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	created, err := authUC.EnsureDefaultAdmin(ctx, auth.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		FullName: "Administrador",
		Password: cfg.Admin.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.ClientCount()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProcessSale: processSaleUC,
		SaleQuery:   saleQueryUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		AdjustStock: adjustStockUC,
		Movements:   movementsUC,
		SalesReport: salesReportUC,
		Dashboard:   dashboardUC,
		EmployeeUC:  employeeUC,
		Hub:         hub,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
