package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/deliveryops-api/internal/application/analytics"
	"github.com/jhoicas/deliveryops-api/internal/application/delivery"
	"github.com/jhoicas/deliveryops-api/internal/application/usecase"
	"github.com/jhoicas/deliveryops-api/internal/infrastructure/notify"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	DriverUC          *usecase.DriverUseCase
	VehicleUC         *usecase.VehicleUseCase
	ExpenseCategoryUC *usecase.ExpenseCategoryUseCase
	ExpenseUC         *usecase.ExpenseUseCase
	DeliveryUC        *delivery.UseCase
	DashboardUC       *appanalytics.DashboardUseCase
	ReportUC          *appanalytics.ReportUseCase
	Notifications     *notify.Recorder
	MaxUploadBytes    int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	drivers := api.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Get("/", driverHandler.List)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", driverHandler.Delete)

	// Vehículos y compartimentos
	vehicles := api.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)
	vehicles.Post("/:id/compartments", vehicleHandler.AddCompartment)
	vehicles.Put("/:id/compartments/:cid", vehicleHandler.UpdateCompartment)
	vehicles.Delete("/:id/compartments/:cid", vehicleHandler.RemoveCompartment)

	categories := api.Group("/expense-categories")
	categoryHandler := NewExpenseCategoryHandler(deps.ExpenseCategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Entregas (/schedule antes de /:id)
	deliveries := api.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.MaxUploadBytes)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/schedule", deliveryHandler.Schedule)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Put("/:id", deliveryHandler.Update)
	deliveries.Delete("/:id", deliveryHandler.Delete)
	deliveries.Post("/:id/confirm", deliveryHandler.Confirm)
	deliveries.Post("/:id/photos", deliveryHandler.AddPhotos)
	deliveries.Delete("/:id/photos/:index", deliveryHandler.RemovePhoto)
	api.Post("/signatures", deliveryHandler.RenderSignature)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/deliveries", reportHandler.Deliveries)
	reports.Get("/expenses", reportHandler.Expenses)

	if deps.Notifications != nil {
		notificationHandler := NewNotificationHandler(deps.Notifications)
		api.Get("/notifications", notificationHandler.List)
	}
}
