package routes

import (
	"github.com/gofiber/fiber/v2"

	"garment-billing-backend/controllers"
	"garment-billing-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Staff invites (admin only; users live in the public schema)
	protected.Post("/users", middlewares.RequireAdmin(), controllers.AddUser)

	// Settings and company profiles
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", controllers.UpdateSettings)
	protected.Post("/companies", controllers.CreateCompany)
	protected.Get("/companies", controllers.GetCompanies)
	protected.Put("/companies/:id", controllers.UpdateCompany)

	// Products and stock pools
	protected.Post("/products", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)
	protected.Post("/products/:id/transfer", controllers.TransferStock)
	protected.Get("/transfers", controllers.ListTransfers)

	// Buyers
	protected.Get("/buyers", controllers.GetBuyers)
	protected.Get("/buyers/:id", controllers.GetBuyer)
	protected.Post("/buyers/:id/advance", controllers.RecordAdvance)
	protected.Post("/buyers/:id/resync", middlewares.RequireAdmin(), controllers.ResyncBuyer)

	// Wholesale orders (challans)
	protected.Post("/orders", controllers.CreateOrder)
	protected.Get("/orders", controllers.GetOrders)
	protected.Get("/orders/:id", controllers.GetOrder)
	protected.Post("/orders/:id/payments", controllers.RecordOrderPayment)

	// Monthly bills (draft -> generated -> sent -> partial -> paid/overdue)
	protected.Post("/bills/generate", controllers.GenerateBill)
	protected.Get("/bills", controllers.GetBills)
	protected.Get("/bills/:id", controllers.GetBill)
	protected.Put("/bills/:id/customize", controllers.CustomizeBill)
	protected.Put("/bills/:id/number", controllers.EditBillNumber)
	protected.Post("/bills/:id/finalize", controllers.FinalizeBill)
	protected.Post("/bills/:id/send", controllers.SendBill)
	protected.Post("/bills/:id/payments", controllers.ApplyBillPayment)
	protected.Delete("/bills/:id/payments/:paymentId", middlewares.RequireAdmin(), controllers.DeleteBillPayment)
	protected.Delete("/bills/:id", middlewares.RequireAdmin(), controllers.DeleteBill)
}
