package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		r.Get("/health", h.Health)
		r.Get("/notifications", h.Notifications)

		// Properties list page (search, filter, pagination, selection)
		r.Get("/pages/properties", h.PropertiesPage)
		r.Post("/pages/properties/search", h.PropertiesSearch)
		r.Post("/pages/properties/filter", h.PropertiesFilter)
		r.Post("/pages/properties/page", h.PropertiesSetPage)
		r.Post("/pages/properties/selection", h.PropertiesSelection)
		r.Get("/pages/properties/export.csv", h.ExportPropertiesCSV)

		// Properties
		r.Post("/properties", h.CreateProperty)
		r.Put("/properties/{id}", h.UpdateProperty)
		r.Delete("/properties/{id}", h.DeleteProperty)
		r.Post("/properties/bulk-delete", h.BulkDeleteProperties)

		// Unit generation (nested under properties)
		r.Get("/properties/{id}/units/preview", h.PreviewUnits)
		r.Post("/properties/{id}/units/generate", h.GenerateUnits)

		// Manager assignments (nested under properties + direct removal)
		r.Get("/properties/{id}/managers", h.PropertyManagers)
		r.Get("/properties/{id}/managers/candidates", h.ManagerCandidates)
		r.Post("/properties/{id}/managers", h.AssignManager)
		r.Delete("/managers/{id}", h.RemoveManager)

		// Landlords list page
		r.Get("/pages/landlords", h.LandlordsPage)
		r.Post("/pages/landlords/search", h.LandlordsSearch)
		r.Post("/pages/landlords/page", h.LandlordsSetPage)

		// Landlords
		r.Get("/landlords/{id}", h.LandlordDetail)
		r.Post("/landlords", h.CreateLandlord)
		r.Put("/landlords/{id}", h.UpdateLandlord)
		r.Delete("/landlords/{id}", h.DeleteLandlord)

		// Units
		r.Get("/units", h.ListUnits)
		r.Get("/units/{id}", h.UnitDetail)
		r.Post("/units", h.CreateUnit)
		r.Put("/units/{id}", h.UpdateUnit)
		r.Delete("/units/{id}", h.DeleteUnit)

		// Leases
		r.Get("/leases", h.ListLeases)
		r.Get("/leases/{id}", h.GetLease)
		r.Post("/leases", h.CreateLease)
		r.Put("/leases/{id}", h.UpdateLease)
		r.Delete("/leases/{id}", h.DeleteLease)
		r.Post("/leases/{id}/document", h.UploadLeaseDocument)
		r.Get("/leases/{id}/charges", h.LeaseChargesReport)

		// Reports
		r.Get("/reports/statement", h.StatementReport)
		r.Get("/reports/landlord-statement", h.LandlordStatementReport)
		r.Get("/reports/commission", h.CommissionReport)
		r.Get("/reports/aged-analysis", h.AgedAnalysisReport)
		r.Get("/reports/income-expenditure", h.IncomeExpenditureReport)

		// Import templates
		r.Get("/import-templates/{resource}", h.ImportTemplate)
		r.Post("/import-templates/{resource}/save", h.SaveImportTemplate)
	})
}
