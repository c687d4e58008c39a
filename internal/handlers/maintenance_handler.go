package handlers

import (
	"log/slog"
	"net/http"

	"budgetvault/internal/repositories"

	"github.com/labstack/echo/v4"
)

// MaintenanceHandler handles destructive bulk operations over the store
type MaintenanceHandler struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	logger          *slog.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceRepo repositories.MaintenanceRepositoryInterface) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceRepo: maintenanceRepo,
		logger:          slog.Default(),
	}
}

// ClearTransactions deletes every transaction
// @Summary Clear all transactions
// @Description Permanently delete every transaction; categories, payees, and mappings survive
// @Tags Maintenance
// @Produce json
// @Success 200 {object} SuccessResponse "Transactions cleared"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /maintenance/transactions [delete]
func (h *MaintenanceHandler) ClearTransactions(c echo.Context) error {
	if err := h.maintenanceRepo.ClearTransactions(); err != nil {
		return SendSystemError(c, err)
	}
	h.logger.Warn("all transactions cleared", "trace_id", getTraceID(c))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transactions cleared"})
}

// ClearMappings deletes every description and account mapping
// @Summary Clear all mappings
// @Description Permanently delete every learned description mapping and account mapping
// @Tags Maintenance
// @Produce json
// @Success 200 {object} SuccessResponse "Mappings cleared"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /maintenance/mappings [delete]
func (h *MaintenanceHandler) ClearMappings(c echo.Context) error {
	if err := h.maintenanceRepo.ClearMappings(); err != nil {
		return SendSystemError(c, err)
	}
	h.logger.Warn("all mappings cleared", "trace_id", getTraceID(c))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Mappings cleared"})
}

// ClearAllData wipes the whole store
// @Summary Clear all data
// @Description Permanently delete every transaction, category, payee, mapping, and budget
// @Tags Maintenance
// @Produce json
// @Success 200 {object} SuccessResponse "All data cleared"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /maintenance/all [delete]
func (h *MaintenanceHandler) ClearAllData(c echo.Context) error {
	if err := h.maintenanceRepo.ClearAllData(); err != nil {
		return SendSystemError(c, err)
	}
	h.logger.Warn("all data cleared", "trace_id", getTraceID(c))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "All data cleared"})
}
