package handlers

import (
	"net/http"

	"budgetvault/internal/dto"
	"budgetvault/internal/models"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	categoryRepo   repositories.CategoryRepositoryInterface
	parser         services.FormatParserInterface
	committer      services.ImportCommitterInterface
	cryptor        services.CryptorInterface
	generator      services.SampleGeneratorInterface
	devEnvironment bool
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	categoryRepo repositories.CategoryRepositoryInterface,
	parser services.FormatParserInterface,
	committer services.ImportCommitterInterface,
	cryptor services.CryptorInterface,
	devEnvironment bool,
) *DevHandler {
	return &DevHandler{
		categoryRepo:   categoryRepo,
		parser:         parser,
		committer:      committer,
		cryptor:        cryptor,
		generator:      services.NewSampleGenerator(),
		devEnvironment: devEnvironment,
	}
}

// SeedSampleData generates and imports realistic sample transactions
//
// Method: POST /api/v1/dev/seed
// Environment: Development only
//
// Request body:
//   - rows: Number of transactions to generate (default: 100, max: 5000)
//
// Success Response: 200 OK
//   - categories: Number of sample categories created
//   - imported: Number of transactions imported
//
// Error Responses:
//   - 400: Invalid parameters
//   - 403: Forbidden (not a development environment)
//   - 500: Internal server error
func (h *DevHandler) SeedSampleData(c echo.Context) error {
	if !h.devEnvironment {
		return echo.NewHTTPError(http.StatusForbidden, "not available in this environment")
	}

	var req dto.SeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid parameters")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.Rows == 0 {
		req.Rows = 100
	}

	created := 0
	for _, name := range h.generator.GenerateCategories() {
		encName, err := h.cryptor.Encrypt(name)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "encryption failed")
		}
		if _, err := h.categoryRepo.Save(&models.Category{
			EncryptedName: encName,
			Type:          models.CategoryTypeExpense,
		}); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create sample categories")
		}
		created++
	}

	rows, err := h.parser.Parse("generic", h.generator.GenerateCSV(req.Rows))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to parse generated data")
	}

	items := make([]models.ReviewItem, len(rows))
	for i, row := range rows {
		items[i] = models.ReviewItem{Row: row}
	}

	result, err := h.committer.Commit(items)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to import generated data")
	}

	return c.JSON(http.StatusOK, dto.SeedResponse{
		Categories: created,
		Imported:   len(result.Imported),
	})
}
