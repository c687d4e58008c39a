package handlers

import (
	stderrors "errors"
	"net/http"

	"budgetvault/internal/dto"
	"budgetvault/internal/errors"
	"budgetvault/internal/models"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles category budget HTTP requests
type BudgetHandler struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	cryptor      services.CryptorInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	cryptor services.CryptorInterface,
) *BudgetHandler {
	return &BudgetHandler{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		cryptor:      cryptor,
	}
}

// ListBudgets returns the budgets for one month
// @Summary List budgets for a month
// @Description List every category budget set for the given month, with decrypted amounts
// @Tags Budgets
// @Produce json
// @Param month path string true "Month key (YYYY-MM)"
// @Success 200 {object} dto.ListBudgetsResponse "Budgets for the month"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_006 - Invalid month key"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets/{month} [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	month := c.Param("month")
	if !models.IsValidMonthKey(month) {
		return SendError(c, errors.ValidationInvalidMonth)
	}

	budgets, err := h.budgetRepo.GetCategoryBudgetsForMonth(month)
	if err != nil {
		return SendSystemError(c, err)
	}

	views := make([]dto.BudgetView, 0, len(budgets))
	for _, budget := range budgets {
		amount, err := h.cryptor.Decrypt(budget.EncryptedAmount)
		if err != nil {
			continue
		}
		views = append(views, dto.BudgetView{
			CategoryID: budget.CategoryID,
			Month:      budget.Month,
			Amount:     amount,
		})
	}

	return c.JSON(http.StatusOK, dto.ListBudgetsResponse{Month: month, Budgets: views})
}

// SetBudget sets a category's budget for one month
// @Summary Set a budget
// @Description Set the encrypted monthly amount for one category
// @Tags Budgets
// @Accept json
// @Produce json
// @Param request body dto.SetBudgetRequest true "Budget fields"
// @Success 200 {object} dto.BudgetView "The saved budget"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /budgets [put]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	var req dto.SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if _, err := h.categoryRepo.GetByID(req.CategoryID); err != nil {
		if stderrors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	encAmount, err := h.cryptor.Encrypt(req.Amount)
	if err != nil {
		return SendError(c, errors.VaultEncryptionFailed)
	}

	if err := h.budgetRepo.SetCategoryBudget(req.CategoryID, req.Month, encAmount); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetView{
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Amount:     req.Amount,
	})
}
