package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"budgetvault/internal/dto"
	"budgetvault/internal/errors"
	"budgetvault/internal/models"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	cryptor         services.CryptorInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	cryptor services.CryptorInterface,
) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		cryptor:         cryptor,
	}
}

// ListCategories returns all categories, decrypted for display
// @Summary List categories
// @Description List all categories with decrypted names and limits
// @Tags Categories
// @Produce json
// @Success 200 {object} dto.ListCategoriesResponse "All categories"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryRepo.GetAll()
	if err != nil {
		return SendSystemError(c, err)
	}

	views := make([]dto.CategoryView, 0, len(categories))
	for _, category := range categories {
		name, err := h.cryptor.Decrypt(category.EncryptedName)
		if err != nil {
			// Skip records the vault cannot read instead of failing the list
			continue
		}
		view := dto.CategoryView{ID: category.ID, Name: name, Type: category.Type}
		if category.EncryptedLimit != "" {
			if limit, err := h.cryptor.Decrypt(category.EncryptedLimit); err == nil {
				view.Limit = limit
			}
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{Categories: views})
}

// CreateCategory creates a new category
// @Summary Create a category
// @Description Create a category with an encrypted name and optional monthly limit
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.SaveCategoryRequest true "Category fields"
// @Success 201 {object} dto.CategoryView "The created category"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_004 - The Transfer name is reserved"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	req, err := h.bindCategoryRequest(c)
	if err != nil {
		return err
	}

	category, err := h.encryptCategory(c, req, 0)
	if err != nil {
		return err
	}

	id, err := h.categoryRepo.Save(category)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CategoryView{
		ID:    id,
		Name:  req.Name,
		Type:  req.Type,
		Limit: req.Limit,
	})
}

// UpdateCategory renames or retypes an existing category
// @Summary Update a category
// @Description Change a category's name, type, or monthly limit
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.SaveCategoryRequest true "Category fields"
// @Success 200 {object} dto.CategoryView "The updated category"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_004 - The Transfer name is reserved"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid category id"))
	}

	req, err := h.bindCategoryRequest(c)
	if err != nil {
		return err
	}

	if _, err := h.categoryRepo.GetByID(id); err != nil {
		if stderrors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	category, err := h.encryptCategory(c, req, id)
	if err != nil {
		return err
	}

	if _, err := h.categoryRepo.Save(category); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryView{
		ID:    id,
		Name:  req.Name,
		Type:  req.Type,
		Limit: req.Limit,
	})
}

// DeleteCategory removes a category that no transaction references
// @Summary Delete a category
// @Description Delete a category; refused while transactions still reference it
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} SuccessResponse "Category deleted"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "CATEGORY_003 - Category is still in use"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid category id"))
	}

	if _, err := h.categoryRepo.GetByID(id); err != nil {
		if stderrors.Is(err, repositories.ErrCategoryNotFound) {
			return SendError(c, errors.CategoryNotFound)
		}
		return SendSystemError(c, err)
	}

	count, err := h.transactionRepo.CountByCategory(id)
	if err != nil {
		return SendSystemError(c, err)
	}
	if count > 0 {
		return SendError(c, errors.CategoryInUse)
	}

	if err := h.categoryRepo.Delete(id); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Category deleted"})
}

func (h *CategoryHandler) bindCategoryRequest(c echo.Context) (*dto.SaveCategoryRequest, error) {
	var req dto.SaveCategoryRequest
	if err := c.Bind(&req); err != nil {
		return nil, SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	if strings.EqualFold(strings.TrimSpace(req.Name), models.TransferCategoryName) {
		return nil, SendError(c, errors.CategoryNameReserved)
	}
	return &req, nil
}

func (h *CategoryHandler) encryptCategory(c echo.Context, req *dto.SaveCategoryRequest, id uint) (*models.Category, error) {
	encName, err := h.cryptor.Encrypt(req.Name)
	if err != nil {
		return nil, SendError(c, errors.VaultEncryptionFailed)
	}

	category := &models.Category{
		ID:            id,
		EncryptedName: encName,
		Type:          req.Type,
	}
	if req.Limit != "" {
		encLimit, err := h.cryptor.Encrypt(req.Limit)
		if err != nil {
			return nil, SendError(c, errors.VaultEncryptionFailed)
		}
		category.EncryptedLimit = encLimit
	}
	return category, nil
}
