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

// MappingHandler handles description and account mapping HTTP requests
type MappingHandler struct {
	mappingRepo  repositories.MappingRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	cryptor      services.CryptorInterface
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(
	mappingRepo repositories.MappingRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	cryptor services.CryptorInterface,
) *MappingHandler {
	return &MappingHandler{
		mappingRepo:  mappingRepo,
		categoryRepo: categoryRepo,
		cryptor:      cryptor,
	}
}

// ListDescriptionMappings returns all learned description mappings
// @Summary List description mappings
// @Description List all learned description-to-category mappings; mappings whose category no longer exists are flagged stale
// @Tags Mappings
// @Produce json
// @Success 200 {object} dto.ListDescriptionMappingsResponse "All description mappings"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /mappings/descriptions [get]
func (h *MappingHandler) ListDescriptionMappings(c echo.Context) error {
	mappings, err := h.mappingRepo.GetAllDescriptions()
	if err != nil {
		return SendSystemError(c, err)
	}

	liveNames, err := h.liveCategoryNames()
	if err != nil {
		return SendSystemError(c, err)
	}

	views := make([]dto.DescriptionMappingView, 0, len(mappings))
	for _, mapping := range mappings {
		categoryName, err := h.cryptor.Decrypt(mapping.EncryptedCategoryName)
		if err != nil {
			continue
		}

		view := dto.DescriptionMappingView{
			Description:  mapping.Description,
			CategoryName: categoryName,
		}
		if mapping.EncryptedPayeeName != "" {
			if payeeName, err := h.cryptor.Decrypt(mapping.EncryptedPayeeName); err == nil {
				view.PayeeName = payeeName
			}
		}

		// The transfer sentinel never goes stale; real names must still
		// resolve to a live category
		if categoryName != models.TransferCategoryName {
			_, exists := liveNames[categoryName]
			view.Stale = !exists
		}

		views = append(views, view)
	}

	return c.JSON(http.StatusOK, dto.ListDescriptionMappingsResponse{Mappings: views})
}

// SetDescriptionMapping creates or updates a description mapping
// @Summary Set a description mapping
// @Description Associate a transaction description with a category name (and optionally a payee name); the description is stored normalized
// @Tags Mappings
// @Accept json
// @Produce json
// @Param request body dto.SetDescriptionMappingRequest true "Mapping fields"
// @Success 200 {object} SuccessResponse "Mapping saved"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /mappings/descriptions [put]
func (h *MappingHandler) SetDescriptionMapping(c echo.Context) error {
	var req dto.SetDescriptionMappingRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	encCategoryName, err := h.cryptor.Encrypt(req.CategoryName)
	if err != nil {
		return SendError(c, errors.VaultEncryptionFailed)
	}

	encPayeeName := ""
	if req.PayeeName != "" {
		encPayeeName, err = h.cryptor.Encrypt(req.PayeeName)
		if err != nil {
			return SendError(c, errors.VaultEncryptionFailed)
		}
	}

	normalized := models.NormalizeDescription(req.Description)
	if err := h.mappingRepo.SetDescription(normalized, encCategoryName, encPayeeName); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Mapping saved"})
}

// DeleteDescriptionMapping removes one description mapping
// @Summary Delete a description mapping
// @Description Remove the learned mapping for a description
// @Tags Mappings
// @Produce json
// @Param description path string true "Normalized description"
// @Success 200 {object} SuccessResponse "Mapping deleted"
// @Failure 404 {object} errors.ErrorResponse "MAPPING_001 - Mapping not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /mappings/descriptions/{description} [delete]
func (h *MappingHandler) DeleteDescriptionMapping(c echo.Context) error {
	description := models.NormalizeDescription(c.Param("description"))
	if description == "" {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("A description is required"))
	}

	if _, err := h.mappingRepo.GetDescription(description); err != nil {
		if stderrors.Is(err, repositories.ErrDescriptionMappingNotFound) {
			return SendError(c, errors.MappingNotFound)
		}
		return SendSystemError(c, err)
	}

	if err := h.mappingRepo.DeleteDescription(description); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Mapping deleted"})
}

// ListAccountMappings returns all account mappings
// @Summary List account mappings
// @Description List every observed account number with its decrypted display name
// @Tags Mappings
// @Produce json
// @Success 200 {object} dto.ListAccountMappingsResponse "All account mappings"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /mappings/accounts [get]
func (h *MappingHandler) ListAccountMappings(c echo.Context) error {
	mappings, err := h.mappingRepo.GetAllAccounts()
	if err != nil {
		return SendSystemError(c, err)
	}

	views := make([]dto.AccountMappingView, 0, len(mappings))
	for _, mapping := range mappings {
		name := ""
		if mapping.EncryptedName != "" {
			name, err = h.cryptor.Decrypt(mapping.EncryptedName)
			if err != nil {
				continue
			}
		}
		views = append(views, dto.AccountMappingView{
			AccountNumber: mapping.AccountNumber,
			Name:          name,
		})
	}

	return c.JSON(http.StatusOK, dto.ListAccountMappingsResponse{Accounts: views})
}

// SetAccountMapping names an account number
// @Summary Set an account mapping
// @Description Give a bank account number a friendly display name
// @Tags Mappings
// @Accept json
// @Produce json
// @Param request body dto.SetAccountMappingRequest true "Account mapping fields"
// @Success 200 {object} SuccessResponse "Account mapping saved"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /mappings/accounts [put]
func (h *MappingHandler) SetAccountMapping(c echo.Context) error {
	var req dto.SetAccountMappingRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	encName, err := h.cryptor.Encrypt(req.Name)
	if err != nil {
		return SendError(c, errors.VaultEncryptionFailed)
	}

	if err := h.mappingRepo.SetAccount(req.AccountNumber, encName); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Account mapping saved"})
}

func (h *MappingHandler) liveCategoryNames() (map[string]struct{}, error) {
	categories, err := h.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		name, err := h.cryptor.Decrypt(category.EncryptedName)
		if err != nil {
			continue
		}
		names[name] = struct{}{}
	}
	return names, nil
}
