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

// PayeeHandler handles payee-related HTTP requests
type PayeeHandler struct {
	payeeRepo       repositories.PayeeRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	cryptor         services.CryptorInterface
}

// NewPayeeHandler creates a new payee handler
func NewPayeeHandler(
	payeeRepo repositories.PayeeRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	cryptor services.CryptorInterface,
) *PayeeHandler {
	return &PayeeHandler{
		payeeRepo:       payeeRepo,
		transactionRepo: transactionRepo,
		cryptor:         cryptor,
	}
}

// ListPayees returns all payees, decrypted for display
// @Summary List payees
// @Description List all payees with decrypted names
// @Tags Payees
// @Produce json
// @Success 200 {object} dto.ListPayeesResponse "All payees"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payees [get]
func (h *PayeeHandler) ListPayees(c echo.Context) error {
	payees, err := h.payeeRepo.GetAll()
	if err != nil {
		return SendSystemError(c, err)
	}

	views := make([]dto.PayeeView, 0, len(payees))
	for _, payee := range payees {
		name, err := h.cryptor.Decrypt(payee.EncryptedName)
		if err != nil {
			continue
		}
		views = append(views, dto.PayeeView{ID: payee.ID, Name: name})
	}

	return c.JSON(http.StatusOK, dto.ListPayeesResponse{Payees: views})
}

// CreatePayee creates a new payee
// @Summary Create a payee
// @Description Create a payee with an encrypted name
// @Tags Payees
// @Accept json
// @Produce json
// @Param request body dto.SavePayeeRequest true "Payee fields"
// @Success 201 {object} dto.PayeeView "The created payee"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payees [post]
func (h *PayeeHandler) CreatePayee(c echo.Context) error {
	var req dto.SavePayeeRequest
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

	id, err := h.payeeRepo.Save(&models.Payee{EncryptedName: encName})
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.PayeeView{ID: id, Name: req.Name})
}

// UpdatePayee renames an existing payee
// @Summary Update a payee
// @Description Change a payee's name
// @Tags Payees
// @Accept json
// @Produce json
// @Param id path int true "Payee ID"
// @Param request body dto.SavePayeeRequest true "Payee fields"
// @Success 200 {object} dto.PayeeView "The updated payee"
// @Failure 404 {object} errors.ErrorResponse "PAYEE_001 - Payee not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payees/{id} [put]
func (h *PayeeHandler) UpdatePayee(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid payee id"))
	}

	var req dto.SavePayeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if _, err := h.payeeRepo.GetByID(id); err != nil {
		if stderrors.Is(err, repositories.ErrPayeeNotFound) {
			return SendError(c, errors.PayeeNotFound)
		}
		return SendSystemError(c, err)
	}

	encName, err := h.cryptor.Encrypt(req.Name)
	if err != nil {
		return SendError(c, errors.VaultEncryptionFailed)
	}

	if _, err := h.payeeRepo.Save(&models.Payee{ID: id, EncryptedName: encName}); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PayeeView{ID: id, Name: req.Name})
}

// DeletePayee removes a payee that no transaction references
// @Summary Delete a payee
// @Description Delete a payee; refused while transactions still reference it
// @Tags Payees
// @Produce json
// @Param id path int true "Payee ID"
// @Success 200 {object} SuccessResponse "Payee deleted"
// @Failure 404 {object} errors.ErrorResponse "PAYEE_001 - Payee not found"
// @Failure 409 {object} errors.ErrorResponse "PAYEE_002 - Payee is still in use"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /payees/{id} [delete]
func (h *PayeeHandler) DeletePayee(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid payee id"))
	}

	if _, err := h.payeeRepo.GetByID(id); err != nil {
		if stderrors.Is(err, repositories.ErrPayeeNotFound) {
			return SendError(c, errors.PayeeNotFound)
		}
		return SendSystemError(c, err)
	}

	count, err := h.transactionRepo.CountByPayee(id)
	if err != nil {
		return SendSystemError(c, err)
	}
	if count > 0 {
		return SendError(c, errors.PayeeInUse)
	}

	if err := h.payeeRepo.Delete(id); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Payee deleted"})
}
