package handlers

import (
	stderrors "errors"
	"net/http"

	"budgetvault/internal/dto"
	"budgetvault/internal/errors"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
	preloader       services.TransactionPreloaderInterface
	cryptor         services.CryptorInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	preloader services.TransactionPreloaderInterface,
	cryptor services.CryptorInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo: transactionRepo,
		preloader:       preloader,
		cryptor:         cryptor,
	}
}

// ListTransactions returns every transaction, decrypted for display
// @Summary List transactions
// @Description List all transactions with decrypted fields and resolved category, payee, and account names
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse "Decrypted transactions"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	transactions := h.preloader.PreloadAll()

	uncategorized, err := h.transactionRepo.CountUncategorized()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions:  transactions,
		Total:         len(transactions),
		Uncategorized: uncategorized,
	})
}

// UpdateTransaction changes the editable fields of one transaction
// @Summary Update a transaction
// @Description Change the category, payee, note, or transfer marker of a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change; omitted fields keep their value"
// @Success 200 {object} SuccessResponse "Transaction updated"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid transaction id"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionRepo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			transaction.CategoryID = nil
		} else {
			transaction.CategoryID = req.CategoryID
		}
		// A manual category pick ends auto-categorization for this record
		transaction.UseAutoCategory = false
	}

	if req.PayeeID != nil {
		if *req.PayeeID == 0 {
			transaction.PayeeID = nil
		} else {
			transaction.PayeeID = req.PayeeID
		}
		transaction.UseAutoPayee = false
	}

	if req.Note != nil {
		encNote, err := h.cryptor.Encrypt(*req.Note)
		if err != nil {
			return SendError(c, errors.VaultEncryptionFailed)
		}
		transaction.EncryptedNote = encNote
	}

	if req.Transfer != nil {
		if *req.Transfer {
			encEmpty, err := h.cryptor.Encrypt("")
			if err != nil {
				return SendError(c, errors.VaultEncryptionFailed)
			}
			transaction.MarkTransfer(encEmpty)
			transaction.CategoryID = nil
		} else {
			transaction.EncryptedLinkedTransaction = nil
		}
	}

	if err := h.transactionRepo.Update(transaction); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction updated"})
}

// DeleteTransaction removes one transaction
// @Summary Delete a transaction
// @Description Permanently delete a transaction
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} SuccessResponse "Transaction deleted"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := getUintParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid transaction id"))
	}

	if _, err := h.transactionRepo.GetByID(id); err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if err := h.transactionRepo.Delete(id); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Transaction deleted"})
}
