package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"budgetvault/internal/models"
	"budgetvault/internal/repositories"
)

var ErrImportFailed = errors.New("import failed")

// importCommitter implements ImportCommitterInterface
type importCommitter struct {
	transactionRepo repositories.TransactionRepositoryInterface
	mappingRepo     repositories.MappingRepositoryInterface
	cryptor         CryptorInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewImportCommitter creates a new import committer
func NewImportCommitter(
	transactionRepo repositories.TransactionRepositoryInterface,
	mappingRepo repositories.MappingRepositoryInterface,
	cryptor CryptorInterface,
	metrics MetricsRecorderInterface,
) ImportCommitterInterface {
	return &importCommitter{
		transactionRepo: transactionRepo,
		mappingRepo:     mappingRepo,
		cryptor:         cryptor,
		metrics:         metrics,
		logger:          slog.Default(),
	}
}

// Commit converts approved review items into encrypted transaction records.
// Skipped and duplicate items never import; the duplicate exclusion is a hard
// gate at this layer, independent of any skip toggling in review. All
// surviving records are encrypted first and written with one bulk operation,
// so a storage failure imports nothing.
func (c *importCommitter) Commit(items []models.ReviewItem) (*models.ImportResult, error) {
	started := time.Now()

	survivors := make([]models.ReviewItem, 0, len(items))
	for _, item := range items {
		if item.Skip || item.IsDuplicate {
			continue
		}
		survivors = append(survivors, item)
	}

	if err := c.ensureAccountMappings(survivors); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	records := make([]models.Transaction, 0, len(survivors))
	uncategorized := 0
	for _, item := range survivors {
		record, err := c.encryptItem(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
		}
		if record.IsUncategorized() {
			uncategorized++
		}
		records = append(records, *record)
	}

	if _, err := c.transactionRepo.BulkAdd(records); err != nil {
		c.metrics.IncrementCounter("import.commit", map[string]string{"status": "failed"})
		return nil, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	c.metrics.IncrementCounter("import.commit", map[string]string{"status": "succeeded"})
	c.metrics.RecordGauge("import.rows_imported", float64(len(records)), nil)
	c.metrics.RecordProcessingTime("import.commit", time.Since(started))

	c.logger.Info("import committed",
		slog.Int("imported", len(records)),
		slog.Int("uncategorized", uncategorized),
		slog.Int("excluded", len(items)-len(survivors)),
	)

	return &models.ImportResult{
		Imported:           records,
		UncategorizedCount: uncategorized,
	}, nil
}

// ensureAccountMappings creates an empty-named AccountMapping for every
// account number observed in the surviving items. Upsert-if-absent only;
// an existing record, named or not, is never touched.
func (c *importCommitter) ensureAccountMappings(items []models.ReviewItem) error {
	accounts := make(map[string]struct{})
	for _, item := range items {
		if item.Row.Account != "" {
			accounts[item.Row.Account] = struct{}{}
		}
	}

	for account := range accounts {
		_, err := c.mappingRepo.GetAccount(account)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrAccountMappingNotFound) {
			return fmt.Errorf("failed to check account mapping %q: %w", account, err)
		}

		encName, err := c.cryptor.Encrypt("")
		if err != nil {
			return fmt.Errorf("failed to encrypt account mapping name: %w", err)
		}
		if err := c.mappingRepo.SetAccount(account, encName); err != nil {
			return fmt.Errorf("failed to create account mapping %q: %w", account, err)
		}
	}
	return nil
}

func (c *importCommitter) encryptItem(item models.ReviewItem) (*models.Transaction, error) {
	encrypt := func(field, plaintext string) (string, error) {
		ciphertext, err := c.cryptor.Encrypt(plaintext)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt %s: %w", field, err)
		}
		return ciphertext, nil
	}

	encDate, err := encrypt("date", item.Row.Date)
	if err != nil {
		return nil, err
	}
	encAmount, err := encrypt("amount", item.Row.Amount.StringFixed(2))
	if err != nil {
		return nil, err
	}
	encDescription, err := encrypt("description", item.Row.Description)
	if err != nil {
		return nil, err
	}
	encAccount, err := encrypt("account", item.Row.Account)
	if err != nil {
		return nil, err
	}

	record := &models.Transaction{
		EncryptedDate:        encDate,
		EncryptedAmount:      encAmount,
		EncryptedDescription: encDescription,
		EncryptedAccount:     encAccount,
	}

	resolution := item.EffectiveResolution()
	switch resolution.Kind {
	case models.ResolutionCategory:
		categoryID := resolution.CategoryID
		record.CategoryID = &categoryID
		record.PayeeID = resolution.PayeeID
		record.UseAutoCategory = !item.Override.IsResolved()
	case models.ResolutionTransfer:
		// An imported transfer has no linked counterpart yet; the marker
		// alone types the record as a transfer.
		encLinked, err := encrypt("linked transaction", "")
		if err != nil {
			return nil, err
		}
		record.MarkTransfer(encLinked)
	}

	return record, nil
}
