package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"budgetvault/internal/models"
	"budgetvault/internal/repositories"

	"github.com/shopspring/decimal"
)

// DefaultDecryptBatchSize caps concurrent decrypt operations during preload
const DefaultDecryptBatchSize = 50

// transactionPreloader implements TransactionPreloaderInterface: the read
// path matching the committer's write path. It loads the four tables in
// parallel, builds O(1) lookup maps, and decrypts transactions in bounded
// batches.
type transactionPreloader struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	payeeRepo       repositories.PayeeRepositoryInterface
	mappingRepo     repositories.MappingRepositoryInterface
	cryptor         CryptorInterface
	resolver        MappingResolverInterface
	metrics         MetricsRecorderInterface
	batchSize       int
	logger          *slog.Logger
}

// NewTransactionPreloader creates a new preloader. batchSize <= 0 falls back
// to DefaultDecryptBatchSize.
func NewTransactionPreloader(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	payeeRepo repositories.PayeeRepositoryInterface,
	mappingRepo repositories.MappingRepositoryInterface,
	cryptor CryptorInterface,
	resolver MappingResolverInterface,
	metrics MetricsRecorderInterface,
	batchSize int,
) TransactionPreloaderInterface {
	if batchSize <= 0 {
		batchSize = DefaultDecryptBatchSize
	}
	return &transactionPreloader{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		payeeRepo:       payeeRepo,
		mappingRepo:     mappingRepo,
		cryptor:         cryptor,
		resolver:        resolver,
		metrics:         metrics,
		batchSize:       batchSize,
		logger:          slog.Default(),
	}
}

type preloadData struct {
	transactions    []models.Transaction
	categories      []models.Category
	payees          []models.Payee
	mappings        []models.DescriptionMapping
	accountMappings []models.AccountMapping
}

// PreloadAll returns every transaction decrypted and display-ready. A record
// whose ciphertext cannot be decrypted is dropped from the result; a failure
// of the overall load yields an empty slice with the cause logged, so callers
// must not read an empty result as "confirmed zero transactions".
func (p *transactionPreloader) PreloadAll() []models.DisplayTransaction {
	started := time.Now()

	data, err := p.loadAll()
	if err != nil {
		p.logger.Error("preload failed", slog.String("error", err.Error()))
		p.metrics.IncrementCounter("preload.run", map[string]string{"status": "failed"})
		return []models.DisplayTransaction{}
	}

	categoryNameByID := make(map[uint]string, len(data.categories))
	for _, category := range data.categories {
		if name, err := p.cryptor.Decrypt(category.EncryptedName); err == nil {
			categoryNameByID[category.ID] = name
		}
	}

	payeeNameByID := make(map[uint]string, len(data.payees))
	for _, payee := range data.payees {
		if name, err := p.cryptor.Decrypt(payee.EncryptedName); err == nil {
			payeeNameByID[payee.ID] = name
		}
	}

	accountNameByNumber := make(map[string]string, len(data.accountMappings))
	for _, mapping := range data.accountMappings {
		if mapping.EncryptedName == "" {
			continue
		}
		if name, err := p.cryptor.Decrypt(mapping.EncryptedName); err == nil {
			accountNameByNumber[mapping.AccountNumber] = name
		}
	}

	if err := p.resolver.BuildIndex(data.categories, data.payees, data.mappings); err != nil {
		p.logger.Error("preload failed to build mapping index", slog.String("error", err.Error()))
		return []models.DisplayTransaction{}
	}

	display := p.decryptInBatches(data.transactions, categoryNameByID, payeeNameByID, accountNameByNumber)

	p.metrics.IncrementCounter("preload.run", map[string]string{"status": "succeeded"})
	p.metrics.RecordProcessingTime("preload.run", time.Since(started))
	return display
}

// loadAll issues the four independent reads in parallel; none depends on
// another, so completion order does not matter.
func (p *transactionPreloader) loadAll() (*preloadData, error) {
	var data preloadData
	var transactionsErr, categoriesErr, payeesErr, mappingsErr error

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		data.transactions, transactionsErr = p.transactionRepo.GetAll()
	}()
	go func() {
		defer wg.Done()
		data.categories, categoriesErr = p.categoryRepo.GetAll()
	}()
	go func() {
		defer wg.Done()
		data.payees, payeesErr = p.payeeRepo.GetAll()
	}()
	go func() {
		defer wg.Done()
		data.mappings, mappingsErr = p.mappingRepo.GetAllDescriptions()
		if mappingsErr == nil {
			data.accountMappings, mappingsErr = p.mappingRepo.GetAllAccounts()
		}
	}()

	wg.Wait()

	for _, err := range []error{transactionsErr, categoriesErr, payeesErr, mappingsErr} {
		if err != nil {
			return nil, fmt.Errorf("preload read failed: %w", err)
		}
	}
	return &data, nil
}

// decryptInBatches decrypts sequential fixed-size batches, running each
// batch's decryptions concurrently. Sequential batches bound the number of
// in-flight decrypt operations; within a batch, results keep input order.
func (p *transactionPreloader) decryptInBatches(
	transactions []models.Transaction,
	categoryNameByID map[uint]string,
	payeeNameByID map[uint]string,
	accountNameByNumber map[string]string,
) []models.DisplayTransaction {
	display := make([]models.DisplayTransaction, 0, len(transactions))

	for start := 0; start < len(transactions); start += p.batchSize {
		end := start + p.batchSize
		if end > len(transactions) {
			end = len(transactions)
		}
		batch := transactions[start:end]

		results := make([]*models.DisplayTransaction, len(batch))
		var wg sync.WaitGroup
		wg.Add(len(batch))
		for i := range batch {
			go func(i int) {
				defer wg.Done()
				item, err := p.decryptOne(&batch[i], categoryNameByID, payeeNameByID, accountNameByNumber)
				if err != nil {
					// One bad record must not sink the batch.
					p.logger.Warn("dropping undecryptable transaction",
						slog.Uint64("transaction_id", uint64(batch[i].ID)),
						slog.String("error", err.Error()),
					)
					p.metrics.IncrementCounter("preload.decrypt", map[string]string{"status": "failed"})
					return
				}
				results[i] = item
			}(i)
		}
		wg.Wait()

		for _, item := range results {
			if item != nil {
				display = append(display, *item)
			}
		}
	}

	return display
}

func (p *transactionPreloader) decryptOne(
	txn *models.Transaction,
	categoryNameByID map[uint]string,
	payeeNameByID map[uint]string,
	accountNameByNumber map[string]string,
) (*models.DisplayTransaction, error) {
	date, err := p.cryptor.Decrypt(txn.EncryptedDate)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	amountStr, err := p.cryptor.Decrypt(txn.EncryptedAmount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	description, err := p.cryptor.Decrypt(txn.EncryptedDescription)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	account := ""
	if txn.EncryptedAccount != "" {
		if account, err = p.cryptor.Decrypt(txn.EncryptedAccount); err != nil {
			return nil, fmt.Errorf("account: %w", err)
		}
	}
	note := ""
	if txn.EncryptedNote != "" {
		if note, err = p.cryptor.Decrypt(txn.EncryptedNote); err != nil {
			return nil, fmt.Errorf("note: %w", err)
		}
	}

	item := &models.DisplayTransaction{
		ID:          txn.ID,
		Date:        date,
		Amount:      amount,
		Description: description,
		Account:     account,
		AccountName: accountNameByNumber[account],
		Note:        note,
		CategoryID:  txn.CategoryID,
		PayeeID:     txn.PayeeID,
		IsTransfer:  txn.IsTransfer(),
	}

	if txn.CategoryID != nil {
		item.CategoryName = categoryNameByID[*txn.CategoryID]
	} else if txn.UseAutoCategory && !txn.IsTransfer() {
		// Category was left for dynamic re-resolution; use the same
		// resolver as the import path so behavior cannot diverge.
		resolution := p.resolver.Resolve(description, nil)
		switch resolution.Kind {
		case models.ResolutionCategory:
			categoryID := resolution.CategoryID
			item.CategoryID = &categoryID
			item.CategoryName = categoryNameByID[resolution.CategoryID]
			item.AutoMapped = true
		case models.ResolutionTransfer:
			item.IsTransfer = true
			item.AutoMapped = true
		}
	}

	if txn.PayeeID != nil {
		item.PayeeName = payeeNameByID[*txn.PayeeID]
	}

	return item, nil
}
