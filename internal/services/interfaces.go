package services

import (
	"time"

	"budgetvault/internal/models"
)

// CryptorInterface is the encryption capability consumed by the import and
// preload paths. Satisfied by *vault.Vault.
type CryptorInterface interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// FormatParserInterface turns raw CSV text into normalized rows
type FormatParserInterface interface {
	// Parse converts rawText into normalized rows using the registered
	// format descriptor. Returns a *FormatError for an unknown format id or
	// a header that does not match the descriptor.
	Parse(formatID, rawText string) ([]models.NormalizedRow, error)

	// Formats lists the registered format descriptors
	Formats() []FormatDescriptor
}

// DuplicateDetectorInterface flags likely re-imports of existing transactions
type DuplicateDetectorInterface interface {
	// MarkDuplicates returns a slice parallel to rows; true means an existing
	// transaction has the same date, amount, and case-insensitive trimmed
	// description. Detection only, never linking.
	MarkDuplicates(rows []models.NormalizedRow, existing []models.DecryptedTransaction) []bool
}

// MappingResolverInterface resolves row descriptions to categories via
// learned description mappings
type MappingResolverInterface interface {
	// BuildIndex decrypts the mapping and category tables into lookup maps.
	// Must be called before Resolve; safe to call again with fresh data.
	BuildIndex(categories []models.Category, payees []models.Payee, mappings []models.DescriptionMapping) error

	// Resolve returns the resolution for a row description. Session
	// overrides always win over persisted mappings; a stale mapping whose
	// category no longer exists resolves to Unresolved rather than failing.
	Resolve(description string, overrides map[string]models.Resolution) models.Resolution
}

// ImportCommitterInterface converts approved review items into persisted
// encrypted transactions
type ImportCommitterInterface interface {
	Commit(items []models.ReviewItem) (*models.ImportResult, error)
}

// TransactionPreloaderInterface is the read-path dual of the committer:
// batch-decrypts the whole store into display-ready transactions
type TransactionPreloaderInterface interface {
	PreloadAll() []models.DisplayTransaction
}

// SampleGeneratorInterface fabricates demo data for development environments
type SampleGeneratorInterface interface {
	GenerateCSV(rows int) string
	GenerateCategories() []string
}

// MetricsRecorderInterface abstracts the metrics backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
