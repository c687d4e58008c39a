package services

import (
	"errors"
	"log/slog"
	"sync"

	"budgetvault/internal/models"
)

var ErrIndexNotBuilt = errors.New("mapping index has not been built")

// mappingResolver implements MappingResolverInterface. BuildIndex decrypts
// the category, payee, and mapping tables once into lookup maps; Resolve is
// then a pure lookup with no hidden state, so resolving the same description
// twice always yields the same result.
//
// The import review path and the transaction preload path share this one
// implementation so their normalization and fallback behavior cannot drift.
// Both paths run on concurrent requests, so the index maps are guarded by
// an RWMutex: BuildIndex swaps them under the write lock, Resolve reads
// under the read lock.
type mappingResolver struct {
	cryptor CryptorInterface
	logger  *slog.Logger

	mu               sync.RWMutex
	categoryIDByName map[string]uint
	payeeIDByName    map[string]uint
	resolutionByDesc map[string]models.Resolution
	built            bool
}

// NewMappingResolver creates a new mapping resolver
func NewMappingResolver(cryptor CryptorInterface) MappingResolverInterface {
	return &mappingResolver{
		cryptor: cryptor,
		logger:  slog.Default(),
	}
}

// BuildIndex decrypts categories, payees, and mappings into lookup maps.
// Mappings that fail to decrypt are skipped with a log line; a mapping whose
// category name matches no existing category is stale and indexed as
// Unresolved rather than dropped, so its payee can still apply.
func (r *mappingResolver) BuildIndex(categories []models.Category, payees []models.Payee, mappings []models.DescriptionMapping) error {
	categoryIDByName := make(map[string]uint, len(categories))
	for _, category := range categories {
		name, err := r.cryptor.Decrypt(category.EncryptedName)
		if err != nil {
			r.logger.Warn("skipping undecryptable category",
				slog.Uint64("category_id", uint64(category.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		categoryIDByName[name] = category.ID
	}

	payeeIDByName := make(map[string]uint, len(payees))
	for _, payee := range payees {
		name, err := r.cryptor.Decrypt(payee.EncryptedName)
		if err != nil {
			r.logger.Warn("skipping undecryptable payee",
				slog.Uint64("payee_id", uint64(payee.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		payeeIDByName[name] = payee.ID
	}

	resolutionByDesc := make(map[string]models.Resolution, len(mappings))
	for _, mapping := range mappings {
		categoryName, err := r.cryptor.Decrypt(mapping.EncryptedCategoryName)
		if err != nil {
			r.logger.Warn("skipping undecryptable description mapping",
				slog.String("description", mapping.Description),
				slog.String("error", err.Error()),
			)
			continue
		}

		var resolution models.Resolution
		if categoryName == models.TransferCategoryName {
			resolution = models.TransferResolution()
		} else if categoryID, exists := categoryIDByName[categoryName]; exists {
			resolution = models.CategoryResolution(categoryID)
		} else {
			// Stale mapping: the recorded category no longer exists.
			// Soft-fail to Unresolved instead of raising.
			resolution = models.Unresolved()
		}

		if mapping.EncryptedPayeeName != "" {
			payeeName, err := r.cryptor.Decrypt(mapping.EncryptedPayeeName)
			if err == nil {
				if payeeID, exists := payeeIDByName[payeeName]; exists {
					id := payeeID
					resolution.PayeeID = &id
				}
			}
		}

		resolutionByDesc[models.NormalizeDescription(mapping.Description)] = resolution
	}

	r.mu.Lock()
	r.categoryIDByName = categoryIDByName
	r.payeeIDByName = payeeIDByName
	r.resolutionByDesc = resolutionByDesc
	r.built = true
	r.mu.Unlock()
	return nil
}

// Resolve looks up a description. Session overrides win unconditionally;
// otherwise the persisted mapping table decides; an unmapped description is
// Unresolved and routed to manual review.
func (r *mappingResolver) Resolve(description string, overrides map[string]models.Resolution) models.Resolution {
	normalized := models.NormalizeDescription(description)

	if override, exists := overrides[normalized]; exists {
		return override
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.built {
		return models.Unresolved()
	}

	if resolution, exists := r.resolutionByDesc[normalized]; exists {
		return resolution
	}

	return models.Unresolved()
}
