package handlers

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"budgetvault/internal/dto"
	"budgetvault/internal/errors"
	"budgetvault/internal/models"
	"budgetvault/internal/repositories"
	"budgetvault/internal/services"

	"github.com/labstack/echo/v4"
)

// DefaultMaxRowsPerImport limits how many rows a single parse accepts
const DefaultMaxRowsPerImport = 5000

// ImportHandler handles the CSV import pipeline: format listing, parsing
// into a review session, review filtering and commands, and the final
// commit. It owns at most one active review session at a time; starting a
// new parse replaces the previous session.
type ImportHandler struct {
	parser    services.FormatParserInterface
	detector  services.DuplicateDetectorInterface
	resolver  services.MappingResolverInterface
	committer services.ImportCommitterInterface
	preloader services.TransactionPreloaderInterface

	categoryRepo repositories.CategoryRepositoryInterface
	payeeRepo    repositories.PayeeRepositoryInterface
	mappingRepo  repositories.MappingRepositoryInterface
	cryptor      services.CryptorInterface
	metrics      services.MetricsRecorderInterface
	logger       *slog.Logger
	maxRows      int

	// mu guards session: both the pointer and the session's contents.
	// Every sort, command, and render of the working set runs under it,
	// so concurrent review requests serialize instead of racing.
	mu      sync.Mutex
	session *services.ReviewSession
}

// NewImportHandler creates a new import handler
func NewImportHandler(
	parser services.FormatParserInterface,
	detector services.DuplicateDetectorInterface,
	resolver services.MappingResolverInterface,
	committer services.ImportCommitterInterface,
	preloader services.TransactionPreloaderInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	payeeRepo repositories.PayeeRepositoryInterface,
	mappingRepo repositories.MappingRepositoryInterface,
	cryptor services.CryptorInterface,
	metrics services.MetricsRecorderInterface,
	maxRows int,
) *ImportHandler {
	if maxRows <= 0 {
		maxRows = DefaultMaxRowsPerImport
	}
	return &ImportHandler{
		parser:       parser,
		detector:     detector,
		resolver:     resolver,
		committer:    committer,
		preloader:    preloader,
		categoryRepo: categoryRepo,
		payeeRepo:    payeeRepo,
		mappingRepo:  mappingRepo,
		cryptor:      cryptor,
		metrics:      metrics,
		logger:       slog.Default(),
		maxRows:      maxRows,
	}
}

// ListFormats lists the registered import formats
// @Summary List import formats
// @Description List the bank CSV formats available for import
// @Tags Import
// @Produce json
// @Success 200 {object} dto.ListFormatsResponse "Registered formats"
// @Router /import/formats [get]
func (h *ImportHandler) ListFormats(c echo.Context) error {
	descriptors := h.parser.Formats()
	formats := make([]dto.FormatInfo, len(descriptors))
	for i, d := range descriptors {
		formats[i] = dto.FormatInfo{
			ID:     d.ID,
			Name:   d.Name,
			Header: d.Header,
		}
	}
	return c.JSON(http.StatusOK, dto.ListFormatsResponse{Formats: formats})
}

// ParseCSV parses raw CSV text into a new review session
// @Summary Parse CSV for review
// @Description Parse raw CSV text with the selected format, flag duplicates, apply learned mappings, and open a review session
// @Tags Import
// @Accept json
// @Produce json
// @Param request body dto.ParseImportRequest true "Format id and raw CSV text"
// @Success 200 {object} dto.ReviewResponse "The new review working set"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 422 {object} errors.ErrorResponse "FORMAT_001..FORMAT_004 - CSV does not match the selected format"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /import/parse [post]
func (h *ImportHandler) ParseCSV(c echo.Context) error {
	startTime := time.Now()

	var req dto.ParseImportRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	rows, err := h.parser.Parse(req.FormatID, req.CSV)
	if err != nil {
		var formatErr *services.FormatError
		if stderrors.As(err, &formatErr) {
			h.metrics.IncrementCounter("import.parse", map[string]string{"status": "failed"})
			return SendError(c, classifyFormatError(formatErr), errors.WithDetails(formatErr.Error()))
		}
		return SendSystemError(c, err)
	}

	if len(rows) > h.maxRows {
		h.metrics.IncrementCounter("import.parse", map[string]string{"status": "failed"})
		return SendError(c, errors.FormatFileTooLarge,
			errors.WithDetails(fmt.Sprintf("%d rows exceeds the limit of %d", len(rows), h.maxRows)))
	}

	existing := h.existingTransactions()
	flags := h.detector.MarkDuplicates(rows, existing)

	if err := h.rebuildResolverIndex(); err != nil {
		return SendSystemError(c, err)
	}

	items := make([]models.ReviewItem, len(rows))
	for i, row := range rows {
		items[i] = models.ReviewItem{
			Row:         row,
			IsDuplicate: flags[i],
			Suggested:   h.resolver.Resolve(row.Description, nil),
		}
	}

	session := services.NewReviewSession(items)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = session

	h.metrics.IncrementCounter("import.parse", map[string]string{"status": "success"})
	h.metrics.RecordProcessingTime("import.parse", time.Since(startTime))
	h.logger.Info("import parsed",
		"format", req.FormatID,
		"rows", len(rows),
		"duplicates", countTrue(flags))

	return c.JSON(http.StatusOK, buildReviewResponse(session, models.ReviewFilters{}))
}

// GetReview returns the review working set under the given filters
// @Summary View the review working set
// @Description List the current review items with filters and sorting applied
// @Tags Import
// @Produce json
// @Param search query string false "Substring match over description and account"
// @Param hide_duplicates query bool false "Hide flagged duplicates"
// @Param only_unmapped query bool false "Show only unresolved items"
// @Param only_auto_mapped query bool false "Show only auto-mapped items"
// @Param amount_min query string false "Minimum absolute amount"
// @Param amount_max query string false "Maximum absolute amount"
// @Param date_start query string false "Inclusive start date (YYYY-MM-DD)"
// @Param date_end query string false "Inclusive end date (YYYY-MM-DD)"
// @Param sort_field query string false "Sort field" Enums(date, amount, description, account)
// @Param sort_order query string false "Sort order" Enums(asc, desc)
// @Success 200 {object} dto.ReviewResponse "Filtered review items"
// @Failure 400 {object} errors.ErrorResponse "IMPORT_005 - Invalid sort parameters"
// @Failure 404 {object} errors.ErrorResponse "IMPORT_001 - No active review session"
// @Router /import/review [get]
func (h *ImportHandler) GetReview(c echo.Context) error {
	var query dto.ReviewQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return SendError(c, errors.ImportSessionNotFound)
	}

	if query.SortField != "" {
		order := query.SortOrder
		if order == "" {
			order = models.SortOrderAsc
		}
		if err := h.session.Sort(query.SortField, order); err != nil {
			return SendError(c, errors.ImportInvalidSort, errors.WithDetails(err.Error()))
		}
	}

	return c.JSON(http.StatusOK, buildReviewResponse(h.session, query.ToFilters()))
}

// ApplyCommand applies one review decision to the active session
// @Summary Apply a review command
// @Description Apply a skip, categorize, bulk, or save-mapping decision to the active review session
// @Tags Import
// @Accept json
// @Produce json
// @Param request body dto.ReviewCommandRequest true "The command to apply"
// @Success 200 {object} dto.ReviewResponse "Review items after the command, under the command's filters"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request parameters"
// @Failure 404 {object} errors.ErrorResponse "IMPORT_001/IMPORT_003 - No session or index out of range"
// @Failure 422 {object} errors.ErrorResponse "IMPORT_004 - A category is required"
// @Router /import/review/command [post]
func (h *ImportHandler) ApplyCommand(c echo.Context) error {
	var req dto.ReviewCommandRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request parameters"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return SendError(c, errors.ImportSessionNotFound)
	}

	command := buildReviewCommand(req)
	if err := command.Apply(h.session); err != nil {
		switch {
		case stderrors.Is(err, services.ErrItemIndexOutOfRange):
			return SendError(c, errors.ImportItemOutOfRange)
		case stderrors.Is(err, services.ErrCategoryRequired):
			return SendError(c, errors.ImportCategoryRequired)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, buildReviewResponse(h.session, req.Filters.ToFilters()))
}

// Commit persists the approved review items as encrypted transactions
// @Summary Commit the import
// @Description Encrypt and persist every non-skipped, non-duplicate review item in one atomic write, save requested mappings, and close the session
// @Tags Import
// @Produce json
// @Success 200 {object} dto.CommitImportResponse "What was imported"
// @Failure 404 {object} errors.ErrorResponse "IMPORT_001 - No active review session"
// @Failure 500 {object} errors.ErrorResponse "IMPORT_002 - Commit failed; nothing was imported"
// @Router /import/commit [post]
func (h *ImportHandler) Commit(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return SendError(c, errors.ImportSessionNotFound)
	}

	items := h.session.Items()
	result, err := h.committer.Commit(items)
	if err != nil {
		h.logger.Error("import commit failed", "error", err)
		return SendError(c, errors.ImportCommitFailed)
	}

	mappingsSaved := h.persistRequestedMappings(items)
	h.session = nil

	return c.JSON(http.StatusOK, dto.CommitImportResponse{
		Imported:           len(result.Imported),
		UncategorizedCount: result.UncategorizedCount,
		MappingsSaved:      mappingsSaved,
	})
}

// persistRequestedMappings writes a description mapping for every committed
// item the user flagged with save-mapping. Failures here are logged and
// skipped; the transactions are already persisted.
func (h *ImportHandler) persistRequestedMappings(items []models.ReviewItem) int {
	saved := 0
	for i := range items {
		item := &items[i]
		if !item.SaveMapping || item.Skip || item.IsDuplicate {
			continue
		}
		resolution := item.EffectiveResolution()
		if !resolution.IsResolved() {
			continue
		}

		categoryName, err := h.resolutionCategoryName(resolution)
		if err != nil {
			h.logger.Warn("mapping save skipped",
				"description", item.Row.Description,
				"error", err)
			continue
		}

		encCategoryName, err := h.cryptor.Encrypt(categoryName)
		if err != nil {
			h.logger.Warn("mapping save skipped", "error", err)
			continue
		}

		encPayeeName := ""
		if resolution.PayeeID != nil {
			if name, err := h.payeeName(*resolution.PayeeID); err == nil {
				encPayeeName, _ = h.cryptor.Encrypt(name)
			}
		}

		normalized := item.Row.NormalizedDescription()
		if err := h.mappingRepo.SetDescription(normalized, encCategoryName, encPayeeName); err != nil {
			h.logger.Warn("mapping save failed", "description", normalized, "error", err)
			continue
		}
		saved++
	}
	return saved
}

// resolutionCategoryName returns the plaintext category name a mapping should
// store for the given resolution. The transfer sentinel maps to the reserved
// name rather than a real category.
func (h *ImportHandler) resolutionCategoryName(resolution models.Resolution) (string, error) {
	if resolution.Kind == models.ResolutionTransfer {
		return models.TransferCategoryName, nil
	}

	category, err := h.categoryRepo.GetByID(resolution.CategoryID)
	if err != nil {
		return "", err
	}
	return h.cryptor.Decrypt(category.EncryptedName)
}

func (h *ImportHandler) payeeName(payeeID uint) (string, error) {
	payee, err := h.payeeRepo.GetByID(payeeID)
	if err != nil {
		return "", err
	}
	return h.cryptor.Decrypt(payee.EncryptedName)
}

// existingTransactions decrypts the current store into the form duplicate
// detection consumes. A failed preload yields an empty slice, which simply
// flags nothing.
func (h *ImportHandler) existingTransactions() []models.DecryptedTransaction {
	display := h.preloader.PreloadAll()
	existing := make([]models.DecryptedTransaction, len(display))
	for i, txn := range display {
		existing[i] = models.DecryptedTransaction{
			ID:          txn.ID,
			Date:        txn.Date,
			Amount:      txn.Amount,
			Description: txn.Description,
			Account:     txn.Account,
		}
	}
	return existing
}

func (h *ImportHandler) rebuildResolverIndex() error {
	categories, err := h.categoryRepo.GetAll()
	if err != nil {
		return err
	}
	payees, err := h.payeeRepo.GetAll()
	if err != nil {
		return err
	}
	mappings, err := h.mappingRepo.GetAllDescriptions()
	if err != nil {
		return err
	}
	return h.resolver.BuildIndex(categories, payees, mappings)
}

// buildReviewCommand maps a command request to the review command it names.
// The action values are constrained by request validation.
func buildReviewCommand(req dto.ReviewCommandRequest) services.ReviewCommand {
	switch req.Action {
	case "skip":
		return services.SkipItem{Index: req.Index, Skip: true}
	case "unskip":
		return services.SkipItem{Index: req.Index, Skip: false}
	case "set_category":
		return services.SetCategory{Index: req.Index, CategoryID: req.CategoryID}
	case "set_transfer":
		return services.SetCategory{Index: req.Index, Transfer: true}
	case "bulk_skip":
		return services.BulkSkip{Filters: req.Filters.ToFilters()}
	case "bulk_set_category":
		return services.BulkSetCategory{Filters: req.Filters.ToFilters(), CategoryID: req.CategoryID}
	default:
		return services.SaveAsMapping{Index: req.Index}
	}
}

// buildReviewResponse renders the session under the given filters. Indexes
// refer to positions in the full working set so commands stay valid while
// filters change.
func buildReviewResponse(session *services.ReviewSession, filters models.ReviewFilters) dto.ReviewResponse {
	all := session.Items()
	indexByItem := make(map[*models.ReviewItem]int, len(all))
	for i := range all {
		indexByItem[&all[i]] = i
	}

	duplicates := 0
	unresolved := 0
	for i := range all {
		if all[i].IsDuplicate {
			duplicates++
		}
		if !all[i].EffectiveResolution().IsResolved() {
			unresolved++
		}
	}

	visible := session.ApplyFilters(filters)
	items := make([]dto.ReviewItemView, len(visible))
	for i, item := range visible {
		items[i] = dto.ReviewItemView{
			Index:       indexByItem[item],
			Date:        item.Row.Date,
			Amount:      item.Row.Amount.StringFixed(2),
			Description: item.Row.Description,
			Account:     item.Row.Account,
			RawFields:   item.Row.RawFields,
			IsDuplicate: item.IsDuplicate,
			Skip:        item.Skip,
			SaveMapping: item.SaveMapping,
			Resolution:  resolutionView(item),
		}
	}

	return dto.ReviewResponse{
		Items:        items,
		TotalItems:   len(all),
		VisibleItems: len(visible),
		Duplicates:   duplicates,
		Unresolved:   unresolved,
	}
}

func resolutionView(item *models.ReviewItem) dto.ResolutionView {
	resolution := item.EffectiveResolution()
	view := dto.ResolutionView{
		AutoMapped: !item.Override.IsResolved() && item.Suggested.IsResolved(),
	}
	switch resolution.Kind {
	case models.ResolutionCategory:
		categoryID := resolution.CategoryID
		view.State = "category"
		view.CategoryID = &categoryID
		view.PayeeID = resolution.PayeeID
	case models.ResolutionTransfer:
		view.State = "transfer"
	default:
		view.State = "unresolved"
	}
	return view
}

// classifyFormatError maps a parse failure to its error code. A line number
// means the header or a data row failed. Without a line number the reason
// distinguishes an unknown format id, an empty file, and CSV the reader
// could not tokenize; the last is still a content failure of a recognized
// format, so it reports as a bad row rather than an unknown format.
func classifyFormatError(formatErr *services.FormatError) errors.ErrorCode {
	switch {
	case formatErr.Line == 1:
		return errors.FormatHeaderMismatch
	case formatErr.Line > 1:
		return errors.FormatBadRow
	case strings.Contains(formatErr.Reason, "empty"):
		return errors.FormatEmptyFile
	case strings.Contains(formatErr.Reason, "unreadable"):
		return errors.FormatBadRow
	default:
		return errors.FormatUnknown
	}
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
