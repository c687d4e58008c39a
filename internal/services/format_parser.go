package services

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"budgetvault/internal/models"

	"github.com/shopspring/decimal"
)

// FormatError reports an unrecognized format id or CSV content that does not
// match the selected descriptor. Fatal to the parse step; no rows are
// produced.
type FormatError struct {
	FormatID string
	Line     int
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format %q: line %d: %s", e.FormatID, e.Line, e.Reason)
	}
	return fmt.Sprintf("format %q: %s", e.FormatID, e.Reason)
}

// FormatDescriptor describes one bank's CSV layout: which columns carry the
// normalized fields, how dates are written, and the sign convention.
// NegateAmounts is set for banks that report debits as positive numbers;
// normalized output always has debits negative and credits positive.
type FormatDescriptor struct {
	ID            string
	Name          string
	Header        []string
	DateIndex     int
	AmountIndex   int
	DescIndex     int
	AccountIndex  int // -1 when the format has no account column
	DateLayout    string
	NegateAmounts bool
}

// formatParser is a registry of pluggable format descriptors
type formatParser struct {
	descriptors map[string]FormatDescriptor
	order       []string
}

// NewFormatParser creates a parser with the built-in bank formats registered
func NewFormatParser() FormatParserInterface {
	p := &formatParser{
		descriptors: make(map[string]FormatDescriptor),
	}
	for _, d := range builtinDescriptors() {
		p.Register(d)
	}
	return p
}

func builtinDescriptors() []FormatDescriptor {
	return []FormatDescriptor{
		{
			ID:           "generic",
			Name:         "Generic export",
			Header:       []string{"Date", "Amount", "Description", "Account"},
			DateIndex:    0,
			AmountIndex:  1,
			DescIndex:    2,
			AccountIndex: 3,
			DateLayout:   "2006-01-02",
		},
		{
			ID:           "pnc",
			Name:         "PNC account activity",
			Header:       []string{"Date", "Description", "Amount", "Account Number"},
			DateIndex:    0,
			AmountIndex:  2,
			DescIndex:    1,
			AccountIndex: 3,
			DateLayout:   "01/02/2006",
		},
		{
			// TD reports debits as positive in its activity export
			ID:            "tdbank",
			Name:          "TD Bank activity",
			Header:        []string{"Date", "Account", "Description", "Amount"},
			DateIndex:     0,
			AmountIndex:   3,
			DescIndex:     2,
			AccountIndex:  1,
			DateLayout:    "01/02/2006",
			NegateAmounts: true,
		},
	}
}

// Register adds a custom format descriptor, replacing any with the same id
func (p *formatParser) Register(d FormatDescriptor) {
	if _, exists := p.descriptors[d.ID]; !exists {
		p.order = append(p.order, d.ID)
	}
	p.descriptors[d.ID] = d
}

// Formats lists the registered format descriptors in registration order
func (p *formatParser) Formats() []FormatDescriptor {
	formats := make([]FormatDescriptor, 0, len(p.order))
	for _, id := range p.order {
		formats = append(formats, p.descriptors[id])
	}
	return formats
}

// Parse converts rawText into normalized rows using the descriptor for formatID
func (p *formatParser) Parse(formatID, rawText string) ([]models.NormalizedRow, error) {
	descriptor, exists := p.descriptors[formatID]
	if !exists {
		return nil, &FormatError{FormatID: formatID, Reason: "unrecognized format"}
	}

	reader := csv.NewReader(strings.NewReader(rawText))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{FormatID: formatID, Reason: fmt.Sprintf("unreadable CSV: %v", err)}
	}
	if len(records) == 0 {
		return nil, &FormatError{FormatID: formatID, Reason: "empty input"}
	}

	if err := descriptor.checkHeader(records[0]); err != nil {
		return nil, err
	}

	rows := make([]models.NormalizedRow, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header
		row, err := descriptor.normalizeRecord(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (d FormatDescriptor) checkHeader(header []string) error {
	if len(header) != len(d.Header) {
		return &FormatError{
			FormatID: d.ID,
			Line:     1,
			Reason:   fmt.Sprintf("expected %d header columns, got %d", len(d.Header), len(header)),
		}
	}
	for i, expected := range d.Header {
		if !strings.EqualFold(strings.TrimSpace(header[i]), expected) {
			return &FormatError{
				FormatID: d.ID,
				Line:     1,
				Reason:   fmt.Sprintf("header column %d is %q, expected %q", i, strings.TrimSpace(header[i]), expected),
			}
		}
	}
	return nil
}

func (d FormatDescriptor) normalizeRecord(record []string, line int) (models.NormalizedRow, error) {
	if len(record) != len(d.Header) {
		return models.NormalizedRow{}, &FormatError{
			FormatID: d.ID,
			Line:     line,
			Reason:   fmt.Sprintf("expected %d columns, got %d", len(d.Header), len(record)),
		}
	}

	parsedDate, err := time.Parse(d.DateLayout, strings.TrimSpace(record[d.DateIndex]))
	if err != nil {
		return models.NormalizedRow{}, &FormatError{
			FormatID: d.ID,
			Line:     line,
			Reason:   fmt.Sprintf("unparseable date %q", record[d.DateIndex]),
		}
	}

	amount, err := parseAmount(record[d.AmountIndex])
	if err != nil {
		return models.NormalizedRow{}, &FormatError{
			FormatID: d.ID,
			Line:     line,
			Reason:   fmt.Sprintf("unparseable amount %q", record[d.AmountIndex]),
		}
	}
	if d.NegateAmounts {
		amount = amount.Neg()
	}

	account := ""
	if d.AccountIndex >= 0 {
		account = strings.TrimSpace(record[d.AccountIndex])
	}

	rawFields := make(map[string]string, len(record))
	for i, column := range d.Header {
		rawFields[column] = record[i]
	}

	return models.NormalizedRow{
		Date:        parsedDate.Format("2006-01-02"),
		Amount:      amount,
		Description: strings.TrimSpace(record[d.DescIndex]),
		Account:     account,
		RawFields:   rawFields,
	}, nil
}

// parseAmount handles currency symbols, thousands separators, and
// parenthesized negatives
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
