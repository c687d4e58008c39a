package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type sampleGenerator struct {
	merchantPool []sampleMerchant
	rng          *rand.Rand
	faker        *gofakeit.Faker
}

type sampleMerchant struct {
	Name     string
	Category string
}

const (
	sampleDateLayout = "2006-01-02"
	sampleDateSpan   = 90
)

// NewSampleGenerator creates a generator for realistic demo CSV files in the
// generic import format.
func NewSampleGenerator() SampleGeneratorInterface {
	seed := time.Now().UnixNano()
	return &sampleGenerator{
		merchantPool: initializeSampleMerchants(),
		rng:          rand.New(rand.NewSource(seed)),
		faker:        gofakeit.New(uint64(seed)),
	}
}

func initializeSampleMerchants() []sampleMerchant {
	return []sampleMerchant{
		{"Walmart Supercenter", "Groceries"},
		{"Kroger", "Groceries"},
		{"Trader Joe's", "Groceries"},
		{"Aldi", "Groceries"},
		{"Starbucks", "Dining"},
		{"Chipotle Mexican Grill", "Dining"},
		{"Panera Bread", "Dining"},
		{"Pizza Hut", "Dining"},
		{"Uber", "Transportation"},
		{"Shell", "Transportation"},
		{"Metro Transit", "Transportation"},
		{"Amazon.com", "Shopping"},
		{"Home Depot", "Shopping"},
		{"IKEA", "Shopping"},
		{"Netflix", "Entertainment"},
		{"Spotify", "Entertainment"},
		{"AMC Theaters", "Entertainment"},
		{"Verizon Wireless", "Bills"},
		{"Comcast Xfinity", "Bills"},
		{"PG&E", "Bills"},
		{"CVS Pharmacy", "Healthcare"},
		{"Walgreens", "Healthcare"},
	}
}

// GenerateCategories returns the distinct category names the generated rows
// map to, so a dev seed can create the categories before importing the CSV.
func (g *sampleGenerator) GenerateCategories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, merchant := range g.merchantPool {
		if !seen[merchant.Category] {
			seen[merchant.Category] = true
			categories = append(categories, merchant.Category)
		}
	}
	return categories
}

// GenerateCSV produces a CSV document in the generic format header
// (Date,Amount,Description,Account) with the requested number of rows.
func (g *sampleGenerator) GenerateCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("Date,Amount,Description,Account\n")

	account := g.generateAccountNumber()
	endDate := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < rows; i++ {
		date := endDate.AddDate(0, 0, -g.rng.Intn(sampleDateSpan))
		merchant := g.merchantPool[g.rng.Intn(len(g.merchantPool))]
		amount := g.generateAmount(merchant.Category)

		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s\n",
			date.Format(sampleDateLayout),
			amount.StringFixed(2),
			g.generateDescription(merchant),
			account,
		))
	}

	return sb.String()
}

func (g *sampleGenerator) generateAccountNumber() string {
	return fmt.Sprintf("%010d", g.rng.Int63n(1e10))
}

func (g *sampleGenerator) generateAmount(category string) decimal.Decimal {
	ranges := map[string][2]float64{
		"Groceries":      {15.00, 250.00},
		"Dining":         {8.00, 120.00},
		"Transportation": {10.00, 80.00},
		"Shopping":       {25.00, 450.00},
		"Entertainment":  {10.00, 60.00},
		"Bills":          {50.00, 250.00},
		"Healthcare":     {20.00, 300.00},
	}

	bounds, ok := ranges[category]
	if !ok {
		bounds = [2]float64{10.00, 100.00}
	}
	value := g.faker.Float64Range(bounds[0], bounds[1])
	// Expenses are negative in bank exports; the odd refund stays positive.
	if g.rng.Float64() < 0.92 {
		value = -value
	}
	return decimal.NewFromFloat(value).Round(2)
}

func (g *sampleGenerator) generateDescription(merchant sampleMerchant) string {
	// Mimic the reference suffixes real exports attach, so the same merchant
	// shows up with slightly different raw descriptions.
	switch g.rng.Intn(3) {
	case 0:
		return merchant.Name
	case 1:
		return fmt.Sprintf("%s #%04d", merchant.Name, g.rng.Intn(10000))
	default:
		return fmt.Sprintf("POS PURCHASE %s", strings.ToUpper(merchant.Name))
	}
}
