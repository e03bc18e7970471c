// Package seed fills the catalog with generated boiler parts for development
// and demo environments.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

// DefaultCount is the number of parts generated when no count is given
const DefaultCount = 100

var boilerManufacturers = []string{
	"Ariston",
	"Chaffoteaux&Maury",
	"Baxi",
	"Bongioanni",
	"Saunier Duval",
	"Buderus",
	"Strategist",
	"Henry",
	"Northwest",
}

var partsManufacturers = []string{
	"Azure",
	"Gloves",
	"Cambridgeshire",
	"Salmon",
	"Montana",
	"Sensor",
	"Lesly",
	"Radian",
	"Gasoline",
	"Croatia",
}

// BoilerManufacturers returns the manufacturer names used for generated parts
func BoilerManufacturers() []string {
	return append([]string(nil), boilerManufacturers...)
}

// PartsManufacturers returns the parts manufacturer names used for generated parts
func PartsManufacturers() []string {
	return append([]string(nil), partsManufacturers...)
}

// Seeder generates catalog parts and writes them through the repository
type Seeder struct {
	repo   catalog.BoilerPartRepository
	faker  *gofakeit.Faker
	logger *zap.Logger
}

// NewSeeder creates a seeder. A zero seed produces a different catalog on
// every run; any other seed is reproducible.
func NewSeeder(repo catalog.BoilerPartRepository, seed uint64, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		repo:   repo,
		faker:  gofakeit.New(seed),
		logger: logger,
	}
}

// Generate builds count parts without storing them
func (s *Seeder) Generate(count int) []*catalog.BoilerPart {
	parts := make([]*catalog.BoilerPart, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, s.part())
	}
	return parts
}

// Seed generates and stores count parts
func (s *Seeder) Seed(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("seed count must be positive, got %d", count)
	}

	parts := s.Generate(count)
	if err := s.repo.CreateBatch(ctx, parts); err != nil {
		return 0, fmt.Errorf("seed boiler parts: %w", err)
	}

	s.logger.Info("Catalog seeded", zap.Int("count", len(parts)))
	return len(parts), nil
}

// Unseed removes every catalog part
func (s *Seeder) Unseed(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("unseed boiler parts: %w", err)
	}

	s.logger.Info("Catalog cleared", zap.Int64("count", n))
	return n, nil
}

func (s *Seeder) part() *catalog.BoilerPart {
	f := s.faker

	images := make([]string, f.IntRange(3, 5))
	for i := range images {
		images[i] = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.UUID()[:8])
	}

	return &catalog.BoilerPart{
		BoilerManufacturer: f.RandomString(boilerManufacturers),
		PartsManufacturer:  f.RandomString(partsManufacturers),
		Price:              int64(f.IntRange(1000, 9999)),
		VendorCode:         "V" + f.Numerify("#######"),
		Name:               s.words(f.IntRange(2, 4)),
		Description:        f.LoremIpsumSentence(8) + " " + f.LoremIpsumSentence(8),
		Compatibility:      s.words(4),
		Images:             catalog.EncodeImages(images),
		InStock:            f.IntRange(0, 99),
		Bestseller:         f.Bool(),
		New:                f.Bool(),
		Popularity:         f.IntRange(0, 999),
	}
}

func (s *Seeder) words(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = s.faker.LoremIpsumWord()
	}
	return strings.Join(words, " ")
}
