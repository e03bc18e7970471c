package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// seedBatchSize bounds the number of rows per INSERT in CreateBatch
const seedBatchSize = 50

// GormBoilerPartRepository implements catalog.BoilerPartRepository using GORM
type GormBoilerPartRepository struct {
	db *gorm.DB
}

// NewGormBoilerPartRepository creates a new GormBoilerPartRepository
func NewGormBoilerPartRepository(db *gorm.DB) *GormBoilerPartRepository {
	return &GormBoilerPartRepository{db: db}
}

// FindAndCount returns the requested page and the total number of matching rows
func (r *GormBoilerPartRepository) FindAndCount(ctx context.Context, filter catalog.PartFilter) ([]catalog.BoilerPart, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.BoilerPartModel{}).
		Scopes(partFilterScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count boiler parts: %w", err)
	}

	query := r.db.WithContext(ctx).
		Scopes(partFilterScope(filter)).
		Order("id ASC").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var ms []models.BoilerPartModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("find boiler parts: %w", err)
	}
	return models.BoilerPartsToDomain(ms), total, nil
}

// FindBestsellers returns every part flagged as bestseller
func (r *GormBoilerPartRepository) FindBestsellers(ctx context.Context) ([]catalog.BoilerPart, error) {
	return r.findFlagged(ctx, "bestseller")
}

// FindNew returns every part flagged as new
func (r *GormBoilerPartRepository) FindNew(ctx context.Context) ([]catalog.BoilerPart, error) {
	return r.findFlagged(ctx, "new")
}

// FindByID finds a part by ID
func (r *GormBoilerPartRepository) FindByID(ctx context.Context, id int64) (*catalog.BoilerPart, error) {
	var m models.BoilerPartModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find boiler part %d: %w", id, err)
	}
	return m.ToDomain(), nil
}

// FindByName finds a part by exact name
func (r *GormBoilerPartRepository) FindByName(ctx context.Context, name string) (*catalog.BoilerPart, error) {
	var m models.BoilerPartModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find boiler part by name: %w", err)
	}
	return m.ToDomain(), nil
}

// SearchByName returns up to limit parts whose name contains s. LIKE
// wildcards in s match literally.
func (r *GormBoilerPartRepository) SearchByName(ctx context.Context, s string, limit int) ([]catalog.BoilerPart, error) {
	query := r.db.WithContext(ctx).
		Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(s)+"%").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []models.BoilerPartModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("search boiler parts: %w", err)
	}
	return models.BoilerPartsToDomain(ms), nil
}

// CreateBatch inserts parts and copies generated IDs back
func (r *GormBoilerPartRepository) CreateBatch(ctx context.Context, parts []*catalog.BoilerPart) error {
	if len(parts) == 0 {
		return nil
	}

	ms := make([]*models.BoilerPartModel, 0, len(parts))
	for _, p := range parts {
		ms = append(ms, models.BoilerPartModelFromDomain(p))
	}
	if err := r.db.WithContext(ctx).CreateInBatches(ms, seedBatchSize).Error; err != nil {
		return fmt.Errorf("insert boiler parts: %w", err)
	}
	for i, m := range ms {
		parts[i].BaseEntity = m.BaseModel.ToDomain()
	}
	return nil
}

// DeleteAll removes every part
func (r *GormBoilerPartRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.BoilerPartModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete boiler parts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormBoilerPartRepository) findFlagged(ctx context.Context, column string) ([]catalog.BoilerPart, error) {
	var ms []models.BoilerPartModel
	if err := r.db.WithContext(ctx).
		Where(map[string]any{column: true}).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find %s boiler parts: %w", column, err)
	}
	return models.BoilerPartsToDomain(ms), nil
}

// partFilterScope applies the non-pagination part of a PartFilter
func partFilterScope(filter catalog.PartFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.HasPriceRange() {
			db = db.Where("price BETWEEN ? AND ?", *filter.PriceFrom, *filter.PriceTo)
		}
		if filter.BoilerManufacturers != nil {
			db = whereIn(db, "boiler_manufacturer", filter.BoilerManufacturers)
		}
		if filter.PartsManufacturers != nil {
			db = whereIn(db, "parts_manufacturer", filter.PartsManufacturers)
		}
		return db
	}
}

// whereIn adds "column IN (...)"; an empty set matches no rows
func whereIn(db *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(column+" IN ?", values)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ catalog.BoilerPartRepository = (*GormBoilerPartRepository)(nil)
