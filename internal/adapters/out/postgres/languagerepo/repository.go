// Package languagerepo resolves language ids to display names for
// notification texts and read models.
package languagerepo

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/errs"
)

// LanguageDTO represents one bookable language.
type LanguageDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for language entities.
func (LanguageDTO) TableName() string {
	return "languages"
}

// GormLanguageCatalog implements LanguageCatalog using GORM. Names are
// cached after the first lookup; the set of languages changes rarely and
// only through migrations.
type GormLanguageCatalog struct {
	db *gorm.DB

	mu    sync.RWMutex
	names map[uuid.UUID]string
}

// NewGormLanguageCatalog creates a catalog backed by the languages table.
func NewGormLanguageCatalog(db *gorm.DB) *GormLanguageCatalog {
	return &GormLanguageCatalog{
		db:    db,
		names: make(map[uuid.UUID]string),
	}
}

// NameByID returns the language's display name.
func (c *GormLanguageCatalog) NameByID(ctx context.Context, id kernel.UUID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}

	raw := id.Bytes()

	c.mu.RLock()
	name, ok := c.names[raw]
	c.mu.RUnlock()
	if ok {
		return name, nil
	}

	var dto LanguageDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", raw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("language", id.String())
		}
		return "", err
	}

	c.mu.Lock()
	c.names[raw] = dto.Name
	c.mu.Unlock()

	return dto.Name, nil
}
