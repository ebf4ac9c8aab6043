package setting

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/settings/defaults"
)

// ErrNoDefault is returned when a key has neither a row nor a default.
var ErrNoDefault = fmt.Errorf("no default for setting, %w", settings.ErrNotFound)

// Provider implements settings.Persistence on top of gorm.
type Provider struct {
	db     *gorm.DB
	schema *defaults.Schema
}

// NewProvider returns a Provider. A nil schema uses the embedded defaults.
func NewProvider(db *gorm.DB, schema *defaults.Schema) *Provider {
	if schema == nil {
		schema = defaults.Load()
	}

	return &Provider{db: db, schema: schema}
}

// FindAll returns every stored setting.
func (p *Provider) FindAll(ctx context.Context) ([]settings.Row, error) {
	if p.db == nil {
		return nil, ErrDBNil
	}

	all, err := GetAll(p.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	rows := make([]settings.Row, 0, len(all))
	for i := range all {
		rows = append(rows, ToRow(&all[i]))
	}

	return rows, nil
}

// Edit writes all rows in one transaction. A single missing key rolls back
// the whole batch.
func (p *Provider) Edit(ctx context.Context, rows []settings.Row, actor uint64) ([]settings.Row, error) {
	if p.db == nil {
		return nil, ErrDBNil
	}

	out := make([]settings.Row, 0, len(rows))

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			m, err := UpdateByKey(tx, row.Key, row.Value, actor)
			if err != nil {
				return fmt.Errorf("edit %s: %w", row.Key, err)
			}

			out = append(out, ToRow(m))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PopulateDefault returns the row of key, creating it from its default when
// it does not exist yet.
func (p *Provider) PopulateDefault(ctx context.Context, key string) (settings.Row, error) {
	if p.db == nil {
		return settings.Row{}, ErrDBNil
	}

	d, ok := p.schema.Lookup(key)
	if !ok {
		return settings.Row{}, fmt.Errorf("%w: %s", ErrNoDefault, key)
	}

	m, err := p.populate(p.db.WithContext(ctx), d)
	if err != nil {
		return settings.Row{}, err
	}

	return ToRow(m), nil
}

// PopulateDefaults creates every missing default setting.
func (p *Provider) PopulateDefaults(ctx context.Context) error {
	if p.db == nil {
		return ErrDBNil
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range p.schema.All() {
			if _, err := p.populate(tx, d); err != nil {
				return fmt.Errorf("populate %s: %w", d.Key, err)
			}
		}

		return nil
	})
}

func (p *Provider) populate(db *gorm.DB, d defaults.Default) (*models.Setting, error) {
	existing, err := Get(db, d.Key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSettingNotFound) {
		return nil, err
	}

	m := &models.Setting{
		Key:       d.Key,
		Value:     d.Value,
		Type:      d.Type,
		CreatedBy: settings.SystemUserID,
		UpdatedBy: settings.SystemUserID,
	}

	if err = Create(db, m); err != nil {
		return nil, err
	}

	return m, nil
}
