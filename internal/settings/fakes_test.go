package settings_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/settings/defaults"
)

var errDenied = errors.New("denied")

// fakePersistence keeps rows in memory and materializes defaults from the
// embedded schema.
type fakePersistence struct {
	mu           sync.Mutex
	rows         []settings.Row
	schema       *defaults.Schema
	skipDefaults bool
	populateErr  error
	editErr      error
	editCalls    int
	findAllCalls int

	// findAllHold, when set, is signalled on entry and FindAll waits for
	// findAllRelease before returning its rows.
	findAllHold    chan struct{}
	findAllRelease chan struct{}
}

func newFakePersistence(rows ...settings.Row) *fakePersistence {
	return &fakePersistence{rows: rows, schema: defaults.Load()}
}

func (p *fakePersistence) FindAll(_ context.Context) ([]settings.Row, error) {
	p.mu.Lock()
	p.findAllCalls++
	rows := slices.Clone(p.rows)
	hold, release := p.findAllHold, p.findAllRelease
	p.mu.Unlock()

	if hold != nil {
		hold <- struct{}{}
		<-release
	}

	return rows, nil
}

func (p *fakePersistence) calls() (edits, findAll int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.editCalls, p.findAllCalls
}

func (p *fakePersistence) holdFindAll() (entered, release chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.findAllHold = make(chan struct{})
	p.findAllRelease = make(chan struct{})

	return p.findAllHold, p.findAllRelease
}

func (p *fakePersistence) Edit(_ context.Context, rows []settings.Row, actor uint64) ([]settings.Row, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.editCalls++
	if p.editErr != nil {
		return nil, p.editErr
	}

	out := make([]settings.Row, 0, len(rows))

	for _, row := range rows {
		i := slices.IndexFunc(p.rows, func(r settings.Row) bool { return r.Key == row.Key })
		if i < 0 {
			return nil, errors.Wrapf(settings.ErrNotFound, "setting %s", row.Key)
		}

		p.rows[i].Value = row.Value
		p.rows[i].UpdatedBy = actor
		p.rows[i].UpdatedAt = time.Now()
		out = append(out, p.rows[i])
	}

	return out, nil
}

func (p *fakePersistence) PopulateDefault(_ context.Context, key string) (settings.Row, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.populateErr != nil {
		return settings.Row{}, p.populateErr
	}

	return p.populateLocked(key)
}

func (p *fakePersistence) populateLocked(key string) (settings.Row, error) {
	if i := slices.IndexFunc(p.rows, func(r settings.Row) bool { return r.Key == key }); i >= 0 {
		return p.rows[i], nil
	}

	d, ok := p.schema.Lookup(key)
	if !ok {
		return settings.Row{}, errors.Wrapf(settings.ErrNotFound, "no default for %s", key)
	}

	row := settings.Row{
		Key:       d.Key,
		Value:     d.Value,
		Type:      settings.Type(d.Type),
		CreatedAt: time.Now(),
		CreatedBy: settings.SystemUserID,
	}
	p.rows = append(p.rows, row)

	return row, nil
}

func (p *fakePersistence) PopulateDefaults(_ context.Context) error {
	if p.skipDefaults {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, d := range p.schema.All() {
		if _, err := p.populateLocked(d.Key); err != nil {
			return err
		}
	}

	return nil
}

func (p *fakePersistence) value(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.rows {
		if r.Key == key {
			return r.Value
		}
	}

	return ""
}

// fakePermissions allows internal callers and the actions listed in allow.
type fakePermissions struct {
	mu    sync.Mutex
	allow map[settings.Action]bool
	calls []settings.Action
}

func allowAll() *fakePermissions {
	return &fakePermissions{allow: map[settings.Action]bool{
		settings.ActionBrowseSetting: true,
		settings.ActionReadSetting:   true,
		settings.ActionEditSetting:   true,
		settings.ActionBrowseTheme:   true,
		settings.ActionEditTheme:     true,
	}}
}

func denyAll() *fakePermissions {
	return &fakePermissions{allow: map[settings.Action]bool{}}
}

func (f *fakePermissions) CanPerform(_ context.Context, caller *settings.Context, action settings.Action, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, action)

	if caller.IsInternal() {
		return nil
	}

	if caller == nil || !f.allow[action] {
		return errDenied
	}

	return nil
}

type fakeLister struct {
	themes settings.Listing
	apps   settings.Listing
}

func (l *fakeLister) Themes() (settings.Listing, error) { return l.themes, nil }
func (l *fakeLister) Apps() (settings.Listing, error)   { return l.apps, nil }

type fakeSink struct {
	mu        sync.Mutex
	published []settings.ThemeConfig
}

func (s *fakeSink) PublishTheme(_ context.Context, cfg settings.ThemeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published = append(s.published, cfg)

	return nil
}

func (s *fakeSink) last() settings.ThemeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.published) == 0 {
		return settings.ThemeConfig{}
	}

	return s.published[len(s.published)-1]
}
