// Package metrics exposes prometheus collectors for the settings store.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inkpost/inkpost/internal/settings"
)

const namespace = "inkpost"

// Settings counts committed edits per setting type.
// It is registered on the store as a settings.Listener.
type Settings struct {
	edits *prometheus.CounterVec
}

// NewSettings registers the settings collectors on reg.
// cacheSize is sampled on every scrape, usually (*settings.Store).Len.
func NewSettings(reg prometheus.Registerer, cacheSize func() int) *Settings {
	factory := promauto.With(reg)

	m := &Settings{
		edits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_edits_total",
			Help:      "Number of committed setting edits by setting type.",
		}, []string{"type"}),
	}

	if cacheSize != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "settings_cache_size",
			Help:      "Number of settings held in the cache.",
		}, func() float64 {
			return float64(cacheSize())
		})
	}

	return m
}

// SettingsEdited implements settings.Listener.
func (m *Settings) SettingsEdited(_ context.Context, _ *settings.Context, edited []settings.Setting) {
	for _, setting := range edited {
		m.edits.WithLabelValues(string(setting.Type)).Inc()
	}
}
