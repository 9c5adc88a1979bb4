package datasource

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"stock-fundamentals/src/data_source/fixture"
	"stock-fundamentals/src/data_source/yahoo"
	"stock-fundamentals/src/interfaces"
	"stock-fundamentals/src/logger"
	"stock-fundamentals/src/models"
)

// MultiSourceManager keeps the configured IDataSource implementations by name
type MultiSourceManager struct {
	Sources map[string]interfaces.IDataSource
	Logger  *logger.Logger
	mu      sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMultiSourceManager(sources []interfaces.IDataSource, log *logger.Logger) *MultiSourceManager {
	m := &MultiSourceManager{
		Sources: make(map[string]interfaces.IDataSource),
		Logger:  log,
	}

	for _, s := range sources {
		m.Sources[s.Name()] = s
	}

	return m
}

// -----------------------------------------------------------------------------

// AddSource registers a source; names must be unique
func (m *MultiSourceManager) AddSource(source interfaces.IDataSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := source.Name()
	if _, exists := m.Sources[name]; exists {
		return fmt.Errorf("source %s already exists", name)
	}

	m.Sources[name] = source
	m.Logger.Debug("Added source: %s", name)
	return nil
}

// -----------------------------------------------------------------------------

func (m *MultiSourceManager) GetSource(name string) (interfaces.IDataSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	source, exists := m.Sources[name]
	if !exists {
		return nil, fmt.Errorf("unknown source %q (available: %s)", name, strings.Join(m.names(), ", "))
	}
	return source, nil
}

// -----------------------------------------------------------------------------

// names returns the registered names sorted. Callers hold the lock.
func (m *MultiSourceManager) names() []string {
	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// NewDataSource builds every known provider and returns the one selected by
// cfg.Provider.Type.
func NewDataSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) (interfaces.IDataSource, error) {
	m := NewMultiSourceManager([]interfaces.IDataSource{
		yahoo.NewYahooFinanceSource(cfg.Provider, netMgr, log.Named("Yahoo")),
		fixture.NewFixtureSource(cfg.Provider.FixturePath, log.Named("Fixture")),
	}, log)

	return m.GetSource(cfg.Provider.Type)
}
