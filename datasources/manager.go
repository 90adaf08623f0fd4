/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/chartdata/core/tables"
)

// Manager handles loading and caching of data sources.
// Sources are registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name - loaded eagerly
	sources map[string]*DataSource

	// Cached tables indexed by source name - populated lazily
	tables map[string]tables.DataTable

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new data source manager with the csv and json
// loaders registered.
func NewManager() *Manager {
	m := &Manager{
		sources: make(map[string]*DataSource),
		tables:  make(map[string]tables.DataTable),
		loaders: make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewJsonLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// LoadConfig loads a JSON data sources config from a file:
//
//	{"sources": [{"name": "sales", "source_type": "csv", "config": {"file_path": "sales.csv"}}]}
//
// Relative file paths are resolved against the config's directory.
func (m *Manager) LoadConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	config := &structpb.Struct{}
	if err := protojson.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.SetBaseDir(filepath.Dir(configPath))

	return m.LoadConfigFromStruct(config)
}

// LoadConfigFromStruct registers the sources of a decoded config.
func (m *Manager) LoadConfigFromStruct(config *structpb.Struct) error {
	for i, v := range config.GetFields()["sources"].GetListValue().GetValues() {
		fields := v.GetStructValue().GetFields()
		source := &DataSource{
			Name:       fields["name"].GetStringValue(),
			SourceType: fields["source_type"].GetStringValue(),
			Config:     make(map[string]string),
		}
		if source.Name == "" {
			return fmt.Errorf("source %d has no name", i)
		}
		for key, value := range fields["config"].GetStructValue().GetFields() {
			source.Config[key] = value.GetStringValue()
		}
		m.AddSource(source)
	}
	return nil
}

// SetBaseDir sets the directory relative file paths are resolved against.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a source, replacing any source with the same name.
func (m *Manager) AddSource(source *DataSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source.Name] = source
	delete(m.tables, source.Name)
}

// GetSourceNames returns the registered source names, sorted.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSource returns the source registered under name, or nil.
func (m *Manager) GetSource(name string) *DataSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sources[name]
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(sourceName string) (tables.DataTable, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return tables.Empty(), fmt.Errorf("source %q not found", sourceName)
	}
	loader, hasLoader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	// Check if loader is registered
	if !hasLoader {
		return tables.Empty(), fmt.Errorf("no loader registered for source type %q", source.SourceType)
	}

	table, err := loader.Load(resolveConfigPaths(source.Config, baseDir))
	if err != nil {
		return tables.Empty(), fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}

	// Cache the result
	m.mu.Lock()
	m.tables[sourceName] = table
	m.mu.Unlock()

	return table, nil
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}

	resolved := make(map[string]string, len(config))
	pathKeys := map[string]bool{
		"file_path":    true,
		"table_source": true,
	}

	for k, v := range config {
		if pathKeys[k] && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}
