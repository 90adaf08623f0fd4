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
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/tables"
)

func demoDataDir(t *testing.T) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	return filepath.Join(filepath.Dir(currentFile), "..", "demo", "data")
}

func TestManagerLoadConfig(t *testing.T) {
	manager := NewManager()
	if err := manager.LoadConfig(filepath.Join(demoDataDir(t), "data_sources.json")); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify sources were registered (but not loaded)
	sourceNames := manager.GetSourceNames()
	if strings.Join(sourceNames, ",") != "regions,sales" {
		t.Errorf("GetSourceNames() = %v, want [regions sales]", sourceNames)
	}
	if manager.IsLoaded("sales") {
		t.Error("sales should not be loaded yet")
	}

	// Load data (lazy)
	table, err := manager.LoadData("sales")
	if err != nil {
		t.Fatalf("failed to load data: %v", err)
	}
	if table.Length() != 10 {
		t.Errorf("sales rows = %d, want 10", table.Length())
	}
	if !manager.IsLoaded("sales") {
		t.Error("sales should be loaded now")
	}

	// The table source renames day and forces the returned type.
	date, ok := table.ColumnByName("date")
	if !ok {
		t.Fatal("date column not found")
	}
	if date.Type != columns.TypeDatetime {
		t.Errorf("date type = %q, want %q", date.Type, columns.TypeDatetime)
	}
	if returned, _ := table.ColumnByName("returned"); returned.Type != columns.TypeBoolean {
		t.Errorf("returned type = %q, want %q", returned.Type, columns.TypeBoolean)
	}

	regions, err := manager.LoadData("regions")
	if err != nil {
		t.Fatalf("failed to load regions: %v", err)
	}
	region, _ := regions.ColumnByName("region")
	if got := tables.GetDisplayValue(regions.Rows[2], region); got != "North" {
		t.Errorf("regions row 2 = %q, want North", got)
	}
}

func TestManagerCaching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,x\n2,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	manager := NewManager()
	manager.SetBaseDir(dir)
	manager.AddSource(&DataSource{
		Name:       "t",
		SourceType: "csv",
		Config:     map[string]string{"file_path": "t.csv"},
	})

	first, err := manager.LoadData("t")
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}

	// Cached data survives changes on disk until invalidated.
	if err := os.WriteFile(path, []byte("a,b\n1,x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := manager.LoadData("t")
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if second.Length() != first.Length() {
		t.Errorf("cached rows = %d, want %d", second.Length(), first.Length())
	}

	manager.InvalidateCache("t")
	if manager.IsLoaded("t") {
		t.Error("t should not be loaded after InvalidateCache")
	}
	third, err := manager.LoadData("t")
	if err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	if third.Length() != 1 {
		t.Errorf("reloaded rows = %d, want 1", third.Length())
	}
}

type stubLoader struct {
	err error
}

func (stubLoader) SourceType() string { return "stub" }

func (l stubLoader) Load(map[string]string) (tables.DataTable, error) {
	return tables.Empty(), l.err
}

func TestManagerErrors(t *testing.T) {
	manager := NewManager()

	if _, err := manager.LoadData("missing"); err == nil {
		t.Error("expected error for unknown source")
	}

	manager.AddSource(&DataSource{Name: "db", SourceType: "postgres"})
	if _, err := manager.LoadData("db"); err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Errorf("LoadData(db) error = %v, want missing loader error", err)
	}

	errBoom := errors.New("boom")
	manager.RegisterLoader(stubLoader{err: errBoom})
	manager.AddSource(&DataSource{Name: "s", SourceType: "stub"})
	if _, err := manager.LoadData("s"); !errors.Is(err, errBoom) {
		t.Errorf("LoadData(s) error = %v, want wrapped boom", err)
	}
	if manager.IsLoaded("s") {
		t.Error("failed loads must not be cached")
	}

	manager.AddSource(&DataSource{Name: "nofile", SourceType: "csv", Config: map[string]string{}})
	if _, err := manager.LoadData("nofile"); err == nil {
		t.Error("expected error for csv source without file_path")
	}
}

func TestLoadConfigFromStruct_RequiresName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.json")
	if err := os.WriteFile(path, []byte(`{"sources": [{"source_type": "csv"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewManager().LoadConfig(path); err == nil {
		t.Error("expected error for source without name")
	}
}

func TestResolveConfigPaths(t *testing.T) {
	config := map[string]string{
		"file_path":    "a.csv",
		"table_source": "/abs/source.json",
		"delimiter":    ";",
	}
	got := resolveConfigPaths(config, "/data")
	if got["file_path"] != filepath.Join("/data", "a.csv") {
		t.Errorf("file_path = %q", got["file_path"])
	}
	if got["table_source"] != "/abs/source.json" {
		t.Errorf("table_source = %q, want unchanged", got["table_source"])
	}
	if got["delimiter"] != ";" {
		t.Errorf("delimiter = %q, want unchanged", got["delimiter"])
	}
}
