package config

import "testing"

func containsPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}

func TestTracerUnusedPathsExcludesMarked(t *testing.T) {
	cfg := map[string]any{
		"iteration": map[string]any{"encoding": "file_based"},
		"rank_table": map[string]any{"method": "posix_hostname"},
	}
	tr := NewTracer(cfg)
	tr.MarkRead("iteration.encoding")

	unused := tr.UnusedPaths()
	if containsPath(unused, "iteration.encoding") {
		t.Error("iteration.encoding was marked read, should not be reported as unused")
	}
	if !containsPath(unused, "rank_table.method") {
		t.Errorf("rank_table.method was never read, expected it in unused list, got %v", unused)
	}
}

func TestTracerExcludesBackendScopedPaths(t *testing.T) {
	cfg := map[string]any{
		"adios2": map[string]any{"engine": map[string]any{"type": "bp5"}},
		"hdf5":   map[string]any{"chunks": map[string]any{"enabled": "true"}},
		"global": map[string]any{"key": "value"},
	}
	tr := NewTracer(cfg)

	unused := tr.UnusedPaths()
	if containsPath(unused, "adios2.engine.type") {
		t.Error("adios2.* is backend-scoped and must be excluded from UnusedPaths")
	}
	if containsPath(unused, "hdf5.chunks.enabled") {
		t.Error("hdf5.* is backend-scoped and must be excluded from UnusedPaths")
	}
	if !containsPath(unused, "global.key") {
		t.Errorf("global.key should be reported unused, got %v", unused)
	}
}

func TestTracerAllPathsReadLeavesNoneUnused(t *testing.T) {
	cfg := map[string]any{"a": map[string]any{"b": "c"}}
	tr := NewTracer(cfg)
	tr.MarkRead("a.b")
	if unused := tr.UnusedPaths(); len(unused) != 0 {
		t.Errorf("expected no unused paths, got %v", unused)
	}
}
