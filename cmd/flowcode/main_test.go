package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSmartRules_EmptyPath(t *testing.T) {
	rules, err := readSmartRules("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules != nil {
		t.Errorf("expected nil rules, got %v", rules)
	}
}

func TestReadSmartRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"rule":"dynamic","priority":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := readSmartRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules["rule"] != "dynamic" {
		t.Errorf("expected rule %q, got %v", "dynamic", rules["rule"])
	}
}

func TestReadSmartRules_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := readSmartRules(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestReadSmartRules_MissingFile(t *testing.T) {
	if _, err := readSmartRules(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
