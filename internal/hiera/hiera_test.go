package hiera_test

import (
	"testing"

	"github.com/lindstrom-oss/puplint/internal/hiera"
)

func TestLoadEntriesWithLocations(t *testing.T) {
	content := []byte(`norisk::client::version: '1.2.3'
norisk::client::enabled: true
`)
	doc, err := hiera.Load("common.yaml", content)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}
	if doc.Entries[0].Key != "norisk::client::version" || doc.Entries[0].Line != 1 {
		t.Errorf("entry 0 = %+v", doc.Entries[0])
	}
	if doc.Entries[1].Key != "norisk::client::enabled" || doc.Entries[1].Line != 2 {
		t.Errorf("entry 1 = %+v", doc.Entries[1])
	}

	e, ok := doc.Lookup("norisk::client::version")
	if !ok || e.Value.Value != "1.2.3" {
		t.Errorf("Lookup(version) = %+v, %v", e, ok)
	}
	if _, ok := doc.Lookup("missing::key"); ok {
		t.Errorf("expected Lookup to report false for an absent key")
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	doc, err := hiera.Load("empty.yaml", []byte(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("expected no entries for an empty document, got %d", len(doc.Entries))
	}
}

func TestLoadRejectsNonMapping(t *testing.T) {
	if _, err := hiera.Load("list.yaml", []byte("- one\n- two\n")); err == nil {
		t.Fatalf("expected an error for a top-level sequence")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := hiera.Load("bad.yaml", []byte("key: [unterminated")); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
