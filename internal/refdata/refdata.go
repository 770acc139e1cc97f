// Package refdata loads the JSON reference files the service depends on:
// the state code map, the supplier profile, and the product catalog.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

// File names inside the reference data directory.
const (
	StatesFile  = "state_codes.json"
	CompanyFile = "company_info.json"
	CatalogFile = "product_catalog.json"
)

// LoadStates reads state_codes.json ({"states": {name: code}}) and builds a
// StateMap. Key order in the file is preserved: substring resolution in
// gst.Normalize tie-breaks on it, so the map is parsed with a token decoder
// instead of unmarshaling into a Go map.
func LoadStates(dir string) (*gst.StateMap, error) {
	path := filepath.Join(dir, StatesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var entries []gst.StateEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		key, _ := keyTok.(string)
		if key != "states" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("parsing %s: states must be an object: %w", path, err)
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			name, _ := nameTok.(string)
			var code string
			if err := dec.Decode(&code); err != nil {
				return nil, fmt.Errorf("parsing %s: code for %q: %w", path, name, err)
			}
			entries = append(entries, gst.StateEntry{Name: name, Code: code})
		}
		if _, err := dec.Token(); err != nil { // closing brace of states
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: no states found", path)
	}
	return gst.NewStateMap(entries), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// LoadCompany reads the supplier profile from company_info.json.
func LoadCompany(dir string) (*domain.CompanyInfo, error) {
	path := filepath.Join(dir, CompanyFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var company domain.CompanyInfo
	if err := json.Unmarshal(data, &company); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if company.Name == "" || company.State == "" {
		return nil, fmt.Errorf("%s: name and state are required", path)
	}
	return &company, nil
}
