package gst

import (
	"regexp"
	"strings"
)

// stateAbbreviations maps the standard two-letter postal abbreviations to
// full state names. OD and OR are both in circulation for Odisha. The set of
// Indian states is stable, so this lives here rather than in configuration.
var stateAbbreviations = map[string]string{
	"AP": "Andhra Pradesh",
	"AR": "Arunachal Pradesh",
	"AS": "Assam",
	"BR": "Bihar",
	"CG": "Chhattisgarh",
	"CH": "Chandigarh",
	"DL": "Delhi",
	"GA": "Goa",
	"GJ": "Gujarat",
	"HP": "Himachal Pradesh",
	"HR": "Haryana",
	"JH": "Jharkhand",
	"JK": "Jammu and Kashmir",
	"KA": "Karnataka",
	"KL": "Kerala",
	"MH": "Maharashtra",
	"MN": "Manipur",
	"ML": "Meghalaya",
	"MP": "Madhya Pradesh",
	"MZ": "Mizoram",
	"NL": "Nagaland",
	"OD": "Odisha",
	"OR": "Odisha",
	"PB": "Punjab",
	"PY": "Puducherry",
	"RJ": "Rajasthan",
	"SK": "Sikkim",
	"TN": "Tamil Nadu",
	"TR": "Tripura",
	"TS": "Telangana",
	"UK": "Uttarakhand",
	"UP": "Uttar Pradesh",
	"WB": "West Bengal",
}

var (
	abbrCodePattern = regexp.MustCompile(`^([A-Z]{2})-?(\d{2})$`)
	bareCodePattern = regexp.MustCompile(`^\d{2}$`)
)

// StateEntry is one (name, code) pair from the state reference data.
type StateEntry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// StateMap is the state name to GST code reference, preserving the insertion
// order of the source configuration. Substring resolution scans in that
// order, so the order is part of the resolution contract. Immutable after
// construction and safe for concurrent reads.
type StateMap struct {
	entries []StateEntry
	byName  map[string]int
}

// NewStateMap builds a StateMap from ordered (name, code) pairs.
func NewStateMap(entries []StateEntry) *StateMap {
	m := &StateMap{
		entries: make([]StateEntry, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	copy(m.entries, entries)
	for i, e := range m.entries {
		m.byName[strings.ToLower(e.Name)] = i
	}
	return m
}

// Entries returns a copy of the ordered (name, code) pairs.
func (m *StateMap) Entries() []StateEntry {
	out := make([]StateEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len reports the number of entries.
func (m *StateMap) Len() int { return len(m.entries) }

// CodeFor returns the code for an exact (case-insensitive) state name, or ""
// if the name is not in the reference data.
func (m *StateMap) CodeFor(name string) string {
	if i, ok := m.byName[strings.ToLower(name)]; ok {
		return m.entries[i].Code
	}
	return ""
}

// Resolution is the outcome of normalizing a free-form state identifier.
// Empty fields mean the corresponding value could not be resolved;
// unresolvable input is not an error.
type Resolution struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Normalize resolves a free-form state identifier (full name, abbreviation,
// "ABBR-code", or bare 2-digit code) against the reference map. Rules are
// tried in strict priority order; first match wins:
//
//  1. abbreviation+code ("UP-09", "UP09"): resolve the abbreviation, look the
//     code up by name. The numeric suffix is not validated against the map.
//  2. bare 2-digit code: insertion-order scan; an unknown code passes
//     through unresolved in the Code field.
//  3. known abbreviation.
//  4. exact case-insensitive name.
//  5. first insertion-order substring match.
//
// Anything else echoes the trimmed input as Name with no Code. Empty input
// resolves to an empty Resolution.
func Normalize(input string, states *StateMap) Resolution {
	input = strings.TrimSpace(input)
	if input == "" {
		return Resolution{}
	}

	upper := strings.ToUpper(input)
	if m := abbrCodePattern.FindStringSubmatch(upper); m != nil {
		if name, ok := stateAbbreviations[m[1]]; ok {
			return Resolution{Name: name, Code: states.CodeFor(name)}
		}
	}

	if bareCodePattern.MatchString(input) {
		for _, e := range states.entries {
			if e.Code == input {
				return Resolution{Name: e.Name, Code: e.Code}
			}
		}
		return Resolution{Code: input}
	}

	if name, ok := stateAbbreviations[upper]; ok {
		return Resolution{Name: name, Code: states.CodeFor(name)}
	}

	lower := strings.ToLower(input)
	if i, ok := states.byName[lower]; ok {
		e := states.entries[i]
		return Resolution{Name: e.Name, Code: e.Code}
	}

	for _, e := range states.entries {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return Resolution{Name: e.Name, Code: e.Code}
		}
	}

	return Resolution{Name: input}
}
