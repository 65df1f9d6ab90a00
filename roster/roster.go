// Package roster parses free-text member import lists: one member per
// line, with a handicap attached by comma, tab, or trailing number.
package roster

import (
	"strconv"
	"strings"
)

// ImportedMember is one parsed roster line.
type ImportedMember struct {
	Name     string  `json:"name"`
	Handicap float64 `json:"handicap"`
}

// Parse splits the pasted text into lines and parses each non-blank
// line. It never fails: unparseable handicaps fall back to 0.
func Parse(text string) []ImportedMember {
	var members []ImportedMember
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		members = append(members, ParseLine(line))
	}
	return members
}

// ParseLine parses a single roster line. Tolerated shapes, tried in
// order: "Name, Handicap", "Name<TAB>Handicap", and "Name Handicap"
// where the final whitespace token parses as a number. A line with no
// numeric token is a bare name with handicap 0.
func ParseLine(line string) ImportedMember {
	line = strings.TrimSpace(line)

	if name, hcp, ok := splitOn(line, ","); ok {
		return ImportedMember{Name: name, Handicap: hcp}
	}
	if name, hcp, ok := splitOn(line, "\t"); ok {
		return ImportedMember{Name: name, Handicap: hcp}
	}

	fields := strings.Fields(line)
	if len(fields) > 1 {
		if hcp, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
			return ImportedMember{
				Name:     strings.Join(fields[:len(fields)-1], " "),
				Handicap: hcp,
			}
		}
	}

	return ImportedMember{Name: line, Handicap: 0}
}

func splitOn(line, sep string) (string, float64, bool) {
	i := strings.LastIndex(line, sep)
	if i < 0 {
		return "", 0, false
	}
	name := strings.TrimSpace(line[:i])
	hcp, err := strconv.ParseFloat(strings.TrimSpace(line[i+len(sep):]), 64)
	if err != nil || name == "" {
		return "", 0, false
	}
	return name, hcp, true
}
