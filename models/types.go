package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// IntList is an integer slice stored as a JSON column so the same model
// works on Postgres and on sqlite in tests. Used for per-hole pars,
// stroke indexes and hole scores.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]int{})
	}
	return json.Marshal([]int(l))
}

func (l *IntList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return errors.New("unsupported type for IntList")
	}
}

// StringList is a string slice stored as a JSON column (guest names).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return errors.New("unsupported type for StringList")
	}
}

// PrizePlace is one placement inside a flight's prize table.
type PrizePlace struct {
	Place  int     `json:"place"`
	Trophy bool    `json:"trophy"`
	Cash   float64 `json:"cash"`
}

// PrizeConfig maps a flight ("A", "B", "C", "L") to its placements.
type PrizeConfig map[string][]PrizePlace

func (p PrizeConfig) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(map[string][]PrizePlace{})
	}
	return json.Marshal(map[string][]PrizePlace(p))
}

func (p *PrizeConfig) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return errors.New("unsupported type for PrizeConfig")
	}
}
