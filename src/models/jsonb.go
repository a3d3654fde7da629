package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores a structured object in a postgres jsonb column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}

	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("JSONB: Value: %w", err)
	}

	return string(data), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("JSONB: Scan: unsupported type %T", value)
	}

	if err := json.Unmarshal(data, j); err != nil {
		return fmt.Errorf("JSONB: Scan: %w", err)
	}

	return nil
}

// NewJSONB converts any json-serializable value into a JSONB map.
func NewJSONB(v interface{}) (JSONB, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("NewJSONB: marshal: %w", err)
	}

	var out JSONB
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("NewJSONB: unmarshal: %w", err)
	}

	return out, nil
}
