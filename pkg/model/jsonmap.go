package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a schemaless string-keyed mapping stored as a JSONB column.
// It backs the open-ended custom_attributes and conditions fields.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("JSONMap: value is not a byte slice")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// StringList is a JSONB-backed list of strings (allowed role names, field names).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("StringList: value is not a byte slice")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// IDList is a JSONB-backed list of user IDs (explicit allowed principals).
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("IDList: value is not a byte slice")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Contains reports whether s is present in the list.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
