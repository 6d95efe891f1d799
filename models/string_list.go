package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList speichert eine geordnete Liste als JSON-Text in einer einzelnen Spalte.
type StringList []string

// EncodeList serialisiert eine Liste; nil und leere Listen ergeben "[]".
func EncodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeList ist die Umkehrung von EncodeList. Ungültiger Text ergibt eine leere Liste.
func DecodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// Value implementiert driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return EncodeList(l), nil
}

// Scan implementiert sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = DecodeList(v)
	case []byte:
		*l = DecodeList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return nil
}
