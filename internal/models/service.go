package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Service is a catalog entry. Known fields are typed; anything else an admin
// sends is kept verbatim in Extra and flattened back on output.
type Service struct {
	ID          string
	Name        string
	Description string
	Category    string
	Extra       map[string]interface{}
}

var serviceKnownFields = [...]string{"id", "name", "description", "category"}

// MarshalJSON flattens Extra alongside the known fields.
func (s Service) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Extra)+len(serviceKnownFields))
	for k, v := range s.Extra {
		out[k] = v
	}
	out["id"] = s.ID
	out["name"] = s.Name
	out["description"] = s.Description
	out["category"] = s.Category
	return json.Marshal(out)
}

// UnmarshalJSON accepts any object. Known fields given as non-strings are
// coerced to text; extension values are not validated.
func (s *Service) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("service payload must be an object")
	}

	s.ID = textValue(raw["id"])
	s.Name = textValue(raw["name"])
	s.Description = textValue(raw["description"])
	s.Category = textValue(raw["category"])
	for _, key := range serviceKnownFields {
		delete(raw, key)
	}
	s.Extra = raw
	*s = s.Sanitized()
	return nil
}

// Sanitized returns a copy with NUL bytes removed from every text field,
// extension key and nested extension string.
func (s Service) Sanitized() Service {
	out := Service{
		ID:          stripNUL(s.ID),
		Name:        stripNUL(s.Name),
		Description: stripNUL(s.Description),
		Category:    stripNUL(s.Category),
	}
	if s.Extra != nil {
		out.Extra = sanitizeValue(s.Extra).(map[string]interface{})
	}
	return out
}

func sanitizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return stripNUL(t)
	case map[string]interface{}:
		clean := make(map[string]interface{}, len(t))
		for k, item := range t {
			clean[stripNUL(k)] = sanitizeValue(item)
		}
		return clean
	case []interface{}:
		clean := make([]interface{}, len(t))
		for i, item := range t {
			clean[i] = sanitizeValue(item)
		}
		return clean
	default:
		return v
	}
}

func textValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if text, ok := scalarText(v); ok {
		return text
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
