package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is a fixed-width ISO-8601 layout, so formatted values sort
// lexically in time order. Values are always rendered in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Engagement is one logged interaction between a citizen and the portal.
type Engagement struct {
	ID              string    `db:"id"`
	UserID          *string   `db:"user_id"`
	Age             *int      `db:"age"`
	Job             *string   `db:"job"`
	Desires         []string  `db:"desires"`
	QuestionClicked *string   `db:"question_clicked"`
	Service         *string   `db:"service"`
	Timestamp       time.Time `db:"timestamp"`
}

// EngagementView is the admin-facing JSON shape of an engagement.
type EngagementView struct {
	ID              string   `json:"id"`
	UserID          *string  `json:"user_id"`
	Age             *int     `json:"age"`
	Job             *string  `json:"job"`
	Desires         []string `json:"desires"`
	QuestionClicked *string  `json:"question_clicked"`
	Service         *string  `json:"service"`
	Timestamp       string   `json:"timestamp"`
}

// View converts the engagement into its JSON representation.
func (e Engagement) View() EngagementView {
	desires := e.Desires
	if desires == nil {
		desires = []string{}
	}
	return EngagementView{
		ID:              e.ID,
		UserID:          e.UserID,
		Age:             e.Age,
		Job:             e.Job,
		Desires:         desires,
		QuestionClicked: e.QuestionClicked,
		Service:         e.Service,
		Timestamp:       FormatTimestamp(e.Timestamp),
	}
}

// FormatTimestamp renders t with TimestampLayout; the zero time renders empty.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

// LogEngagementRequest is the public logging payload. Every field is decoded
// leniently: clients send numbers, numeric strings and junk alike.
type LogEngagementRequest struct {
	UserID          LooseString     `json:"user_id"`
	Age             json.RawMessage `json:"age"`
	Job             LooseString     `json:"job"`
	Desires         LooseStrings    `json:"desires"`
	QuestionClicked LooseString     `json:"question_clicked"`
	Service         LooseString     `json:"service"`
}

// LooseString decodes any JSON scalar as text. Null and structured values
// decode as absent.
type LooseString struct {
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseString) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		return err
	}
	l.Value = nil
	if text, ok := scalarText(v); ok {
		l.Value = &text
	}
	return nil
}

// LooseStrings decodes an array of scalars, or a single scalar, as a list of
// strings. Null and structured elements are dropped.
type LooseStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseStrings) UnmarshalJSON(data []byte) error {
	v, err := decodeLoose(data)
	if err != nil {
		return err
	}
	out := []string{}
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			if text, ok := scalarText(item); ok {
				out = append(out, text)
			}
		}
	default:
		if text, ok := scalarText(t); ok {
			out = append(out, text)
		}
	}
	*l = out
	return nil
}

func decodeLoose(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func scalarText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return stripNUL(t), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// stripNUL drops 0x00 bytes. JSON allows "\u0000" but Postgres text and jsonb
// columns reject it.
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// ParseAge coerces a raw JSON age into a non-negative integer. The boolean is
// false when the value is absent or cannot be read as an age.
func ParseAge(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) {
			return 0, false
		}
		return checkAge(int64(v))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return checkAge(n)
	default:
		return 0, false
	}
}

func checkAge(n int64) (int, bool) {
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// NewEngagement normalises a logging request into a storable engagement.
func NewEngagement(req LogEngagementRequest, now time.Time) Engagement {
	e := Engagement{
		Job:             req.Job.Value,
		Desires:         []string(req.Desires),
		QuestionClicked: req.QuestionClicked.Value,
		Service:         req.Service.Value,
		Timestamp:       now.UTC(),
	}
	if req.UserID.Value != nil && *req.UserID.Value != "" {
		e.UserID = req.UserID.Value
	}
	if age, ok := ParseAge(req.Age); ok {
		e.Age = &age
	}
	if e.Desires == nil {
		e.Desires = []string{}
	}
	return e
}
