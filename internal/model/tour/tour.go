package tour

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrMissingID   = errors.New("tour id is missing")
	ErrInvalidID   = errors.New("tour id is not an integer")
	ErrNotObject   = errors.New("tour payload must be a JSON object")
	ErrIDExhausted = errors.New("tour id space exhausted")
)

// MaxID is the largest id that survives a JSON round trip through float64.
const MaxID = 1<<53 - 1

// Fields holds the client supplied attributes of a tour in insertion order.
type Fields = orderedmap.OrderedMap[string, json.RawMessage]

// NewFields returns an empty field set.
func NewFields() *Fields {
	return orderedmap.New[string, json.RawMessage]()
}

// Tour is the sole record of the collection: an integer id plus arbitrary fields.
type Tour struct {
	ID     int
	fields *Fields
}

// New builds a tour from the given fields. Any "id" key in fields is dropped
// and id is emitted first.
func New(id int, fields *Fields) Tour {
	copied := NewFields()
	if fields != nil {
		for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key == "id" {
				continue
			}
			copied.Set(pair.Key, append(json.RawMessage(nil), pair.Value...))
		}
	}
	return Tour{ID: id, fields: copied}
}

// Field returns the raw JSON value stored under key.
func (t Tour) Field(key string) (json.RawMessage, bool) {
	if key == "id" {
		return json.RawMessage(strconv.Itoa(t.ID)), true
	}
	if t.fields == nil {
		return nil, false
	}
	return t.fields.Get(key)
}

// Keys lists field names, id first.
func (t Tour) Keys() []string {
	keys := []string{"id"}
	if t.fields == nil {
		return keys
	}
	for pair := t.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON emits {"id": N, ...fields}.
func (t Tour) MarshalJSON() ([]byte, error) {
	out := NewFields()
	out.Set("id", json.RawMessage(strconv.Itoa(t.ID)))
	if t.fields != nil {
		for pair := t.fields.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out.MarshalJSON()
}

// UnmarshalJSON decodes a stored record. The id must be present and integral.
func (t *Tour) UnmarshalJSON(data []byte) error {
	fields, err := ParseFields(data)
	if err != nil {
		return err
	}
	raw, ok := fields.Delete("id")
	if !ok {
		return ErrMissingID
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, raw)
	}
	id, err := integral(n)
	if err != nil {
		return fmt.Errorf("%w: %s", err, raw)
	}

	t.ID = id
	t.fields = fields
	return nil
}

// ParseFields decodes a JSON object into ordered fields. An empty payload
// yields an empty field set.
func ParseFields(data []byte) (*Fields, error) {
	trimmed := bytes.TrimSpace(data)
	fields := NewFields()
	if len(trimmed) == 0 {
		return fields, nil
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("decode tour fields: malformed JSON")
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	if err := fields.UnmarshalJSON(trimmed); err != nil {
		return nil, fmt.Errorf("decode tour fields: %w", err)
	}
	return fields, nil
}

// ParseID converts a path parameter to a tour id. Integral decimal forms such
// as "5" or "5.0" are accepted.
func ParseID(raw string) (int, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	id, err := integral(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, raw)
	}
	return id, nil
}

// Numeric converts a path parameter the way a loose numeric cast would:
// blank is 0, anything unparseable is NaN, fractions are kept.
func Numeric(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	// ParseFloat also takes "inf", "nan", hex floats and underscores
	for _, c := range s {
		if !strings.ContainsRune("0123456789+-.eE", c) {
			return math.NaN()
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n
		}
		return math.NaN()
	}
	return n
}

// ClientID reports the integer id supplied in fields, if any.
func ClientID(fields *Fields) (int, bool) {
	if fields == nil {
		return 0, false
	}
	raw, ok := fields.Get("id")
	if !ok {
		return 0, false
	}
	var n *float64
	if err := json.Unmarshal(raw, &n); err != nil || n == nil {
		return 0, false
	}
	id, err := integral(*n)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Merge builds the record for a create. An integer id in fields wins over the
// generated one; next is only called when there is none.
func Merge(fields *Fields, next func() (int, error)) (Tour, error) {
	id, ok := ClientID(fields)
	if !ok {
		var err error
		if id, err = next(); err != nil {
			return Tour{}, err
		}
	}
	return New(id, fields), nil
}

// NextID returns max(existing id) + 1, or 0 for an empty collection.
func NextID(tours []Tour) (int, error) {
	if len(tours) == 0 {
		return 0, nil
	}
	highest := tours[0].ID
	for _, t := range tours[1:] {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return NextAfter(highest)
}

// NextAfter returns highest + 1 unless that would leave the storable range.
func NextAfter(highest int) (int, error) {
	if highest >= MaxID {
		return 0, ErrIDExhausted
	}
	return highest + 1, nil
}

func integral(n float64) (int, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > MaxID {
		return 0, ErrInvalidID
	}
	return int(n), nil
}
