package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an optional monetary amount in integer cents. Valid == false means
// no usable price existed in the source data, which is different from zero.
type Cents struct {
	Value int64
	Valid bool
}

func NewCents(v int64) Cents {
	return Cents{Value: v, Valid: true}
}

// ParsePriceCents converts a raw price cell into cents. All characters except
// digits, '.' and '-' are stripped before parsing, so "$1,199.99" and
// " 1199.99 USD " both come out as 119999. Anything that still fails to parse
// degrades to an invalid Cents, never to zero and never to an error.
func ParsePriceCents(raw string) Cents {
	if strings.TrimSpace(raw) == "" {
		return Cents{}
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return Cents{}
	}

	return NewCents(int64(math.Round(value * 100)))
}

// Decimal renders the amount as a plain two-fraction-digit string ("99.99"),
// or the empty string when the amount is absent.
func (c Cents) Decimal() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("%.2f", float64(c.Value)/100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cents{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NewCents(v)
	return nil
}
