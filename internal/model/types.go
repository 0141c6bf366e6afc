package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Variants maps a purpose tag to the absolute URL of the derived blob. It is
// stored as a compact JSON object; keys are validated against the closed
// purpose set on both directions of the round-trip.
type Variants map[Purpose]string

func (v Variants) Value() (driver.Value, error) {
	if err := v.validateKeys(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal Variants: %w", err)
	}
	return b, nil
}

func (v *Variants) Scan(src interface{}) error {
	if src == nil {
		*v = Variants{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Variants.Scan: expected []byte, got %T", src)
	}
	if len(data) == 0 {
		*v = Variants{}
		return nil
	}
	var m map[Purpose]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unmarshal Variants: %w", err)
	}
	vv := Variants(m)
	if err := vv.validateKeys(); err != nil {
		return err
	}
	*v = vv
	return nil
}

func (v Variants) validateKeys() error {
	for p := range v {
		if !p.IsValid() {
			return fmt.Errorf("unknown variant purpose %q", p)
		}
	}
	return nil
}
