package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Direction is the sign a value type applies to its rates. Only the two
// declared values are valid.
type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

// ParseDirection accepts asc/desc in any case and returns the normalized value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case DirectionAsc:
		return DirectionAsc, nil
	case DirectionDesc:
		return DirectionDesc, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be ASC or DESC", s)
}

func (d Direction) Valid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

func (d Direction) String() string {
	return string(d)
}

// Scan rejects stored values outside ASC/DESC instead of letting them reach
// the calculator.
func (d *Direction) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan direction: unsupported type %T", src)
	}
	parsed, err := ParseDirection(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Direction) Value() (driver.Value, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %q", string(d))
	}
	return string(d), nil
}
