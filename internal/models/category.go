package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category name is not one of the known values.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the fixed set of product categories.
type Category int

const (
	Clothing Category = iota
	Food
	Electronics
	Housewares
	Toys
)

var categoryNames = [...]string{
	Clothing:    "CLOTHING",
	Food:        "FOOD",
	Electronics: "ELECTRONICS",
	Housewares:  "HOUSEWARES",
	Toys:        "TOYS",
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{Clothing, Food, Electronics, Housewares, Toys}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory looks up a category by its exact symbolic name.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Value stores the category by name, never by ordinal.
func (c Category) Value() (driver.Value, error) {
	if c < 0 || int(c) >= len(categoryNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return c.String(), nil
}

// Scan implements sql.Scanner.
func (c *Category) Scan(src any) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
