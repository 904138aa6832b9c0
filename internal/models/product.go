package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DataValidationError is returned when a product payload is missing data or carries bad values.
type DataValidationError struct {
	Msg string
	Err error
}

func (e *DataValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// NewDataValidationError builds a DataValidationError with no underlying cause.
func NewDataValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is, or wraps, a DataValidationError.
func IsValidationError(err error) bool {
	var vErr *DataValidationError
	return errors.As(err, &vErr)
}

// Product represents an item for sale in the catalog.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(63);not null" validate:"required,max=63"`
	Description string          `gorm:"type:varchar(256)" validate:"max=256"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Available   bool            `gorm:"not null"`
	Category    Category        `gorm:"type:varchar(16);not null"`
}

// ProductPayload is the wire representation of a Product.
type ProductPayload struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
	Category    string `json:"category"`
}

var validate = validator.New()

// required keys, checked in this order so the first missing one is reported.
var requiredFields = []string{"name", "price", "available", "category"}

func (p *Product) String() string {
	return fmt.Sprintf("<Product %s id=[%d]>", p.Name, p.ID)
}

// Serialize converts the product into its wire payload.
func (p *Product) Serialize() ProductPayload {
	return ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Available:   p.Available,
		Category:    p.Category.String(),
	}
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Serialize())
}

// Deserialize fills the product from a decoded JSON document. The id is left untouched.
func (p *Product) Deserialize(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return NewDataValidationError("Invalid product: body of request contained bad or no data")
	}
	for _, key := range requiredFields {
		if _, present := fields[key]; !present {
			return NewDataValidationError("Invalid product: missing %s", key)
		}
	}

	name, ok := fields["name"].(string)
	if !ok {
		return NewDataValidationError("Invalid product: name must be a string")
	}

	var description string
	if raw := fields["description"]; raw != nil {
		description, ok = raw.(string)
		if !ok {
			return NewDataValidationError("Invalid product: description must be a string")
		}
	}

	price, err := parsePrice(fields["price"])
	if err != nil {
		return &DataValidationError{Msg: "Invalid product: bad price", Err: err}
	}

	available, ok := fields["available"].(bool)
	if !ok {
		return NewDataValidationError("Invalid product: available must be a boolean")
	}

	categoryName, ok := fields["category"].(string)
	if !ok {
		return NewDataValidationError("Invalid product: category must be a string")
	}
	category, err := ParseCategory(categoryName)
	if err != nil {
		return &DataValidationError{Msg: "Invalid product: bad category", Err: err}
	}

	candidate := Product{
		ID:          p.ID,
		Name:        name,
		Description: description,
		Price:       price,
		Available:   available,
		Category:    category,
	}
	if err := validate.Struct(candidate); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return NewDataValidationError("Invalid product: field '%s' failed on the '%s' tag",
				strings.ToLower(fe.Field()), fe.Tag())
		}
		return &DataValidationError{Msg: "Invalid product", Err: err}
	}

	*p = candidate
	return nil
}

// parsePrice accepts the price either as a decimal string or as a JSON number.
func parsePrice(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, err
		}
		return d.Round(2), nil
	case float64:
		return decimal.NewFromFloat(v).Round(2), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, err
		}
		return d.Round(2), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported type %T", raw)
	}
}
