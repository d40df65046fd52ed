package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/fincalc/num"
)

// Decimal wraps decimal.Decimal so that configuration files may write a
// value either as a number or as a quoted string. Quoted strings are exact.
type Decimal struct {
	decimal.Decimal
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Decimal) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		p, err := num.Parse(x)
		if err != nil {
			return err
		}
		d.Decimal = p
	case int64:
		d.Decimal = decimal.NewFromInt(x)
	case float64:
		d.Decimal = decimal.NewFromFloat(x)
	default:
		return fmt.Errorf("config: cannot read %T as a decimal: %w", v, num.ErrInvalidInput)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The scalar's source text is
// parsed directly, so unquoted numbers are exact too.
func (d *Decimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: line %d: expected a decimal scalar: %w", node.Line, num.ErrInvalidInput)
	}
	p, err := num.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("config: line %d: %w", node.Line, err)
	}
	d.Decimal = p
	return nil
}
