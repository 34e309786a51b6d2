package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KingdomSetup is a named ten-pile kingdom selection, loaded from a YAML
// setups file.
type KingdomSetup struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Cards       []string `yaml:"cards" json:"cards"`
}

// LoadSetups reads and validates a setups file. Every setup must name exactly
// ten distinct kingdom cards from the catalog.
func LoadSetups(path string) ([]KingdomSetup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Setups []KingdomSetup `yaml:"setups"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, s := range doc.Setups {
		if s.Name == "" {
			return nil, fmt.Errorf("%s: setup with no name", path)
		}
		if err := ValidateKingdom(s.Cards); err != nil {
			return nil, fmt.Errorf("%s: setup %q: %w", path, s.Name, err)
		}
	}
	return doc.Setups, nil
}

// FindSetup returns the setup with the given name.
func FindSetup(setups []KingdomSetup, name string) (*KingdomSetup, bool) {
	for i := range setups {
		if setups[i].Name == name {
			return &setups[i], true
		}
	}
	return nil, false
}

// ValidateKingdom checks a ten-pile kingdom selection against the catalog.
func ValidateKingdom(kingdom []string) error {
	if len(kingdom) != 10 {
		return ruleErr(ErrBadConfig, "kingdom needs 10 piles, got %d", len(kingdom))
	}
	seen := map[string]bool{}
	for _, name := range kingdom {
		def, ok := Lookup(name)
		if !ok {
			return ruleErr(ErrUnknownCard, "unknown kingdom card %q", name)
		}
		if basicPile(name) || (!def.IsAction() && !def.Types.Is(TypeVictory)) {
			return ruleErr(ErrBadConfig, "%q is not a kingdom card", name)
		}
		if seen[name] {
			return ruleErr(ErrBadConfig, "duplicate kingdom card %q", name)
		}
		seen[name] = true
	}
	return nil
}
