package game

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSetups(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setups.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSetups(t *testing.T) {
	path := writeSetups(t, `
setups:
  - name: first-game
    description: The recommended starter set.
    cards: [Cellar, Market, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village, Workshop]
  - name: attacks
    cards: [Bandit, Bureaucrat, Gardens, Harbinger, Laboratory, Militia, Moat, Sentry, Village, Witch]
`)
	setups, err := LoadSetups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(setups) != 2 {
		t.Fatalf("loaded %d setups, want 2", len(setups))
	}
	s, ok := FindSetup(setups, "attacks")
	if !ok || len(s.Cards) != 10 {
		t.Fatalf("FindSetup(attacks) = %+v, %v", s, ok)
	}
	if _, ok := FindSetup(setups, "nope"); ok {
		t.Fatal("found a setup that does not exist")
	}
}

func TestLoadSetupsRejectsBadFiles(t *testing.T) {
	if _, err := LoadSetups(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want an error")
	}
	for name, contents := range map[string]string{
		"unnamed":   "setups:\n  - cards: [Cellar, Market, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village, Workshop]\n",
		"nine":      "setups:\n  - name: short\n    cards: [Cellar, Market, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village]\n",
		"bad yaml":  "setups: [\n",
		"unknown":   "setups:\n  - name: x\n    cards: [Cellar, Market, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village, Wurkshop]\n",
		"basic":     "setups:\n  - name: x\n    cards: [Gold, Market, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village, Workshop]\n",
		"duplicate": "setups:\n  - name: x\n    cards: [Cellar, Cellar, Militia, Mine, Moat, Remodel, Smithy, Throne Room, Village, Workshop]\n",
	} {
		if _, err := LoadSetups(writeSetups(t, contents)); err == nil {
			t.Errorf("%s: want an error", name)
		}
	}
}

func TestValidateKingdomAcceptsVictoryKingdomCards(t *testing.T) {
	kingdom := []string{"Artisan", "Bandit", "Bureaucrat", "Chapel", "Festival",
		"Gardens", "Sentry", "Throne Room", "Witch", "Workshop"}
	if err := ValidateKingdom(kingdom); err != nil {
		t.Fatalf("Gardens kingdom rejected: %v", err)
	}
	if err := ValidateKingdom([]string{"Curse", "Bandit", "Bureaucrat", "Chapel", "Festival",
		"Gardens", "Sentry", "Throne Room", "Witch", "Workshop"}); CodeOf(err) != ErrBadConfig {
		t.Fatalf("Curse pile: got %v, want bad_config", err)
	}
}
