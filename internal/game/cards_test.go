package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCatalogComplete(t *testing.T) {
	for _, name := range CatalogOrder {
		def, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s missing from catalog", name)
		}
		if def.Name != name {
			t.Fatalf("catalog key %q holds %q", name, def.Name)
		}
	}
	// Effect starters are bound during package init.
	if MustCard("Cellar").Play == nil {
		t.Fatal("Cellar has no effect starter")
	}
	if MustCard("Gardens").VPFunc == nil {
		t.Fatal("Gardens has no VP function")
	}
}

func TestCommandTypeWireNames(t *testing.T) {
	data, err := json.Marshal(Command{Type: CmdBuyCard, Player: 1, Card: "Silver"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"type":"buy_card"`) {
		t.Fatalf("marshaled command = %s, want a wire name", data)
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.Type != CmdBuyCard || cmd.Card != "Silver" {
		t.Fatalf("round trip gave %+v", cmd)
	}

	if err := json.Unmarshal([]byte(`{"type":"laundry"}`), &cmd); err == nil {
		t.Fatal("unknown wire name was accepted")
	}
}
