package content

import (
	"os"
	"testing"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestDefaultCatalogParses(t *testing.T) {
	c := DefaultCatalog()

	if _, ok := c.Monsters["slime"]; !ok {
		t.Error("default catalog missing slime")
	}
	if _, ok := c.Items["sword"]; !ok {
		t.Error("default catalog missing sword")
	}
	sp, ok := c.Spells["firebolt"]
	if !ok {
		t.Fatal("default catalog missing firebolt")
	}
	if sp.MPCost != 3 || sp.DamageType != domain.DamageFire {
		t.Errorf("firebolt = %+v, want mp_cost 3, Fire", sp)
	}
}

func TestParseRejectsUnknownComponent(t *testing.T) {
	data := []byte(`{
		"monsters": {
			"ghost": {
				"name": "Ghost",
				"glyph": "g",
				"color": "#fff",
				"components": {"CEctoplasm": {}}
			}
		}
	}`)

	if _, err := Parse(data); err == nil {
		t.Error("expected validation error for unknown component name")
	}
}

func TestParseRejectsNamelessRecord(t *testing.T) {
	data := []byte(`{"items": {"mystery": {"glyph": "?", "color": "#fff"}}}`)

	if _, err := Parse(data); err == nil {
		t.Error("expected validation error for record without a name")
	}
}

func TestSpawnPlayer(t *testing.T) {
	w := domain.NewWorld()
	id := SpawnPlayer(w, 3, 4)

	pos, ok := w.PositionOf(id)
	if !ok || pos.X != 3 || pos.Y != 4 {
		t.Fatalf("player position = %+v, want (3,4)", pos)
	}
	hp, _ := w.HealthOf(id)
	if hp.HP != 100 || hp.MaxHP != 100 {
		t.Errorf("player health = %+v, want 100/100", hp)
	}
	b, ok := w.BlockerOf(id)
	if !ok || !b.BlocksMovement {
		t.Error("player must block movement")
	}
	sb, ok := w.SpellbookOf(id)
	if !ok || len(sb.Known) != 1 || sb.Known[0] != "firebolt" {
		t.Errorf("player spellbook = %+v, want [firebolt]", sb)
	}
	if _, ok := w.VisibleOf(id); !ok {
		t.Error("player must carry a visibility cache")
	}
}

func TestSpawnMonster(t *testing.T) {
	w := domain.NewWorld()
	c := DefaultCatalog()

	id, err := c.SpawnMonster(w, "slime", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	hp, ok := w.HealthOf(id)
	if !ok || hp.HP != 15 {
		t.Errorf("slime health = %+v, want 15", hp)
	}
	ai, ok := w.AIOf(id)
	if !ok || ai.Behavior != domain.BehaviorChase {
		t.Errorf("slime AI = %+v, want chase", ai)
	}
	b, _ := w.BlockerOf(id)
	if !b.BlocksMovement {
		t.Error("monsters must block movement")
	}
	v, ok := w.VisionOf(id)
	if !ok || v.Radius != 4 {
		t.Errorf("monster vision = %+v, want radius 4", v)
	}
}

func TestSpawnMonsterUnknownID(t *testing.T) {
	w := domain.NewWorld()
	c := DefaultCatalog()

	if _, err := c.SpawnMonster(w, "dragon", 0, 0); err == nil {
		t.Error("expected error for unknown monster id")
	}
}

func TestSpawnItem(t *testing.T) {
	w := domain.NewWorld()
	c := DefaultCatalog()

	id, err := c.SpawnItem(w, "sword", 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := w.BlockerOf(id)
	if b.BlocksMovement {
		t.Error("items must not block movement")
	}
	it, ok := w.InteractableOf(id)
	if !ok || it.Kind != domain.InteractableItem {
		t.Errorf("item interactable = %+v, want kind %q", it, domain.InteractableItem)
	}
	wp, ok := w.WeaponOf(id)
	if !ok || wp.DamageDice != "1d6+STR" {
		t.Errorf("sword weapon = %+v, want 1d6+STR", wp)
	}
}
