package engine

import (
	"fmt"
	"sort"

	"github.com/ESikich/TopDownRPG/internal/content"
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/internal/systems"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
	"github.com/ESikich/TopDownRPG/pkg/logger"
	"github.com/ESikich/TopDownRPG/pkg/rng"

	"github.com/sirupsen/logrus"
)

// Game is one simulation instance: a world, its floor layout and the wired
// turn pipeline. It is single-threaded; callers serialize access.
type Game struct {
	cfg     Config
	catalog *content.Catalog
	src     rng.Source

	world    *domain.World
	layout   dungeon.Layout
	playerID domain.EntityID
	floor    int

	combatState *systems.CombatState
	movement    *systems.MovementSystem
	combat      *systems.CombatSystem
	inventory   *systems.InventorySystem
	ai          *systems.AISystem
	fov         *systems.FOVSystem
}

// TurnReport is what a completed pipeline run hands to the presentation
// layer: player-facing messages, the raw leftover events, and the outcomes
// the collaborators act on.
type TurnReport struct {
	Messages   []string
	Events     []domain.Event
	TookTurn   bool
	PlayerDied bool
	Descended  bool
}

// NewGame builds the first floor and wires the pipeline.
func NewGame(cfg Config, catalog *content.Catalog) *Game {
	g := &Game{
		cfg:     cfg,
		catalog: catalog,
		src:     rng.New(cfg.Seed),
		floor:   1,
	}
	g.buildFloor()

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"seed":      cfg.Seed,
		"width":     cfg.MapWidth,
		"height":    cfg.MapHeight,
	}).Info("Game created.")

	return g
}

// buildFloor generates the current floor, populates it and rewires the
// systems. The player entity carries over between floors with its health,
// mana and inventory intact.
func (g *Game) buildFloor() {
	keepPlayer := g.world != nil && g.playerID != 0

	g.layout = dungeon.Generate(g.cfg.MapWidth, g.cfg.MapHeight, g.cfg.Gen, g.src)

	spawn := domain.Point{X: g.cfg.MapWidth / 2, Y: g.cfg.MapHeight / 2}
	if len(g.layout.Rooms) > 0 {
		x, y := g.layout.Rooms[0].Center()
		spawn = domain.Point{X: x, Y: y}
	} else {
		// Degenerate all-wall floor: carve the fallback spawn tile so the
		// player is not entombed.
		g.layout.Grid[spawn.Y][spawn.X] = dungeon.Floor()
		logger.Log.WithField("component", "engine").Warn("Generator produced no rooms, using fallback spawn.")
	}

	if keepPlayer {
		// Strip the old floor's population, keep the player and anything
		// without a map position (carried items).
		for _, id := range g.world.Query(domain.KindPosition) {
			if id != g.playerID {
				g.world.DestroyEntity(id)
			}
		}
		pos, _ := g.world.PositionOf(g.playerID)
		pos.X, pos.Y = spawn.X, spawn.Y
		if vis, ok := g.world.VisibleOf(g.playerID); ok {
			vis.VisibleTiles = make(map[domain.Point]bool)
			vis.SeenTiles = make(map[domain.Point]bool)
		}
	} else {
		g.world = domain.NewWorld()
		g.playerID = content.SpawnPlayer(g.world, spawn.X, spawn.Y)
	}

	g.populate()

	g.combatState = systems.NewCombatState(g.world)
	g.movement = systems.NewMovementSystem(g.world, g.layout.Grid, g.combatState, g.playerID)
	g.combat = systems.NewCombatSystem(g.world, g.catalog, g.src)
	g.inventory = systems.NewInventorySystem(g.world)
	g.ai = systems.NewAISystem(g.world, g.layout.Grid, g.playerID, g.src)
	g.fov = systems.NewFOVSystem(g.world, g.layout.Grid)

	g.fov.Process()
	g.world.DrainEvents()
}

// populate scatters monsters over the non-start rooms and drops items on the
// treasure markers. Catalog keys are walked in sorted order so the same seed
// always yields the same floor.
func (g *Game) populate() {
	monsterIDs := sortedKeys(g.catalog.Monsters)
	itemIDs := sortedKeys(g.catalog.Items)

	if len(monsterIDs) > 0 && len(g.layout.Rooms) > 1 {
		spawned := 0
		for i := 1; i < len(g.layout.Rooms) && spawned < g.cfg.MonstersPerFloor; i++ {
			x, y := g.layout.Rooms[i].Center()
			id := monsterIDs[g.src.Intn(len(monsterIDs))]
			if _, err := g.catalog.SpawnMonster(g.world, id, x, y); err != nil {
				logger.Log.WithError(err).Warn("Monster spawn failed.")
				continue
			}
			spawned++
		}
	}

	if len(itemIDs) > 0 {
		for _, p := range g.layout.Placements.Treasures {
			id := itemIDs[g.src.Intn(len(itemIDs))]
			if _, err := g.catalog.SpawnItem(g.world, id, p.X, p.Y); err != nil {
				logger.Log.WithError(err).Warn("Item spawn failed.")
			}
		}
	}
}

// HandleAction runs one player action through the pipeline. UI-only actions
// (inventory, spellbook, pause) and rejected ones consume no turn.
func (g *Game) HandleAction(action domain.ActionType) *TurnReport {
	if dx, dy, ok := action.Direction(); ok {
		pos, found := g.world.PositionOf(g.playerID)
		if !found {
			return &TurnReport{}
		}
		g.world.Post(domain.MoveRequested{
			EID: g.playerID,
			To:  domain.Point{X: pos.X + dx, Y: pos.Y + dy},
		})
		return g.runPipeline()
	}

	switch action {
	case domain.ActionWait:
		return g.runPipeline()

	case domain.ActionDescend:
		return g.descend()

	case domain.ActionInventory, domain.ActionSpellbook, domain.ActionPause:
		return &TurnReport{}

	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"action":    action,
		}).Debug("Unhandled action.")
		return &TurnReport{}
	}
}

// CastSpell posts a spell cast for the player and runs the turn.
func (g *Game) CastSpell(spellID string, targetID domain.EntityID) *TurnReport {
	g.world.Post(domain.SpellCastRequested{
		CasterID: g.playerID,
		SpellID:  spellID,
		TargetID: targetID,
	})
	return g.runPipeline()
}

// EquipItem moves a carried item into the slot. Equipping is free: it does
// not advance the turn.
func (g *Game) EquipItem(slot string, itemID domain.EntityID) (*TurnReport, error) {
	if err := systems.Equip(g.world, g.playerID, slot, itemID); err != nil {
		return nil, err
	}
	report := &TurnReport{}
	g.collectLeftovers(report)
	return report, nil
}

// descend moves to the next floor when the player stands on the stairs.
// Standing anywhere else costs nothing and only produces a message.
func (g *Game) descend() *TurnReport {
	pos, ok := g.world.PositionOf(g.playerID)
	if !ok {
		return &TurnReport{}
	}
	if g.layout.Grid[pos.Y][pos.X].Type != dungeon.TileStairsDown {
		return &TurnReport{Messages: []string{"There are no stairs here."}}
	}

	g.world.Post(domain.DescendRequested{EID: g.playerID, StairXY: pos.Point()})
	g.world.DrainEvents()

	g.floor++
	g.buildFloor()

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"floor":     g.floor,
	}).Info("Descended to next floor.")

	return &TurnReport{
		Messages:  []string{fmt.Sprintf("You descend to floor %d.", g.floor)},
		TookTurn:  true,
		Descended: true,
	}
}

// runPipeline executes one full turn: the player's action through movement,
// combat and pickup, then the monsters' decisions and their movement and
// combat, then the visibility refresh. Every drained batch passes through
// the combat-state observer before routing.
func (g *Game) runPipeline() *TurnReport {
	g.step(g.movement)
	g.step(g.combat)
	g.step(g.inventory)

	g.ai.Process()

	g.step(g.movement)
	g.step(g.combat)

	g.fov.Process()

	report := &TurnReport{TookTurn: true}
	g.collectLeftovers(report)
	return report
}

// step drains one batch, lets the combat-state observer see it, hands the
// system the kinds it consumes and re-posts the rest for later stages.
func (g *Game) step(sys systems.EventProcessor) {
	batch := g.world.DrainEvents()
	if len(batch) == 0 {
		return
	}
	g.combatState.Observe(batch)

	var owned []domain.Event
	for _, ev := range batch {
		if sys.Consumes(ev.EventKind()) {
			owned = append(owned, ev)
		} else {
			g.world.Post(ev)
		}
	}
	if len(owned) > 0 {
		sys.Process(owned)
	}
}

// collectLeftovers drains the queue after the pipeline and folds the events
// into the report for the presentation collaborators.
func (g *Game) collectLeftovers(report *TurnReport) {
	leftovers := g.world.DrainEvents()
	g.combatState.Observe(leftovers)

	for _, ev := range leftovers {
		report.Events = append(report.Events, ev)
		switch e := ev.(type) {
		case domain.Message:
			report.Messages = append(report.Messages, e.Text)
		case domain.EntityDied:
			if e.EID == g.playerID {
				report.PlayerDied = true
			}
		case domain.DescendRequested:
			report.Descended = true
		}
	}

	// Observing the leftovers may close an engagement; deliver that too.
	for _, ev := range g.world.DrainEvents() {
		report.Events = append(report.Events, ev)
	}
}

// World exposes the entity store to the presentation boundary.
func (g *Game) World() *domain.World { return g.world }

// Grid exposes the current floor's tiles.
func (g *Game) Grid() dungeon.Grid { return g.layout.Grid }

// PlayerID identifies the player entity.
func (g *Game) PlayerID() domain.EntityID { return g.playerID }

// Floor is the 1-based depth of the current floor.
func (g *Game) Floor() int { return g.floor }

// Seed is the seed this run was created with.
func (g *Game) Seed() int64 { return g.cfg.Seed }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
