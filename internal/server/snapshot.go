package server

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/internal/engine"
	"github.com/ESikich/TopDownRPG/pkg/api"
)

// BuildResponse renders a per-client snapshot: explored tiles with fog of
// war, entities inside the player's current field of view, the character
// sheet and the turn's log lines.
func BuildResponse(g *engine.Game, report *engine.TurnReport) api.ServerResponse {
	w := g.World()
	grid := g.Grid()
	playerID := g.PlayerID()

	resp := api.ServerResponse{
		Type:       "UPDATE",
		Floor:      g.Floor(),
		MyEntityID: uint64(playerID),
		Logs:       report.Messages,
	}
	if len(grid) > 0 {
		resp.Grid = api.GridMeta{Width: len(grid[0]), Height: len(grid)}
	}

	vis, hasVis := w.VisibleOf(playerID)
	if !hasVis {
		return resp
	}

	for p := range vis.SeenTiles {
		tile := grid[p.Y][p.X]
		resp.Map = append(resp.Map, api.TileView{
			X:          p.X,
			Y:          p.Y,
			Glyph:      tile.Glyph,
			Color:      tile.Color,
			Walkable:   tile.Walkable,
			IsVisible:  vis.VisibleTiles[p],
			IsExplored: true,
		})
	}

	for _, id := range w.Query(domain.KindPosition, domain.KindDescriptor) {
		pos, _ := w.PositionOf(id)
		if !vis.VisibleTiles[pos.Point()] {
			continue
		}
		desc, _ := w.DescriptorOf(id)

		view := api.EntityView{
			ID:    uint64(id),
			Name:  desc.Name,
			Glyph: desc.Glyph,
			Color: desc.Color,
			X:     pos.X,
			Y:     pos.Y,
		}
		if hp, ok := w.HealthOf(id); ok {
			view.HP = hp.HP
			view.MaxHP = hp.MaxHP
			view.IsDead = hp.IsDead
		}
		resp.Entities = append(resp.Entities, view)
	}

	resp.Player = buildPlayerView(w, playerID)
	return resp
}

func buildPlayerView(w *domain.World, playerID domain.EntityID) *api.PlayerView {
	view := &api.PlayerView{}

	if hp, ok := w.HealthOf(playerID); ok {
		view.HP = hp.HP
		view.MaxHP = hp.MaxHP
	}
	if book, ok := w.SpellbookOf(playerID); ok {
		view.MP = book.MP
		view.MaxMP = book.MaxMP
		view.Spells = book.Known
	}
	if inv, ok := w.InventoryOf(playerID); ok {
		for _, itemID := range inv.Items {
			view.Inventory = append(view.Inventory, itemView(w, itemID))
		}
	}
	if eq, ok := w.EquipmentOf(playerID); ok && len(eq.Slots) > 0 {
		view.Equipment = make(map[string]api.ItemView, len(eq.Slots))
		for slot, itemID := range eq.Slots {
			view.Equipment[slot] = itemView(w, itemID)
		}
	}
	return view
}

func itemView(w *domain.World, id domain.EntityID) api.ItemView {
	view := api.ItemView{ID: uint64(id), Name: w.NameOf(id)}
	if desc, ok := w.DescriptorOf(id); ok {
		view.Glyph = desc.Glyph
		view.Color = desc.Color
	}
	return view
}
