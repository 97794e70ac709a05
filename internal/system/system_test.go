package system

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/component"
	"github.com/l1jgo/delve/internal/core/ecs"
	"github.com/l1jgo/delve/internal/core/event"
	"github.com/l1jgo/delve/internal/core/rng"
	"github.com/l1jgo/delve/internal/data"
	"github.com/l1jgo/delve/internal/scripting"
	"github.com/l1jgo/delve/internal/sim"
	"github.com/l1jgo/delve/internal/world"
)

func newTestContext(t *testing.T, opts sim.Options) *sim.Context {
	t.Helper()
	scripts, err := scripting.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("scripts: %v", err)
	}
	t.Cleanup(scripts.Close)
	spawns, err := data.DefaultSpawnTable()
	if err != nil {
		t.Fatalf("spawns: %v", err)
	}
	if opts.MapWidth == 0 {
		opts.MapWidth, opts.MapHeight, opts.ViewRange, opts.RevealMS = 20, 20, 8, 1000
	}
	ctx := sim.New(rng.New(1), scripts, spawns, opts, zap.NewNop())
	m := world.NewMap(opts.MapWidth, opts.MapHeight, 1)
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			m.Tiles[m.Index(x, y)] = world.Floor
		}
	}
	m.PopulateBlocked()
	ctx.Map = m
	return ctx
}

func addPlayer(ctx *sim.Context, x, y int) ecs.EntityID {
	c := ctx.C
	id := ctx.World.CreateEntity()
	c.Position.Set(id, &component.Position{X: x, Y: y})
	c.Player.Set(id, &component.Player{})
	c.Name.Set(id, &component.Name{Name: "Player"})
	c.CombatStats.Set(id, &component.CombatStats{MaxHP: 30, HP: 30, Defense: 2, Power: 5})
	c.Viewshed.Set(id, &component.Viewshed{Range: 8, Dirty: true})
	ctx.Player = id
	ctx.PlayerPos = world.Point{X: x, Y: y}
	return id
}

func addMonster(ctx *sim.Context, x, y int, kind string) ecs.EntityID {
	c := ctx.C
	id := ctx.World.CreateEntity()
	c.Position.Set(id, &component.Position{X: x, Y: y})
	c.Monster.Set(id, &component.Monster{Kind: kind})
	c.Name.Set(id, &component.Name{Name: kind})
	c.CombatStats.Set(id, &component.CombatStats{MaxHP: 16, HP: 16, Defense: 1, Power: 4})
	c.Viewshed.Set(id, &component.Viewshed{Range: 8, Dirty: true})
	c.BlocksTile.Set(id, &component.BlocksTile{})
	return id
}

func addCarried(ctx *sim.Context, owner ecs.EntityID, name string) ecs.EntityID {
	id := ctx.World.CreateEntity()
	ctx.C.Item.Set(id, &component.Item{})
	ctx.C.Name.Set(id, &component.Name{Name: name})
	ctx.C.InBackpack.Set(id, &component.InBackpack{Owner: owner})
	return id
}

func runPass(ctx *sim.Context, turn sim.Turn) {
	ctx.Turn = turn
	NewPipeline(ctx).Tick(0)
}

func logContains(ctx *sim.Context, sub string) bool {
	for _, e := range ctx.Log.Entries {
		if strings.Contains(e, sub) {
			return true
		}
	}
	return false
}

func countLog(ctx *sim.Context, sub string) int {
	n := 0
	for _, e := range ctx.Log.Entries {
		if strings.Contains(e, sub) {
			n++
		}
	}
	return n
}

func TestMeleeDamageMonotonic(t *testing.T) {
	for power := 0; power <= 12; power++ {
		for def := 0; def <= 12; def++ {
			d := MeleeDamage(power, 1, def, 1)
			if d < 0 {
				t.Fatalf("negative damage for power %d def %d", power, def)
			}
			if up := MeleeDamage(power+1, 1, def, 1); up < d {
				t.Fatalf("more power lowered damage: %d -> %d", d, up)
			}
			if def > 0 {
				if down := MeleeDamage(power, 1, def-1, 1); down < d {
					t.Fatalf("less defense lowered damage: %d -> %d", d, down)
				}
			}
		}
	}
	if got := MeleeDamage(5, 0, 2, 0); got != 3 {
		t.Fatalf("MeleeDamage(5,0,2,0) = %d", got)
	}
}

func TestMeleeUsesEquipmentAndHunger(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	orc := addMonster(ctx, 6, 5, "Orc")

	sword := addCarried(ctx, player, "Longsword")
	c.InBackpack.Remove(sword)
	c.Equipped.Set(sword, &component.Equipped{Owner: player, Slot: component.SlotMelee})
	c.MeleePowerBonus.Set(sword, &component.MeleePowerBonus{Power: 4, Kind: component.Slash})
	shield := addCarried(ctx, orc, "Shield")
	c.InBackpack.Remove(shield)
	c.Equipped.Set(shield, &component.Equipped{Owner: orc, Slot: component.SlotShield})
	c.DefenseBonus.Set(shield, &component.DefenseBonus{Amount: 1})
	c.HungerClock.Set(player, &component.HungerClock{State: component.WellFed, Duration: 20})

	var cues []event.Cue
	event.Subscribe(ctx.Bus, func(cue event.Cue) { cues = append(cues, cue) })

	c.WantsToMelee.Set(player, &component.WantsToMelee{Target: orc})
	runPass(ctx, sim.TurnPlayer)

	// 5 + 4 + 1 (well fed) - (1 + 1)
	if hp := c.CombatStats.MustGet(orc).HP; hp != 16-8 {
		t.Fatalf("orc hp = %d, want 8", hp)
	}
	if !logContains(ctx, "Player hits Unnamed Orc, for 8 hp. (5(+5)-1(+1)") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
	if c.WantsToMelee.Len() != 0 {
		t.Fatal("melee intents not drained")
	}
	if len(cues) != 1 || cues[0].Kind != event.CueAttackLanded || cues[0].Variant != "slash" {
		t.Fatalf("cues = %+v", cues)
	}
}

func TestMeleeUnableToHurt(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	orc := addMonster(ctx, 6, 5, "Orc")
	ctx.C.CombatStats.MustGet(orc).Defense = 10

	ctx.C.WantsToMelee.Set(player, &component.WantsToMelee{Target: orc})
	runPass(ctx, sim.TurnPlayer)

	if !logContains(ctx, "Player is unable to hurt Unnamed Orc") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
	if hp := ctx.C.CombatStats.MustGet(orc).HP; hp != 16 {
		t.Fatalf("orc hp = %d", hp)
	}
}

func TestDeathRemovesMonsterButNotPlayer(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	goblin := addMonster(ctx, 10, 10, "Goblin")

	var died []ecs.EntityID
	event.Subscribe(ctx.Bus, func(cue event.Cue) {
		if cue.Kind == event.CueEntityDied {
			died = append(died, cue.Entity)
		}
	})

	ctx.C.AddDamage(goblin, 20)
	runPass(ctx, sim.TurnNone)
	if ctx.World.Alive(goblin) {
		t.Fatal("dead goblin still alive after the pass")
	}
	if !logContains(ctx, "Unnamed Goblin is dead") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
	if len(died) != 1 || died[0] != goblin {
		t.Fatalf("died cues = %v", died)
	}
	if !ctx.Map.Bloodstains.Has(ctx.Map.Index(10, 10)) {
		t.Fatal("no stain under the goblin")
	}

	ctx.C.AddDamage(player, 40)
	runPass(ctx, sim.TurnNone)
	if !ctx.World.Alive(player) {
		t.Fatal("player destroyed")
	}
	if !ctx.Requests.GameOver {
		t.Fatal("game over not requested")
	}
	if countLog(ctx, "You are dead :(") != 1 {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestConfusionSkipsExactlyNTurns(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	orc := addMonster(ctx, 6, 5, "Orc")
	ctx.C.Confusion.Set(orc, &component.Confusion{Turns: 3})

	for turn := 1; turn <= 3; turn++ {
		runPass(ctx, sim.TurnMonster)
		if hp := ctx.C.CombatStats.MustGet(player).HP; hp != 30 {
			t.Fatalf("turn %d: confused orc attacked (hp %d)", turn, hp)
		}
		if turn < 3 && !ctx.C.Confusion.Has(orc) {
			t.Fatalf("turn %d: confusion removed early", turn)
		}
	}
	if ctx.C.Confusion.Has(orc) {
		t.Fatal("confusion still present after last skipped turn")
	}

	runPass(ctx, sim.TurnMonster)
	if hp := ctx.C.CombatStats.MustGet(player).HP; hp != 28 {
		t.Fatalf("orc did not attack after confusion wore off (hp %d)", hp)
	}
}

func TestMonsterAdjacentAttackEndToEnd(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	addMonster(ctx, 6, 6, "Orc")

	runPass(ctx, sim.TurnMonster)

	if !logContains(ctx, "Unnamed Orc hits Player, for 2 hp.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
	if hp := ctx.C.CombatStats.MustGet(player).HP; hp != 28 {
		t.Fatalf("player hp = %d", hp)
	}
	if ctx.C.WantsToMelee.Len() != 0 || ctx.C.SufferDamage.Len() != 0 {
		t.Fatal("intents or damage left over after the pass")
	}
}

func TestMonstersIdleOutsideMonsterTurn(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	addMonster(ctx, 6, 5, "Orc")

	runPass(ctx, sim.TurnPlayer)
	if hp := ctx.C.CombatStats.MustGet(player).HP; hp != 30 {
		t.Fatalf("monster acted on the player turn (hp %d)", hp)
	}
}

func TestAllAdjacentMonstersAttack(t *testing.T) {
	tests := []struct {
		name   string
		single bool
		hits   int
	}{
		{"every monster acts", false, 2},
		{"legacy single attacker", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, sim.Options{MapWidth: 20, MapHeight: 20, ViewRange: 8, SingleAttacker: tt.single})
			addPlayer(ctx, 5, 5)
			addMonster(ctx, 6, 5, "Orc")
			addMonster(ctx, 4, 5, "Goblin")

			runPass(ctx, sim.TurnMonster)
			if got := countLog(ctx, "hits Player"); got != tt.hits {
				t.Fatalf("hits = %d, want %d (log %v)", got, tt.hits, ctx.Log.Entries)
			}
		})
	}
}

func TestMonsterChasesVisiblePlayer(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	addPlayer(ctx, 3, 3)
	orc := addMonster(ctx, 8, 3, "Orc")

	var alerted int
	event.Subscribe(ctx.Bus, func(cue event.Cue) {
		if cue.Kind == event.CueMonsterAlerted {
			alerted++
		}
	})

	runPass(ctx, sim.TurnMonster)
	pos := ctx.C.Position.MustGet(orc)
	if pos.X != 7 || pos.Y != 3 {
		t.Fatalf("orc at (%d,%d), want (7,3)", pos.X, pos.Y)
	}
	if !ctx.C.Monster.MustGet(orc).SeenPlayer {
		t.Fatal("seen_player not set")
	}
	if !ctx.Map.Blocked[ctx.Map.Index(7, 3)] || ctx.Map.Blocked[ctx.Map.Index(8, 3)] {
		t.Fatal("blocked grid not updated for the move")
	}

	runPass(ctx, sim.TurnMonster)
	if alerted != 1 {
		t.Fatalf("alert cues = %d, want 1", alerted)
	}
}

func TestEquipIsExclusivePerSlot(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)

	dagger := addCarried(ctx, player, "Dagger")
	c.InBackpack.Remove(dagger)
	c.Equippable.Set(dagger, &component.Equippable{Slot: component.SlotMelee})
	c.Equipped.Set(dagger, &component.Equipped{Owner: player, Slot: component.SlotMelee})

	shield := addCarried(ctx, player, "Shield")
	c.InBackpack.Remove(shield)
	c.Equippable.Set(shield, &component.Equippable{Slot: component.SlotShield})
	c.Equipped.Set(shield, &component.Equipped{Owner: player, Slot: component.SlotShield})

	sword := addCarried(ctx, player, "Longsword")
	c.Equippable.Set(sword, &component.Equippable{Slot: component.SlotMelee})

	c.WantsToUseItem.Set(player, &component.WantsToUseItem{Item: sword})
	runPass(ctx, sim.TurnPlayer)

	melee := 0
	c.Equipped.Each(func(_ ecs.EntityID, eq *component.Equipped) {
		if eq.Owner == player && eq.Slot == component.SlotMelee {
			melee++
		}
	})
	if melee != 1 {
		t.Fatalf("%d items in the melee slot", melee)
	}
	if eq, ok := c.Equipped.Get(sword); !ok || eq.Owner != player {
		t.Fatal("longsword not equipped")
	}
	if c.InBackpack.Has(sword) {
		t.Fatal("equipped longsword still in backpack")
	}
	if bp, ok := c.InBackpack.Get(dagger); !ok || bp.Owner != player || c.Equipped.Has(dagger) {
		t.Fatal("dagger not returned to the backpack")
	}
	if !c.Equipped.Has(shield) {
		t.Fatal("shield in another slot was unequipped")
	}
	if !ctx.World.Alive(sword) {
		t.Fatal("equipment consumed")
	}
	if !logContains(ctx, "You unequip Dagger.") || !logContains(ctx, "You equip Longsword.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestRemoveReturnsItemToBackpack(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	shield := addCarried(ctx, player, "Shield")
	c.InBackpack.Remove(shield)
	c.Equipped.Set(shield, &component.Equipped{Owner: player, Slot: component.SlotShield})

	c.WantsToRemoveItem.Set(player, &component.WantsToRemoveItem{Item: shield})
	runPass(ctx, sim.TurnPlayer)

	if c.Equipped.Has(shield) {
		t.Fatal("still equipped")
	}
	if bp, ok := c.InBackpack.Get(shield); !ok || bp.Owner != player {
		t.Fatal("not in backpack")
	}
}

func TestPickupAndDrop(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	potion := ctx.World.CreateEntity()
	c.Item.Set(potion, &component.Item{})
	c.Name.Set(potion, &component.Name{Name: "Health Potion"})
	c.Position.Set(potion, &component.Position{X: 5, Y: 5})

	c.WantsToPickupItem.Set(player, &component.WantsToPickupItem{CollectedBy: player, Item: potion})
	runPass(ctx, sim.TurnPlayer)
	if c.Position.Has(potion) {
		t.Fatal("picked-up item still on the map")
	}
	if bp, ok := c.InBackpack.Get(potion); !ok || bp.Owner != player {
		t.Fatal("item not in backpack")
	}

	c.Position.MustGet(player).X = 7
	c.WantsToDropItem.Set(player, &component.WantsToDropItem{Item: potion})
	runPass(ctx, sim.TurnPlayer)
	pos, ok := c.Position.Get(potion)
	if !ok || pos.X != 7 || pos.Y != 5 || c.InBackpack.Has(potion) {
		t.Fatalf("drop failed: pos=%v backpack=%v", pos, c.InBackpack.Has(potion))
	}
	if !logContains(ctx, "You pick up the Health Potion.") || !logContains(ctx, "You drop the Health Potion.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestHealingClampsAndConsumes(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	c.CombatStats.MustGet(player).HP = 25
	potion := addCarried(ctx, player, "Health Potion")
	c.Consumable.Set(potion, &component.Consumable{})
	c.ProvidesHealing.Set(potion, &component.ProvidesHealing{Amount: 8})

	c.WantsToUseItem.Set(player, &component.WantsToUseItem{Item: potion})
	runPass(ctx, sim.TurnPlayer)

	if hp := c.CombatStats.MustGet(player).HP; hp != 30 {
		t.Fatalf("hp = %d, want clamp to 30", hp)
	}
	if ctx.World.Alive(potion) {
		t.Fatal("consumable survived use")
	}
	if !logContains(ctx, "You drink the Health Potion, healing 8 hp.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestAreaOfEffectTargets(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 3, 3)
	near := addMonster(ctx, 10, 10, "Orc")
	edge := addMonster(ctx, 12, 10, "Goblin")
	far := addMonster(ctx, 16, 10, "Goblin")

	scroll := addCarried(ctx, player, "Fireball Scroll")
	c.Consumable.Set(scroll, &component.Consumable{})
	c.Ranged.Set(scroll, &component.Ranged{Range: 6})
	c.InflictsDamage.Set(scroll, &component.InflictsDamage{Amount: 20})
	c.AreaOfEffect.Set(scroll, &component.AreaOfEffect{Radius: 3})

	c.WantsToUseItem.Set(player, &component.WantsToUseItem{Item: scroll, Target: &world.Point{X: 10, Y: 10}})
	runPass(ctx, sim.TurnPlayer)

	for _, id := range []ecs.EntityID{near, edge} {
		sd, ok := c.SufferDamage.Get(id)
		if !ok || sd.Total() != 20 {
			t.Fatalf("%s: damage = %v", id, sd)
		}
	}
	if c.SufferDamage.Has(far) || c.SufferDamage.Has(player) {
		t.Fatal("blast reached outside its radius")
	}

	runPass(ctx, sim.TurnNone)
	if ctx.World.Alive(near) || ctx.World.Alive(edge) || !ctx.World.Alive(far) {
		t.Fatal("wrong entities died")
	}
}

func TestConfusionScrollAppliesToTile(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 3, 3)
	orc := addMonster(ctx, 6, 3, "Orc")
	scroll := addCarried(ctx, player, "Confusion Scroll")
	c.Consumable.Set(scroll, &component.Consumable{})
	c.Confusion.Set(scroll, &component.Confusion{Turns: 4})

	c.WantsToUseItem.Set(player, &component.WantsToUseItem{Item: scroll, Target: &world.Point{X: 6, Y: 3}})
	runPass(ctx, sim.TurnPlayer)

	conf, ok := c.Confusion.Get(orc)
	if !ok || conf.Turns != 4 {
		t.Fatalf("confusion = %v", conf)
	}
	if !logContains(ctx, "You use Confusion Scroll on Unnamed Orc, confusing them.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestEntryTriggerFiresOnce(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 6, 5)
	trap := ctx.World.CreateEntity()
	c.Position.Set(trap, &component.Position{X: 6, Y: 5})
	c.Name.Set(trap, &component.Name{Name: "Bear Trap"})
	c.Hidden.Set(trap, &component.Hidden{})
	c.EntryTrigger.Set(trap, &component.EntryTrigger{})
	c.SingleActivation.Set(trap, &component.SingleActivation{})
	c.InflictsDamage.Set(trap, &component.InflictsDamage{Amount: 6})
	c.EntityMoved.Set(player, &component.EntityMoved{})

	var sprung int
	event.Subscribe(ctx.Bus, func(cue event.Cue) {
		if cue.Kind == event.CueTrapSprung {
			sprung++
		}
	})

	runPass(ctx, sim.TurnPlayer)

	if hp := c.CombatStats.MustGet(player).HP; hp != 24 {
		t.Fatalf("player hp = %d", hp)
	}
	if ctx.World.Alive(trap) {
		t.Fatal("single-activation trap not destroyed")
	}
	if c.EntityMoved.Len() != 0 {
		t.Fatal("moved markers not cleared")
	}
	if !logContains(ctx, "Bear Trap triggers!") || !logContains(ctx, "Player suffers 6 damage.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
	if sprung != 1 {
		t.Fatalf("trap cues = %d", sprung)
	}
}

func TestHungerTicksOnOwnersTurn(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	c.HungerClock.Set(player, &component.HungerClock{State: component.Normal, Duration: 1})

	runPass(ctx, sim.TurnMonster)
	if hc := c.HungerClock.MustGet(player); hc.State != component.Normal || hc.Duration != 1 {
		t.Fatalf("clock ticked on monster turn: %+v", hc)
	}

	runPass(ctx, sim.TurnPlayer)
	if hc := c.HungerClock.MustGet(player); hc.State != component.Hungry || hc.Duration != 200 {
		t.Fatalf("clock = %+v", hc)
	}
	if !logContains(ctx, "You are hungry.") {
		t.Fatalf("log = %v", ctx.Log.Entries)
	}
}

func TestStarvationHurts(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	c := ctx.C
	player := addPlayer(ctx, 5, 5)
	c.HungerClock.Set(player, &component.HungerClock{State: component.Starving, Duration: 1})

	runPass(ctx, sim.TurnPlayer)
	runPass(ctx, sim.TurnNone)
	if hp := c.CombatStats.MustGet(player).HP; hp != 29 {
		t.Fatalf("hp = %d, want 29", hp)
	}
}

func TestVisibilityMarksPlayerView(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	m := ctx.Map

	runPass(ctx, sim.TurnNone)
	vs := ctx.C.Viewshed.MustGet(player)
	if vs.Dirty || len(vs.Visible) == 0 {
		t.Fatalf("viewshed not recomputed: %+v", vs)
	}
	if !m.Visible[m.Index(5, 5)] || !m.Revealed[m.Index(8, 5)] {
		t.Fatal("player's tiles not marked")
	}
	if m.Visible[m.Index(18, 18)] {
		t.Fatal("tile beyond range visible")
	}

	ctx.C.Position.MustGet(player).X = 14
	vs.Dirty = true
	runPass(ctx, sim.TurnNone)
	if m.Visible[m.Index(5, 5)] {
		t.Fatal("old view still visible")
	}
	if !m.Revealed[m.Index(5, 5)] {
		t.Fatal("revealed tile forgotten")
	}
}

func TestHiddenEntitiesSpottedOnlyInView(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	addPlayer(ctx, 5, 5)
	c := ctx.C

	const perTile = 480
	hide := func(x, y int) []ecs.EntityID {
		out := make([]ecs.EntityID, 0, perTile)
		for i := 0; i < perTile; i++ {
			id := ctx.World.CreateEntity()
			c.Position.Set(id, &component.Position{X: x, Y: y})
			c.Name.Set(id, &component.Name{Name: "Bear Trap"})
			c.Hidden.Set(id, &component.Hidden{})
			out = append(out, id)
		}
		return out
	}
	near := hide(6, 5)
	far := hide(18, 18)

	runPass(ctx, sim.TurnNone)

	stillHidden := func(ids []ecs.EntityID) int {
		n := 0
		for _, id := range ids {
			if c.Hidden.Has(id) {
				n++
			}
		}
		return n
	}
	nearHidden := stillHidden(near)
	if nearHidden == perTile {
		t.Fatal("nothing spotted on a visible tile")
	}
	if nearHidden == 0 {
		t.Fatal("every hidden entity spotted at once; discovery should be a 1 in 24 roll")
	}
	if got := stillHidden(far); got != perTile {
		t.Fatalf("%d entities out of view were spotted", perTile-got)
	}
	if got := countLog(ctx, "You spotted a Bear Trap!"); got != perTile-nearHidden {
		t.Fatalf("spotted messages = %d, want %d", got, perTile-nearHidden)
	}
}

func TestMapIndexBlocking(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	addPlayer(ctx, 5, 5)
	orc := addMonster(ctx, 7, 7, "Orc")
	m := ctx.Map

	runPass(ctx, sim.TurnNone)
	if !m.Blocked[m.Index(7, 7)] {
		t.Fatal("monster tile not blocked")
	}
	if m.Blocked[m.Index(5, 5)] {
		t.Fatal("player tile blocked")
	}
	if occ := m.Occupants(7, 7); len(occ) != 1 || occ[0] != orc {
		t.Fatalf("occupants = %v", occ)
	}
	if !m.Blocked[m.Index(0, 0)] {
		t.Fatal("wall not blocked")
	}
}

func TestParticlesSpawnAndExpire(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	addPlayer(ctx, 5, 5)
	ctx.Particles.Request(3, 3, component.Red, component.Black, '!', 200)

	runPass(ctx, sim.TurnNone)
	if ctx.C.ParticleLifetime.Len() != 1 {
		t.Fatalf("particles = %d", ctx.C.ParticleLifetime.Len())
	}
	CullParticles(ctx, 100*time.Millisecond)
	if ctx.C.ParticleLifetime.Len() != 1 {
		t.Fatal("particle culled early")
	}
	CullParticles(ctx, 150*time.Millisecond)
	if ctx.C.ParticleLifetime.Len() != 0 {
		t.Fatal("expired particle kept")
	}
}

func TestMeleeOnDeadTargetPanics(t *testing.T) {
	ctx := newTestContext(t, sim.Options{})
	player := addPlayer(ctx, 5, 5)
	orc := addMonster(ctx, 6, 5, "Orc")
	ctx.World.MarkForDestruction(orc)
	ctx.World.FlushDestroyQueue()
	ctx.C.WantsToMelee.Set(player, &component.WantsToMelee{Target: orc})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	runPass(ctx, sim.TurnPlayer)
}
