package ammo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttu/skirmish-sim/ammo"
	"github.com/ttu/skirmish-sim/ecs"
)

func baseAmmo() ecs.AmmoComponent {
	return ecs.AmmoComponent{Slots: []ecs.AmmoSlot{
		{AmmoType: "arrow", Quantity: 1, MaxQuantity: 20},
		{AmmoType: "bolt", Quantity: 5, MaxQuantity: 20},
	}}
}

func TestConsumeAmmoDecrements(t *testing.T) {
	a, ok := ammo.ConsumeAmmo(baseAmmo())
	assert.True(t, ok)
	assert.Equal(t, 0, a.Slots[0].Quantity)
}

func TestConsumeAmmoEmptySlotFails(t *testing.T) {
	a := baseAmmo()
	a.Slots[0].Quantity = 0
	_, ok := ammo.ConsumeAmmo(a)
	assert.False(t, ok)
}

func TestSwitchAmmoSlotRejectsOutOfRange(t *testing.T) {
	_, ok := ammo.SwitchAmmoSlot(baseAmmo(), 5)
	assert.False(t, ok)
	a, ok := ammo.SwitchAmmoSlot(baseAmmo(), 1)
	assert.True(t, ok)
	assert.Equal(t, 1, a.CurrentSlot)
}

func TestAutoSwitchIfEmptySwitchesToFirstNonEmpty(t *testing.T) {
	a := baseAmmo()
	a.Slots[0].Quantity = 0
	a, switched := ammo.AutoSwitchIfEmpty(a)
	assert.True(t, switched)
	assert.Equal(t, 1, a.CurrentSlot)
}

func TestAutoSwitchIfEmptyNoOpWhenCurrentHasAmmo(t *testing.T) {
	_, switched := ammo.AutoSwitchIfEmpty(baseAmmo())
	assert.False(t, switched)
}

func TestAutoSwitchIfEmptyNoSlotsLeft(t *testing.T) {
	a := baseAmmo()
	a.Slots[0].Quantity = 0
	a.Slots[1].Quantity = 0
	_, switched := ammo.AutoSwitchIfEmpty(a)
	assert.False(t, switched)
}

func TestGetTotalAmmoAndHasAmmo(t *testing.T) {
	assert.Equal(t, 6, ammo.GetTotalAmmo(baseAmmo()))
	assert.True(t, ammo.HasAmmo(baseAmmo()))

	empty := ecs.AmmoComponent{Slots: []ecs.AmmoSlot{{Quantity: 0}}}
	assert.False(t, ammo.HasAmmo(empty))
}
