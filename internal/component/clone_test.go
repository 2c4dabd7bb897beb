package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

func TestCloneIsDetached(t *testing.T) {
	owner := ecs.NewEntity()
	original := component.NewTransform(10, 20)
	owner.AddComponent(original)
	require.Same(t, owner, original.Owner())

	clone := original.Clone()

	assert.Nil(t, clone.Owner())
	assert.Same(t, owner, original.Owner(), "cloning must not detach the original")
}

func TestTransformCloneIsIndependent(t *testing.T) {
	original := component.NewTransform(10, 20)
	clone := original.Clone().(*component.Transform)

	original.Translate(5, 5)

	assert.Equal(t, 10.0, clone.X)
	assert.Equal(t, 20.0, clone.Y)
}

func TestScriptCloneDeepCopiesProps(t *testing.T) {
	original := component.NewScript("patrol")
	original.Props["speed"] = 40

	clone := original.Clone().(*component.Script)

	original.Props["speed"] = 99
	original.Props["range"] = 1

	assert.Equal(t, 40.0, clone.Props["speed"])
	_, leaked := clone.Props["range"]
	assert.False(t, leaked, "clone must not share the props map")
	assert.Equal(t, "patrol", clone.Behavior)
}

func TestColliderCloneKeepsGeometry(t *testing.T) {
	original := component.NewRectCollider(50, 30)
	original.OffsetX = 5
	original.Layer = 4
	original.Mask = 8

	clone := original.Clone().(*component.Collider)
	original.Width = 100

	assert.Equal(t, 50.0, clone.Width)
	assert.Equal(t, 30.0, clone.Height)
	assert.Equal(t, 5.0, clone.OffsetX)
	assert.Equal(t, uint32(4), clone.Layer)
	assert.Equal(t, uint32(8), clone.Mask)
}

func TestColliderDefaults(t *testing.T) {
	// A zero-valued collider participates on layer 1 and collides with all.
	var c component.Collider
	assert.Equal(t, uint32(1), c.EffectiveLayer())
	assert.Equal(t, uint32(0xFFFFFFFF), c.EffectiveMask())

	circle := component.NewCircleCollider(10)
	assert.Equal(t, uint32(1), circle.EffectiveLayer())
	assert.Equal(t, uint32(0xFFFFFFFF), circle.EffectiveMask())
}

func TestHealthDamageClampsAtZero(t *testing.T) {
	h := component.NewHealth(3)

	assert.True(t, h.Damage(2))
	assert.Equal(t, 1, h.Current)
	assert.False(t, h.Damage(5))
	assert.Equal(t, 0, h.Current)
}
