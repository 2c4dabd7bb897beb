package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

func TestEntityIDsAreUnique(t *testing.T) {
	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < 100; i++ {
		e := ecs.NewEntity()
		assert.False(t, seen[e.ID()])
		seen[e.ID()] = true
	}
}

func TestAddComponentSetsOwner(t *testing.T) {
	e := ecs.NewEntity()
	h := component.NewHealth(10)

	e.AddComponent(h)

	assert.Same(t, e, h.Owner())
	got, ok := e.Component(ecs.TypeHealth)
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.True(t, e.HasComponent(ecs.TypeHealth))
}

func TestAddComponentReplacesSameKind(t *testing.T) {
	e := ecs.NewEntity()
	first := component.NewHealth(10)
	second := component.NewHealth(20)

	e.AddComponent(first)
	e.AddComponent(second)

	assert.True(t, e.HasComponent(ecs.TypeHealth))
	got, ok := e.Component(ecs.TypeHealth)
	require.True(t, ok)
	assert.Same(t, second, got)

	// The replaced component is detached, the newcomer owned.
	assert.Nil(t, first.Owner())
	assert.Same(t, e, second.Owner())
	assert.Len(t, e.Components(), 1)
}

func TestRemoveComponentClearsOwner(t *testing.T) {
	e := ecs.NewEntity()
	h := component.NewHealth(10)
	e.AddComponent(h)

	e.RemoveComponent(ecs.TypeHealth)

	assert.Nil(t, h.Owner())
	assert.False(t, e.HasComponent(ecs.TypeHealth))

	// Removing an absent kind is a no-op.
	e.RemoveComponent(ecs.TypeHealth)
	e.RemoveComponent(ecs.TypeCollider)
}

func TestComponentsSnapshot(t *testing.T) {
	e := ecs.NewEntity()
	e.AddComponent(component.NewHealth(5))
	e.AddComponent(component.NewTransform(1, 2))
	e.AddComponent(component.NewVelocity(3, 4))

	assert.Len(t, e.Components(), 3)
}

func TestTagsAreIdempotent(t *testing.T) {
	e := ecs.NewEntity()

	e.AddTag("mob")
	e.AddTag("mob")
	assert.True(t, e.HasTag("mob"))
	assert.Len(t, e.Tags(), 1)

	e.RemoveTag("mob")
	assert.False(t, e.HasTag("mob"))
	e.RemoveTag("mob")
	e.RemoveTag("never-added")
}

func TestActiveFlag(t *testing.T) {
	e := ecs.NewEntity()
	assert.True(t, e.Active())

	e.SetActive(false)
	assert.False(t, e.Active())
	e.SetActive(true)
	assert.True(t, e.Active())
}
