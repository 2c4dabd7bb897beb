package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
	"github.com/gridforge/engine/internal/factory"
)

const testTemplates = `
templates:
  crate:
    tags: [obstacle]
    components:
      transform: {}
      collider: {shape: rect, width: 50, height: 50}

  drone:
    tags: [mob]
    components:
      transform: {}
      velocity: {dx: 10, dy: 0}
      collider: {shape: circle, radius: 12, layer: 2, mask: 1}
      health: {max: 3}
      script:
        behavior: patrol
        props: {speed: 40}
      lifetime: {seconds: 60}
`

func writeTemplates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadTestFactory(t *testing.T) *factory.Factory {
	t.Helper()
	f, err := factory.Load(writeTemplates(t, testTemplates), zap.NewNop())
	require.NoError(t, err)
	return f
}

func TestLoadListsTemplates(t *testing.T) {
	f := loadTestFactory(t)
	assert.Equal(t, []string{"crate", "drone"}, f.Names())
}

func TestSpawnBuildsEntityAtPosition(t *testing.T) {
	f := loadTestFactory(t)

	e, err := f.Spawn("drone", 30, 40)
	require.NoError(t, err)

	assert.True(t, e.HasTag("mob"))
	tc, ok := e.Component(ecs.TypeTransform)
	require.True(t, ok)
	transform := tc.(*component.Transform)
	assert.Equal(t, 30.0, transform.X)
	assert.Equal(t, 40.0, transform.Y)

	cc, ok := e.Component(ecs.TypeCollider)
	require.True(t, ok)
	col := cc.(*component.Collider)
	assert.Equal(t, component.ShapeCircle, col.Shape)
	assert.Equal(t, 12.0, col.Radius)
	assert.Equal(t, uint32(2), col.Layer)
	assert.Equal(t, uint32(1), col.Mask)

	assert.True(t, e.HasComponent(ecs.TypeHealth))
	assert.True(t, e.HasComponent(ecs.TypeScript))
	assert.True(t, e.HasComponent(ecs.TypeLifetime))
}

func TestSpawnedEntitiesDoNotShareState(t *testing.T) {
	f := loadTestFactory(t)

	first, err := f.Spawn("drone", 0, 0)
	require.NoError(t, err)
	second, err := f.Spawn("drone", 0, 0)
	require.NoError(t, err)

	sc, _ := first.Component(ecs.TypeScript)
	sc.(*component.Script).Props["speed"] = 999

	otherSc, _ := second.Component(ecs.TypeScript)
	assert.Equal(t, 40.0, otherSc.(*component.Script).Props["speed"],
		"spawned entities must not alias template props")

	// Components are owned by their own entity, never by the template.
	cc, _ := first.Component(ecs.TypeCollider)
	assert.Same(t, first, cc.(*component.Collider).Owner())
}

func TestSpawnUnknownTemplate(t *testing.T) {
	f := loadTestFactory(t)

	_, err := f.Spawn("dragon", 0, 0)
	assert.ErrorIs(t, err, factory.ErrUnknownTemplate)
}

func TestLoadRejectsBadTemplates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown shape", "templates:\n  bad:\n    components:\n      collider: {shape: hexagon}\n"},
		{"zero radius", "templates:\n  bad:\n    components:\n      collider: {shape: circle}\n"},
		{"zero rect", "templates:\n  bad:\n    components:\n      collider: {shape: rect, width: 10}\n"},
		{"missing behavior", "templates:\n  bad:\n    components:\n      script: {}\n"},
		{"negative health", "templates:\n  bad:\n    components:\n      health: {max: -1}\n"},
		{"zero lifetime", "templates:\n  bad:\n    components:\n      lifetime: {seconds: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.Load(writeTemplates(t, tt.yaml), zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := factory.Load(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())
	assert.Error(t, err)
}
