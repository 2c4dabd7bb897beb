package factory

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gridforge/engine/internal/component"
	"github.com/gridforge/engine/internal/ecs"
)

// ErrUnknownTemplate is returned by Spawn for a name the template file never
// declared.
var ErrUnknownTemplate = errors.New("factory: unknown template")

// Factory assembles entities from named YAML archetype templates. It is a
// collaborator of the ECS core: it only uses AddComponent/AddTag and hands
// finished entities to World.AddEntity. Spawning clones the template's
// components so spawned entities never alias template state.
type Factory struct {
	templates map[string]*template
	log       *zap.Logger
}

type template struct {
	tags       []string
	components []ecs.Component
}

type fileSpec struct {
	Templates map[string]templateSpec `yaml:"templates"`
}

type templateSpec struct {
	Tags       []string      `yaml:"tags"`
	Components componentSpec `yaml:"components"`
}

type componentSpec struct {
	Transform *transformSpec `yaml:"transform"`
	Velocity  *velocitySpec  `yaml:"velocity"`
	Collider  *colliderSpec  `yaml:"collider"`
	Health    *healthSpec    `yaml:"health"`
	Script    *scriptSpec    `yaml:"script"`
	Lifetime  *lifetimeSpec  `yaml:"lifetime"`
}

type transformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type velocitySpec struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

type colliderSpec struct {
	Shape   string  `yaml:"shape"`
	Radius  float64 `yaml:"radius"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Layer   uint32  `yaml:"layer"`
	Mask    uint32  `yaml:"mask"`
}

type healthSpec struct {
	Max int `yaml:"max"`
}

type scriptSpec struct {
	Behavior string             `yaml:"behavior"`
	Props    map[string]float64 `yaml:"props"`
}

type lifetimeSpec struct {
	Seconds float64 `yaml:"seconds"`
}

// Load reads and validates a template file.
func Load(path string, log *zap.Logger) (*Factory, error) {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse templates %s: %w", path, err)
	}

	f := &Factory{templates: make(map[string]*template, len(spec.Templates)), log: log}
	for name, ts := range spec.Templates {
		tpl, err := buildTemplate(ts)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		f.templates[name] = tpl
		log.Debug("loaded entity template", zap.String("name", name))
	}
	return f, nil
}

func buildTemplate(ts templateSpec) (*template, error) {
	tpl := &template{tags: ts.Tags}
	cs := ts.Components

	if cs.Transform != nil {
		tpl.components = append(tpl.components, component.NewTransform(cs.Transform.X, cs.Transform.Y))
	}
	if cs.Velocity != nil {
		tpl.components = append(tpl.components, component.NewVelocity(cs.Velocity.DX, cs.Velocity.DY))
	}
	if cs.Collider != nil {
		col, err := buildCollider(cs.Collider)
		if err != nil {
			return nil, err
		}
		tpl.components = append(tpl.components, col)
	}
	if cs.Health != nil {
		if cs.Health.Max <= 0 {
			return nil, fmt.Errorf("health max must be positive, got %d", cs.Health.Max)
		}
		tpl.components = append(tpl.components, component.NewHealth(cs.Health.Max))
	}
	if cs.Script != nil {
		if cs.Script.Behavior == "" {
			return nil, errors.New("script requires a behavior name")
		}
		s := component.NewScript(cs.Script.Behavior)
		for k, v := range cs.Script.Props {
			s.Props[k] = v
		}
		tpl.components = append(tpl.components, s)
	}
	if cs.Lifetime != nil {
		if cs.Lifetime.Seconds <= 0 {
			return nil, fmt.Errorf("lifetime must be positive, got %v", cs.Lifetime.Seconds)
		}
		tpl.components = append(tpl.components, component.NewLifetime(cs.Lifetime.Seconds))
	}
	return tpl, nil
}

func buildCollider(cs *colliderSpec) (*component.Collider, error) {
	var col *component.Collider
	switch cs.Shape {
	case "circle":
		if cs.Radius <= 0 {
			return nil, fmt.Errorf("circle collider radius must be positive, got %v", cs.Radius)
		}
		col = component.NewCircleCollider(cs.Radius)
	case "rect":
		if cs.Width <= 0 || cs.Height <= 0 {
			return nil, fmt.Errorf("rect collider needs positive width/height, got %vx%v", cs.Width, cs.Height)
		}
		col = component.NewRectCollider(cs.Width, cs.Height)
	default:
		return nil, fmt.Errorf("unknown collider shape %q", cs.Shape)
	}
	col.OffsetX, col.OffsetY = cs.OffsetX, cs.OffsetY
	if cs.Layer != 0 {
		col.Layer = cs.Layer
	}
	if cs.Mask != 0 {
		col.Mask = cs.Mask
	}
	return col, nil
}

// Names lists the loaded template names, sorted.
func (f *Factory) Names() []string {
	out := make([]string, 0, len(f.templates))
	for name := range f.templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Spawn builds a fresh entity from the named template at (x, y). Template
// components are cloned, never shared.
func (f *Factory) Spawn(name string, x, y float64) (*ecs.Entity, error) {
	tpl, ok := f.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	e := ecs.NewEntity()
	for _, tag := range tpl.tags {
		e.AddTag(tag)
	}
	for _, c := range tpl.components {
		e.AddComponent(c.Clone())
	}
	if tc, ok := e.Component(ecs.TypeTransform); ok {
		t := tc.(*component.Transform)
		t.X, t.Y = x, y
	} else {
		e.AddComponent(component.NewTransform(x, y))
	}
	return e, nil
}
