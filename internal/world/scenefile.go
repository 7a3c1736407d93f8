package world

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat    = errors.New("unknown scene format")
	ErrUnknownComponent = errors.New("unknown component type")
)

// Format selects the encoding of a scene file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// --- File types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

type ObjectDef struct {
	Name       string         `json:"name" yaml:"name"`
	Tags       []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Inactive   bool           `json:"inactive,omitempty" yaml:"inactive,omitempty"`
	Position   [3]float32     `json:"position" yaml:"position"`
	Rotation   [3]float32     `json:"rotation" yaml:"rotation"`
	Scale      [3]float32     `json:"scale" yaml:"scale"`
	Components []ComponentDef `json:"components,omitempty" yaml:"components,omitempty"`
	Children   []ObjectDef    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ComponentDef is the union of every component's fields; Type says which
// apply.
type ComponentDef struct {
	Type string `json:"type" yaml:"type"`

	// colliders
	Radius     float32     `json:"radius,omitempty" yaml:"radius,omitempty"`
	Size       *[3]float32 `json:"size,omitempty" yaml:"size,omitempty"`
	Offset     [3]float32  `json:"offset,omitempty" yaml:"offset,omitempty"`
	IsTrigger  bool        `json:"isTrigger,omitempty" yaml:"isTrigger,omitempty"`
	Bounciness *float32    `json:"bounciness,omitempty" yaml:"bounciness,omitempty"`

	// rigidbody
	Mass         float32    `json:"mass,omitempty" yaml:"mass,omitempty"`
	GravityScale *float32   `json:"gravityScale,omitempty" yaml:"gravityScale,omitempty"`
	IsKinematic  bool       `json:"isKinematic,omitempty" yaml:"isKinematic,omitempty"`
	Velocity     [3]float32 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
}

const (
	typeSphereCollider = "SphereCollider"
	typeAABBCollider   = "AABBCollider"
	typeRigidbody      = "Rigidbody"
)

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Decoding ---

func DecodeScene(r io.Reader, format Format) (SceneFile, error) {
	var sf SceneFile
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&sf); err != nil {
			return sf, fmt.Errorf("parse scene: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
			return sf, fmt.Errorf("parse scene: %w", err)
		}
	default:
		return sf, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return sf, nil
}

func EncodeScene(wr io.Writer, sf SceneFile, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(wr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sf); err != nil {
			return fmt.Errorf("marshal scene: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(wr)
		enc.SetIndent(2)
		if err := enc.Encode(sf); err != nil {
			return fmt.Errorf("marshal scene: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("marshal scene: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// --- Loading ---

// LoadScene reads a .json or .yaml scene file and instantiates it.
func (w *World) LoadScene(path string) ([]*engine.GameObject, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sf, err := DecodeScene(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	return w.Instantiate(sf)
}

// Instantiate builds the objects of sf and adds them to the scene. It
// returns the root objects. Nothing is added when a definition is invalid.
func (w *World) Instantiate(sf SceneFile) ([]*engine.GameObject, error) {
	for _, def := range sf.Objects {
		if err := validateObject(def); err != nil {
			return nil, err
		}
	}

	roots := make([]*engine.GameObject, 0, len(sf.Objects))
	for _, def := range sf.Objects {
		roots = append(roots, w.instantiate(def, nil))
	}
	w.log.Debug("scene instantiated", zap.Int("roots", len(roots)), zap.Int("objects", len(w.Scene.GameObjects)))
	return roots, nil
}

func validateObject(def ObjectDef) error {
	for _, c := range def.Components {
		switch c.Type {
		case typeSphereCollider, typeRigidbody:
		case typeAABBCollider:
			if c.Size == nil {
				return fmt.Errorf("object %q: %s needs a size", def.Name, c.Type)
			}
		default:
			return fmt.Errorf("object %q: %w %q", def.Name, ErrUnknownComponent, c.Type)
		}
	}
	for _, child := range def.Children {
		if err := validateObject(child); err != nil {
			return err
		}
	}
	return nil
}

// instantiate places the object in the hierarchy before adding components
// so that they register with their world pose.
func (w *World) instantiate(def ObjectDef, parent *engine.GameObject) *engine.GameObject {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Active = !def.Inactive
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = vec(def.Scale)
	}

	if parent != nil {
		parent.AddChild(g)
	}
	for _, c := range def.Components {
		g.AddComponent(w.newComponent(c))
	}
	w.Scene.AddGameObject(g)

	for _, child := range def.Children {
		w.instantiate(child, g)
	}
	return g
}

func (w *World) newComponent(def ComponentDef) engine.Component {
	switch def.Type {
	case typeSphereCollider:
		col := physics.NewSphereCollider(w.Physics, def.Radius)
		applyColliderDef(&col.ColliderBase, def)
		return col
	case typeAABBCollider:
		col := physics.NewAABBCollider(w.Physics, vec(*def.Size))
		applyColliderDef(&col.ColliderBase, def)
		return col
	default:
		rb := physics.NewRigidbody(w.Physics)
		if def.Mass > 0 {
			rb.Mass = def.Mass
		}
		if def.GravityScale != nil {
			rb.GravityScale = *def.GravityScale
		}
		rb.IsKinematic = def.IsKinematic
		rb.Velocity = vec(def.Velocity)
		return rb
	}
}

func applyColliderDef(c *physics.ColliderBase, def ComponentDef) {
	c.Offset = vec(def.Offset)
	c.IsTrigger = def.IsTrigger
	if def.Bounciness != nil {
		c.Bounciness = *def.Bounciness
	}
}

// --- Saving ---

// SaveScene writes every root object of the scene and its children. The
// format follows the file extension.
func (w *World) SaveScene(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeScene(&buf, w.Snapshot(), format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Snapshot describes the current scene, including poses and velocities
// produced by the simulation.
func (w *World) Snapshot() SceneFile {
	var sf SceneFile
	for _, g := range w.Scene.GameObjects {
		if g.Parent == nil {
			sf.Objects = append(sf.Objects, describeObject(g))
		}
	}
	return sf
}

func describeObject(g *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Inactive: !g.Active,
		Position: arr(g.Transform.Position),
		Rotation: arr(g.Transform.Rotation),
		Scale:    arr(g.Transform.Scale),
	}
	for _, c := range g.Components() {
		if cd, ok := describeComponent(c); ok {
			def.Components = append(def.Components, cd)
		}
	}
	for _, child := range g.Children {
		def.Children = append(def.Children, describeObject(child))
	}
	return def
}

func describeComponent(c engine.Component) (ComponentDef, bool) {
	switch comp := c.(type) {
	case *physics.SphereCollider:
		def := colliderDef(typeSphereCollider, &comp.ColliderBase)
		def.Radius = comp.Radius
		return def, true

	case *physics.AABBCollider:
		def := colliderDef(typeAABBCollider, &comp.ColliderBase)
		size := arr(comp.Size)
		def.Size = &size
		return def, true

	case *physics.Rigidbody:
		gravityScale := comp.GravityScale
		return ComponentDef{
			Type:         typeRigidbody,
			Mass:         comp.Mass,
			GravityScale: &gravityScale,
			IsKinematic:  comp.IsKinematic,
			Velocity:     arr(comp.Velocity),
		}, true
	}
	return ComponentDef{}, false
}

func colliderDef(typ string, c *physics.ColliderBase) ComponentDef {
	bounciness := c.Bounciness
	return ComponentDef{
		Type:       typ,
		Offset:     arr(c.Offset),
		IsTrigger:  c.IsTrigger,
		Bounciness: &bounciness,
	}
}
