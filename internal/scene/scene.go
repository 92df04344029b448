package scene

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultRenderEngine is the engine a new scene renders with.
const DefaultRenderEngine = "BLENDER_EEVEE"

// SceneID is the update ID published for scene-level changes.
const SceneID = "Scene"

var numericSuffix = regexp.MustCompile(`^(.*)\.(\d{3,})$`)

// Scene is the in-process entity container. It owns every light object and
// data block; callers reference objects by name and must re-resolve them
// before each access because any actor may rename or remove them.
//
// Thread Safety:
//   - Not safe for concurrent use. All mutations and handler callbacks run on the
//     caller's goroutine; remote actors funnel through the UI event loop.
type Scene struct {
	objects      []*Object
	byName       map[string]*Object
	lights       map[string]*Light
	active       string
	renderEngine string

	handlers    []handlerEntry
	nextHandler HandlerID
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		byName:       make(map[string]*Object),
		lights:       make(map[string]*Light),
		renderEngine: DefaultRenderEngine,
	}
}

// Objects returns the light objects in container order. The slice is a copy;
// the objects are live.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Object looks up an object by name.
func (s *Scene) Object(name string) (*Object, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// CreateLight creates a light data block and an object using it, links the
// object into the scene and returns it. Taken names get a host suffix
// (.001, .002, ...).
func (s *Scene) CreateLight(name string, typ LightType) (*Object, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if _, err := ParseLightType(string(typ)); err != nil {
		return nil, err
	}

	dataName := uniqueName(name, func(n string) bool { _, ok := s.lights[n]; return ok })
	data := newLight(dataName, typ)
	s.lights[dataName] = data

	objName := uniqueName(name, func(n string) bool { _, ok := s.byName[n]; return ok })
	obj := &Object{Name: objName, Data: data}
	s.objects = append(s.objects, obj)
	s.byName[objName] = obj

	s.publish(Update{ID: objName, Kind: KindObject}, Update{ID: dataName, Kind: KindLight})
	return obj, nil
}

// Rename renames an object and returns the name it actually received. The data
// block keeps its name.
func (s *Scene) Rename(oldName, newName string) (string, error) {
	if strings.TrimSpace(newName) == "" {
		return "", ErrEmptyName
	}
	obj, ok := s.byName[oldName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if oldName == newName {
		return oldName, nil
	}

	delete(s.byName, oldName)
	final := uniqueName(newName, func(n string) bool { _, taken := s.byName[n]; return taken })
	obj.Name = final
	s.byName[final] = obj
	if s.active == oldName {
		s.active = final
	}

	s.publish(Update{ID: final, Kind: KindObject})
	return final, nil
}

// Remove unlinks and deletes an object together with its data block.
func (s *Scene) Remove(name string) error {
	obj, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.byName, name)
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	dataName := ""
	if obj.Data != nil {
		dataName = obj.Data.Name
		delete(s.lights, dataName)
	}
	if s.active == name {
		s.active = ""
	}
	// Drop the data pointer so late writers through stale references fail.
	obj.Data = nil

	s.publish(Update{ID: name, Kind: KindObject}, Update{ID: dataName, Kind: KindLight})
	return nil
}

// UpdateLight applies fn to the named object's data block and publishes the
// change. An error from fn aborts without publishing.
func (s *Scene) UpdateLight(name string, fn func(*Light) error) error {
	obj, ok := s.byName[name]
	if !ok || obj.Data == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := fn(obj.Data); err != nil {
		return err
	}
	s.publish(Update{ID: obj.Data.Name, Kind: KindLight})
	return nil
}

// SetHidden sets the viewport and render hide flags of an object.
func (s *Scene) SetHidden(name string, viewport, render bool) error {
	obj, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	obj.HideViewport = viewport
	obj.HideRender = render
	s.publish(Update{ID: name, Kind: KindObject})
	return nil
}

// ClearSelection deselects every object.
func (s *Scene) ClearSelection() {
	var touched []Update
	for _, o := range s.objects {
		if o.selected {
			o.selected = false
			touched = append(touched, Update{ID: o.Name, Kind: KindObject})
		}
	}
	if len(touched) > 0 {
		s.publish(touched...)
	}
}

// Select adds the named object to the selection.
func (s *Scene) Select(name string) error {
	obj, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	obj.selected = true
	s.publish(Update{ID: name, Kind: KindObject})
	return nil
}

// SetActive makes the named object the active one.
func (s *Scene) SetActive(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.active = name
	return nil
}

// Active returns the active object's name, or "" when none is active.
func (s *Scene) Active() string {
	return s.active
}

// SetRenderEngine selects the engine used for renders.
func (s *Scene) SetRenderEngine(engine string) {
	s.renderEngine = engine
	s.publish(Update{ID: SceneID, Kind: KindScene})
}

// RenderEngine returns the selected render engine.
func (s *Scene) RenderEngine() string {
	return s.renderEngine
}

// uniqueName returns base when free, otherwise base with the next free
// three-digit suffix. An existing suffix on base is replaced.
func uniqueName(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	stem := base
	if m := numericSuffix.FindStringSubmatch(base); m != nil {
		stem = m[1]
	}
	for i := 1; ; i++ {
		candidate := stem + "." + fmt.Sprintf("%03d", i)
		if !taken(candidate) {
			return candidate
		}
	}
}
