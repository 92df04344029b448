package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// file is the on-disk snapshot of a scene.
type file struct {
	RenderEngine string      `yaml:"render_engine,omitempty"`
	Active       string      `yaml:"active,omitempty"`
	Lights       []fileLight `yaml:"lights"`
}

type fileLight struct {
	Name           string    `yaml:"name"`
	Data           string    `yaml:"data,omitempty"`
	Type           LightType `yaml:"type"`
	Energy         float64   `yaml:"energy"`
	Exposure       float64   `yaml:"exposure"`
	Temperature    float64   `yaml:"temperature"`
	UseTemperature bool      `yaml:"use_temperature"`
	ShadowSoftSize float64   `yaml:"shadow_soft_size"`
	UseShadow      bool      `yaml:"use_shadow"`
	MaxBounces     int       `yaml:"max_bounces"`
	Color          Color     `yaml:"color,flow"`
	HideViewport   bool      `yaml:"hide_viewport,omitempty"`
	HideRender     bool      `yaml:"hide_render,omitempty"`
}

// Load reads a scene snapshot. A missing file yields an empty scene.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	s := New()
	if f.RenderEngine != "" {
		s.renderEngine = f.RenderEngine
	}
	for i, fl := range f.Lights {
		typ, err := ParseLightType(string(fl.Type))
		if err != nil {
			return nil, fmt.Errorf("scene light %d: %w", i, err)
		}
		if fl.Name == "" {
			return nil, fmt.Errorf("scene light %d: %w", i, ErrEmptyName)
		}
		if _, dup := s.byName[fl.Name]; dup {
			return nil, fmt.Errorf("scene light %d: duplicate name %q", i, fl.Name)
		}
		dataName := fl.Data
		if dataName == "" {
			dataName = fl.Name
		}
		dataName = uniqueName(dataName, func(n string) bool { _, ok := s.lights[n]; return ok })
		l := &Light{
			Name:           dataName,
			Type:           typ,
			Energy:         fl.Energy,
			Exposure:       fl.Exposure,
			Temperature:    fl.Temperature,
			UseTemperature: fl.UseTemperature,
			ShadowSoftSize: fl.ShadowSoftSize,
			UseShadow:      fl.UseShadow,
			MaxBounces:     fl.MaxBounces,
			Color:          fl.Color,
		}
		obj := &Object{
			Name:         fl.Name,
			Data:         l,
			HideViewport: fl.HideViewport,
			HideRender:   fl.HideRender,
		}
		s.lights[dataName] = l
		s.byName[fl.Name] = obj
		s.objects = append(s.objects, obj)
	}
	if _, ok := s.byName[f.Active]; ok {
		s.active = f.Active
	}
	return s, nil
}

// Save writes the scene snapshot, creating parent directories.
func (s *Scene) Save(path string) error {
	f := file{
		RenderEngine: s.renderEngine,
		Active:       s.active,
		Lights:       make([]fileLight, 0, len(s.objects)),
	}
	for _, o := range s.objects {
		if o.Data == nil {
			continue
		}
		d := o.Data
		f.Lights = append(f.Lights, fileLight{
			Name:           o.Name,
			Data:           d.Name,
			Type:           d.Type,
			Energy:         d.Energy,
			Exposure:       d.Exposure,
			Temperature:    d.Temperature,
			UseTemperature: d.UseTemperature,
			ShadowSoftSize: d.ShadowSoftSize,
			UseShadow:      d.UseShadow,
			MaxBounces:     d.MaxBounces,
			Color:          d.Color,
			HideViewport:   o.HideViewport,
			HideRender:     o.HideRender,
		})
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create scene dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Sample returns a small three-point lighting setup.
func Sample() *Scene {
	s := New()
	key, _ := s.CreateLight("Key.000", Area)
	key.Data.Exposure = 1.5
	key.Data.Color = Color{1, 0.92, 0.82}
	fill, _ := s.CreateLight("Fill.000", Point)
	fill.Data.Exposure = -0.5
	fill.Data.UseTemperature = true
	fill.Data.Temperature = 5200
	rim, _ := s.CreateLight("Rim.000", Spot)
	rim.Data.ShadowSoftSize = 0.1
	rim.Data.MaxBounces = 8
	return s
}
