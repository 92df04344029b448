package scene

import (
	"fmt"
	"strings"
)

// LightType is the type tag of a light data block.
type LightType string

const (
	Point LightType = "POINT"
	Sun   LightType = "SUN"
	Spot  LightType = "SPOT"
	Area  LightType = "AREA"
)

// LightTypes lists every supported type in display order.
var LightTypes = []LightType{Point, Sun, Spot, Area}

// ParseLightType matches s against the fixed enumeration, ignoring case and
// surrounding space.
func ParseLightType(s string) (LightType, error) {
	t := LightType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range LightTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Color is a linear RGB triple in the 0..1 range.
type Color [3]float64

// Light is a light data block. Objects reference it by pointer; the block has its
// own name, independent of the object name.
type Light struct {
	Name           string
	Type           LightType
	Energy         float64
	Exposure       float64
	Temperature    float64
	UseTemperature bool
	ShadowSoftSize float64
	UseShadow      bool
	MaxBounces     int
	Color          Color
}

func newLight(name string, typ LightType) *Light {
	l := &Light{
		Name:           name,
		Type:           typ,
		Energy:         1000,
		Temperature:    6500,
		ShadowSoftSize: 0.25,
		UseShadow:      true,
		MaxBounces:     1024,
		Color:          Color{1, 1, 1},
	}
	switch typ {
	case Sun:
		l.Energy = 1
	case Area:
		l.Energy = 10
	}
	return l
}

// Object is a scene object carrying a light data block.
type Object struct {
	Name         string
	Data         *Light
	HideViewport bool
	HideRender   bool

	selected bool
}

// Visible reports whether the object shows in the interactive view.
func (o *Object) Visible() bool {
	return !o.HideViewport
}

// Selected reports whether the object is part of the current selection.
func (o *Object) Selected() bool {
	return o.selected
}
