package lightsync

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gravitrone/lightman/internal/scene"
)

// Attribute is one of the light data attributes mirrored in the table.
type Attribute int

const (
	AttrExposure Attribute = iota
	AttrUseTemperature
	AttrTemperature
	AttrShadowSoftSize
	AttrUseShadow
	AttrMaxBounces
	attrCount
)

// AttrKind selects which cell variant mirrors an attribute.
type AttrKind int

const (
	KindFloat AttrKind = iota
	KindInt
	KindBool
)

type descriptor struct {
	name       string
	column     Column
	kind       AttrKind
	applicable func(*scene.Light) bool
	number     func(*scene.Light) float64
	setNumber  func(*scene.Light, float64)
	flag       func(*scene.Light) bool
	setFlag    func(*scene.Light, bool)
}

func always(*scene.Light) bool { return true }

var descriptors = [attrCount]descriptor{
	AttrExposure: {
		name:       "exposure",
		column:     ColExposure,
		kind:       KindFloat,
		applicable: always,
		number:     func(l *scene.Light) float64 { return l.Exposure },
		setNumber:  func(l *scene.Light, v float64) { l.Exposure = v },
	},
	AttrUseTemperature: {
		name:       "use_temperature",
		column:     ColUseTemperature,
		kind:       KindBool,
		applicable: always,
		flag:       func(l *scene.Light) bool { return l.UseTemperature },
		setFlag:    func(l *scene.Light, v bool) { l.UseTemperature = v },
	},
	AttrTemperature: {
		name:       "temperature",
		column:     ColTemperature,
		kind:       KindFloat,
		applicable: func(l *scene.Light) bool { return l.UseTemperature },
		number:     func(l *scene.Light) float64 { return l.Temperature },
		setNumber:  func(l *scene.Light, v float64) { l.Temperature = v },
	},
	AttrShadowSoftSize: {
		name:   "shadow_soft_size",
		column: ColSoftSize,
		kind:   KindFloat,
		applicable: func(l *scene.Light) bool {
			return l.Type != scene.Sun && l.Type != scene.Area
		},
		number:    func(l *scene.Light) float64 { return l.ShadowSoftSize },
		setNumber: func(l *scene.Light, v float64) { l.ShadowSoftSize = v },
	},
	AttrUseShadow: {
		name:       "use_shadow",
		column:     ColShadow,
		kind:       KindBool,
		applicable: always,
		flag:       func(l *scene.Light) bool { return l.UseShadow },
		setFlag:    func(l *scene.Light, v bool) { l.UseShadow = v },
	},
	AttrMaxBounces: {
		name:       "max_bounces",
		column:     ColBounces,
		kind:       KindInt,
		applicable: always,
		number:     func(l *scene.Light) float64 { return float64(l.MaxBounces) },
		setNumber:  func(l *scene.Light, v float64) { l.MaxBounces = int(v) },
	},
}

// Attributes lists every tracked attribute in column order.
func Attributes() []Attribute {
	out := make([]Attribute, 0, attrCount)
	for a := Attribute(0); a < attrCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAttribute resolves an attribute by its data name (e.g. "exposure").
func ParseAttribute(name string) (Attribute, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for a := Attribute(0); a < attrCount; a++ {
		if descriptors[a].name == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

func (a Attribute) String() string {
	if a < 0 || a >= attrCount {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return descriptors[a].name
}

// Kind returns the attribute's value kind.
func (a Attribute) Kind() AttrKind { return descriptors[a].kind }

// Column returns the table column the attribute renders in.
func (a Attribute) Column() Column { return descriptors[a].column }

// Applicable reports whether the attribute means anything for this light.
func (a Attribute) Applicable(l *scene.Light) bool {
	return l != nil && descriptors[a].applicable(l)
}

// Number reads a numeric attribute.
func (a Attribute) Number(l *scene.Light) float64 { return descriptors[a].number(l) }

// SetNumber writes a numeric attribute.
func (a Attribute) SetNumber(l *scene.Light, v float64) { descriptors[a].setNumber(l, v) }

// Flag reads a boolean attribute.
func (a Attribute) Flag(l *scene.Light) bool { return descriptors[a].flag(l) }

// SetFlag writes a boolean attribute.
func (a Attribute) SetFlag(l *scene.Light, v bool) { descriptors[a].setFlag(l, v) }

// FormatNumber renders v with three decimals for float attributes and as a
// plain integer for integral ones.
func (a Attribute) FormatNumber(v float64) string {
	if a.Kind() == KindInt {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// ParseNumber parses user input for a numeric attribute. Integral attributes
// only accept whole numbers.
func (a Attribute) ParseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", text)
	}
	if a.Kind() == KindInt {
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not a whole number: %q", text)
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("out of range: %q", text)
		}
	}
	return v, nil
}

// ParseFlag parses user input for a boolean attribute.
func ParseFlag(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", text)
}
