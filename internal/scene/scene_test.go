package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLightSuffixesTakenNames(t *testing.T) {
	s := New()
	first, err := s.CreateLight("LGT_POINT.000", Point)
	require.NoError(t, err)
	second, err := s.CreateLight("LGT_POINT.000", Point)
	require.NoError(t, err)

	assert.Equal(t, "LGT_POINT.000", first.Name)
	assert.Equal(t, "LGT_POINT.001", second.Name)
	assert.Equal(t, "LGT_POINT.001", second.Data.Name)
	assert.Equal(t, 2, s.Len())
}

func TestCreateLightRejectsUnknownType(t *testing.T) {
	s := New()
	_, err := s.CreateLight("x", LightType("LASER"))
	assert.True(t, errors.Is(err, ErrInvalidType))
	assert.Equal(t, 0, s.Len())
}

func TestParseLightTypeIgnoresCase(t *testing.T) {
	typ, err := ParseLightType(" spot ")
	require.NoError(t, err)
	assert.Equal(t, Spot, typ)
}

func TestRenameKeepsDataNameAndActive(t *testing.T) {
	s := New()
	obj, _ := s.CreateLight("Key.000", Point)
	require.NoError(t, s.SetActive("Key.000"))

	got, err := s.Rename("Key.000", "Hero.000")
	require.NoError(t, err)
	assert.Equal(t, "Hero.000", got)
	assert.Equal(t, "Key.000", obj.Data.Name)
	assert.Equal(t, "Hero.000", s.Active())
	_, ok := s.Object("Key.000")
	assert.False(t, ok)
}

func TestRenameMissingObject(t *testing.T) {
	s := New()
	_, err := s.Rename("ghost", "x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveDropsDataAndPublishes(t *testing.T) {
	s := New()
	obj, _ := s.CreateLight("Key.000", Point)
	var got []Batch
	s.Subscribe(func(b Batch) { got = append(got, b) })

	require.NoError(t, s.Remove("Key.000"))
	assert.Nil(t, obj.Data)
	require.Len(t, got, 1)
	assert.True(t, got[0].Touches("Key.000"))

	err := s.UpdateLight("Key.000", func(*Light) error { return nil })
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateLightPublishesDataName(t *testing.T) {
	s := New()
	s.CreateLight("Key.000", Point)
	var got Batch
	s.Subscribe(func(b Batch) { got = b })

	require.NoError(t, s.UpdateLight("Key.000", func(l *Light) error {
		l.Exposure = 2
		return nil
	}))
	assert.True(t, got.Touches("Key.000"))
	assert.Equal(t, KindLight, got.Updates[0].Kind)
}

func TestUpdateLightErrorSkipsPublish(t *testing.T) {
	s := New()
	s.CreateLight("Key.000", Point)
	calls := 0
	s.Subscribe(func(Batch) { calls++ })

	err := s.UpdateLight("Key.000", func(*Light) error { return ErrInvalidValue })
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, 0, calls)
}

func TestPublishDeliversToHandlersRegisteredAtCallTime(t *testing.T) {
	s := New()
	s.CreateLight("Key.000", Point)
	var second HandlerID
	calls := 0
	s.Subscribe(func(Batch) {
		calls++
		s.Unsubscribe(second)
	})
	second = s.Subscribe(func(Batch) { calls++ })

	require.NoError(t, s.SetHidden("Key.000", true, true))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.HandlerCount())
}

func TestUnsubscribeUnknownID(t *testing.T) {
	s := New()
	assert.False(t, s.Unsubscribe(42))
}

func TestSelection(t *testing.T) {
	s := New()
	a, _ := s.CreateLight("A", Point)
	b, _ := s.CreateLight("B", Sun)
	require.NoError(t, s.Select("A"))
	require.NoError(t, s.Select("B"))
	s.ClearSelection()
	assert.False(t, a.Selected())
	assert.False(t, b.Selected())

	assert.True(t, errors.Is(s.Select("C"), ErrNotFound))
	assert.True(t, errors.Is(s.SetActive("C"), ErrNotFound))
}

func TestBatchTouchesIgnoresEmptyID(t *testing.T) {
	b := Batch{Updates: []Update{{ID: "x"}}}
	assert.False(t, b.Touches(""))
	assert.True(t, b.Touches("x"))
}
