package domain

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStack_EvictsOldestFirst(t *testing.T) {
	s, err := NewRecordStack(3)
	require.NoError(t, err)

	var evicted []string
	for i := 0; i < 5; i++ {
		rec := &FullSnapshot{ID: strconv.Itoa(i)}
		if out := s.Push(rec); out != nil {
			evicted = append(evicted, out.RecordID())
		}
	}

	assert.Equal(t, []string{"0", "1"}, evicted)
	require.Equal(t, 3, s.Len())
	ids := []string{}
	for _, r := range s.Records() {
		ids = append(ids, r.RecordID())
	}
	assert.Equal(t, []string{"2", "3", "4"}, ids)

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "4", top.RecordID())
	peek, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "3", peek.RecordID())
}

func TestRecordStack_EmptyAndClear(t *testing.T) {
	s, err := NewRecordStack(DefaultHistoryLimit)
	require.NoError(t, err)

	_, ok := s.Pop()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)

	s.Push(&FullSnapshot{ID: "a"})
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, DefaultHistoryLimit, s.Limit())
}

func TestNewRecordStack_InvalidLimit(t *testing.T) {
	_, err := NewRecordStack(0)
	require.ErrorIs(t, err, ErrInvalidHistoryLimit)
}

func TestFieldChange_Inverse(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec, err := NewFieldChange(KindShotType, "row-2", "shotType-2", "WS", "CU", now)
	require.NoError(t, err)

	inv := rec.Inverse("MCU", now.Add(time.Minute))
	assert.Equal(t, "MCU", inv.OldValue)
	assert.Equal(t, "WS", inv.NewValue)
	assert.Equal(t, rec.FieldID, inv.FieldID)
	assert.Equal(t, ".shot-type", inv.Selector)
	assert.NotEqual(t, rec.ID, inv.ID)
}

func TestNewFieldChange_Validation(t *testing.T) {
	_, err := NewFieldChange(KindDuration, "row-1", "", "", "1", time.Now())
	require.ErrorIs(t, err, ErrEmptyFieldID)

	_, err = NewFieldChange(KindRowAdded, "row-1", "x", "", "1", time.Now())
	require.ErrorIs(t, err, ErrUnknownChangeKind)
}

func TestValueCache(t *testing.T) {
	vc := NewValueCache()
	vc.Seed("a", "1")
	vc.Seed("a", "2")
	v, _ := vc.Get("a")
	assert.Equal(t, "1", v, "seed never overwrites")

	vc.Set("a", "3")
	vc.Set("b", "x")
	vc.Retain(func(id string) bool { return id == "a" })
	_, ok := vc.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, vc.Len())

	vc.Reset()
	assert.Zero(t, vc.Len())
}

func TestChangeKind_Lookup(t *testing.T) {
	assert.True(t, KindRowAdded.Structural())
	assert.False(t, KindTitle.Structural())
	assert.Equal(t, FieldCameraPosition, KindCameraPosition.FieldType())
	assert.Equal(t, "Shot Type Change", KindShotType.Description())
	assert.False(t, ChangeKind("floor_plan").Valid())

	ft, ok := FieldTypeForClass("camera-number")
	require.True(t, ok)
	assert.Equal(t, FieldCameraNumber, ft)
}
