package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MaskBoard/internal/geom"
)

func drawSquare(t *testing.T, s *Store, x0, y0, x1, y1 float64) {
	t.Helper()
	require.NoError(t, s.StartPolygon(geom.Pt(x0, y0)))
	require.NoError(t, s.AppendPoint(geom.Pt(x1, y0)))
	require.NoError(t, s.AppendPoint(geom.Pt(x1, y1)))
	require.NoError(t, s.AppendPoint(geom.Pt(x0, y1)))
	require.NoError(t, s.CloseCurrent())
}

func TestStoreScenario(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 10, 10, 100, 100)

	polys := s.Polygons()
	require.Len(t, polys, 1)
	assert.Len(t, polys[0].Points, 4)
	assert.True(t, polys[0].Closed)
	assert.Equal(t, "blue", polys[0].Stroke)
	assert.Equal(t, "rgba(0, 0, 255, 0.3)", polys[0].Fill)
	assert.NotEmpty(t, polys[0].ID)
	assert.True(t, polys[0].Contains(geom.Pt(50, 50)))
	assert.False(t, s.HasCurrent())
}

func TestStoreInvalidState(t *testing.T) {
	s := NewStore(DefaultStyle)
	assert.ErrorIs(t, s.AppendPoint(geom.Pt(1, 1)), ErrInvalidState)
	assert.ErrorIs(t, s.CloseCurrent(), ErrInvalidState)

	require.NoError(t, s.StartPolygon(geom.Pt(1, 1)))
	assert.ErrorIs(t, s.StartPolygon(geom.Pt(2, 2)), ErrInvalidState)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, []geom.Point{{X: 1, Y: 1}}, cur.Points, "failed start must not touch the open polygon")
}

func TestStoreKeepsDuplicatePoints(t *testing.T) {
	s := NewStore(DefaultStyle)
	require.NoError(t, s.StartPolygon(geom.Pt(5, 5)))
	require.NoError(t, s.AppendPoint(geom.Pt(5, 5)))
	require.NoError(t, s.AppendPoint(geom.Pt(5, 5)))
	cur, _ := s.Current()
	assert.Len(t, cur.Points, 3)
}

func TestStoreClosesDegeneratePolygons(t *testing.T) {
	s := NewStore(DefaultStyle)
	require.NoError(t, s.StartPolygon(geom.Pt(5, 5)))
	require.NoError(t, s.CloseCurrent())
	require.NoError(t, s.StartPolygon(geom.Pt(1, 1)))
	require.NoError(t, s.AppendPoint(geom.Pt(9, 9)))
	require.NoError(t, s.CloseCurrent())

	polys := s.Polygons()
	require.Len(t, polys, 2)
	assert.Len(t, polys[0].Points, 1)
	assert.Len(t, polys[1].Points, 2)
}

func TestStoreClosedPolygonIsImmutable(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 0, 0, 10, 10)
	before := s.Polygons()

	require.NoError(t, s.StartPolygon(geom.Pt(50, 50)))
	require.NoError(t, s.AppendPoint(geom.Pt(60, 50)))

	after := s.Polygons()
	assert.Equal(t, before, after)
	cur, _ := s.Current()
	assert.NotEqual(t, before[0].ID, cur.ID)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 0, 0, 10, 10)
	polys := s.Polygons()
	polys[0].Points[0] = geom.Pt(-99, -99)
	assert.Equal(t, geom.Pt(0, 0), s.Polygons()[0].Points[0])

	require.NoError(t, s.StartPolygon(geom.Pt(1, 2)))
	cur, _ := s.Current()
	cur.Points[0] = geom.Pt(7, 7)
	again, _ := s.Current()
	assert.Equal(t, geom.Pt(1, 2), again.Points[0])
}

func TestStoreRemoveAtRemovesAllHits(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 0, 0, 100, 100)     // contains 50,50
	drawSquare(t, s, 200, 200, 300, 300) // does not
	drawSquare(t, s, 40, 40, 60, 60)     // contains 50,50
	drawSquare(t, s, 45, 0, 55, 30)      // does not

	removed := s.RemoveAt(geom.Pt(50, 50))
	assert.Equal(t, 2, removed)

	polys := s.Polygons()
	require.Len(t, polys, 2)
	assert.Equal(t, geom.Pt(200, 200), polys[0].Points[0])
	assert.Equal(t, geom.Pt(45, 0), polys[1].Points[0])
}

func TestStoreRemoveAtIgnoresOpenPolygon(t *testing.T) {
	s := NewStore(DefaultStyle)
	require.NoError(t, s.StartPolygon(geom.Pt(0, 0)))
	require.NoError(t, s.AppendPoint(geom.Pt(100, 0)))
	require.NoError(t, s.AppendPoint(geom.Pt(100, 100)))

	assert.Zero(t, s.RemoveAt(geom.Pt(50, 20)))
	assert.True(t, s.HasCurrent())
}

func TestStoreRemoveAtMiss(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 0, 0, 10, 10)
	assert.Zero(t, s.RemoveAt(geom.Pt(500, 500)))
	assert.Equal(t, 1, s.Len())
}

func TestStoreClearAll(t *testing.T) {
	s := NewStore(DefaultStyle)
	drawSquare(t, s, 0, 0, 10, 10)
	require.NoError(t, s.StartPolygon(geom.Pt(3, 3)))

	s.ClearAll()
	assert.Zero(t, s.Len())
	assert.False(t, s.HasCurrent())
	assert.Empty(t, s.Polygons())
}

func TestStoreReplace(t *testing.T) {
	s := NewStore(DefaultStyle)
	require.NoError(t, s.StartPolygon(geom.Pt(3, 3)))

	in := []Polygon{
		{Points: []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}, Stroke: "red", Fill: "#ff000055"},
		{Points: []geom.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}}, Stroke: "green", Fill: "green"},
	}
	s.Replace(in)

	assert.False(t, s.HasCurrent())
	polys := s.Polygons()
	require.Len(t, polys, 2)
	for i, p := range polys {
		assert.True(t, p.Closed)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, in[i].Points, p.Points)
		assert.Equal(t, in[i].Stroke, p.Stroke)
	}
}

func TestNewStoreFillsMissingStyle(t *testing.T) {
	s := NewStore(Style{Stroke: "red"})
	assert.Equal(t, Style{Stroke: "red", Fill: DefaultStyle.Fill}, s.Style())
}
