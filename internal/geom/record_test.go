package geom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTripKeepsGeometry(t *testing.T) {
	for name, s := range allShapes(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := ToRecord(s)
			require.NoError(t, err)
			assert.Equal(t, s.Kind().String(), rec.Type)

			data, err := json.Marshal(rec)
			require.NoError(t, err)
			var decoded Record
			require.NoError(t, json.Unmarshal(data, &decoded))

			back, err := FromRecord(decoded, DefaultTolerance)
			require.NoError(t, err)
			assert.Equal(t, s.Kind(), back.Kind())
			assert.Equal(t, s.Orientation(), back.Orientation())
			assertPointsNear(t, s.Sample(24), back.Sample(24), 1e-9)
		})
	}
}

func TestFromRecordUnknownType(t *testing.T) {
	_, err := FromRecord(Record{Type: "spline"}, DefaultTolerance)
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = FromRecord(Record{Type: "polyshape", Shapes: []Record{{Type: "blob"}}}, DefaultTolerance)
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestFromRecordRejectsBadCurves(t *testing.T) {
	_, err := FromRecord(Record{Type: "cubic", Controls: []Point{Pt(1, 1)}}, DefaultTolerance)
	assert.Error(t, err)
	_, err = FromRecord(Record{Type: "nurbs", Degree: 3}, DefaultTolerance)
	assert.Error(t, err)
}

func TestPolyshapeJSON(t *testing.T) {
	p := stadium()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"polyshape"`)

	var back Polyshape
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.Len(), back.Len())
	assert.True(t, back.IsClosed())
	assertPointsNear(t, p.Sample(50), back.Sample(50), 1e-9)

	var wrong Polyshape
	err = json.Unmarshal([]byte(`{"type":"line"}`), &wrong)
	assert.ErrorIs(t, err, ErrUnknownShape)
}
