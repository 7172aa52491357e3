package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#ff0000")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)

	c, ok = ParseColor("#ccc")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 204, G: 204, B: 204, A: 255}, c)

	for _, s := range []string{"", "none", " transparent "} {
		_, ok := ParseColor(s)
		assert.False(t, ok, s)
	}
}

func TestWithOpacity(t *testing.T) {
	c := WithOpacity(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.5)
	nrgba, ok := c.(color.NRGBA)
	require.True(t, ok)
	assert.InDelta(t, 127, int(nrgba.A), 1)
	assert.Nil(t, WithOpacity(nil, 1))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(10, 10)
	r.StrokeLine(0, 0, 1, 1, color.Black, 1)
	r.Clear()
	r.StrokeLine(0, 0, 5, 5, color.Black, 2)
	r.DrawText("0", 1, 2, TextStyle{Size: 10})

	assert.Len(t, r.Ops, 3)
	assert.Equal(t, OpClear, r.Ops[0].Kind)
	require.Len(t, r.Lines(), 1)
	assert.Equal(t, 2.0, r.Lines()[0].Width)
	require.Len(t, r.Texts(), 1)
	assert.Equal(t, "0", r.Texts()[0].Text)

	assert.Error(t, r.Resize(0, 4))
	require.NoError(t, r.Resize(20, 30))
	w, h := r.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 30, h)
}

func TestTextAnchor(t *testing.T) {
	ax, ay := TextStyle{Align: AlignRight, Baseline: BaselineMiddle}.Anchor()
	assert.Equal(t, 1.0, ax)
	assert.Equal(t, 0.5, ay)

	w, h := MeasureText(NewRecorder(1, 1), "abc", 10)
	assert.InDelta(t, 18, w, 1e-9)
	assert.Equal(t, 10.0, h)
}
