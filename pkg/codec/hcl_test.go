package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kboxsoft/animcurve/pkg/curve"
)

func TestParseHCL(t *testing.T) {
	hclContent := `
	# Slide-in animation for the HUD panel.
	curve "position" {
	  method  = "spline"
	  tension = 0.5

	  keyframe {
	    time  = 0.0
	    kind  = "vector3"
	    value = [0, 0, 0]
	  }
	  keyframe {
	    time  = 1.0
	    kind  = "vector3"
	    value = [1, 2, 3]
	  }
	  keyframe {
	    time  = 2.0
	    kind  = "vector3"
	    value = [0, 0, 0]
	  }

	  eventframe {
	    time  = 0.5
	    event = "footstep"
	    data = {
	      bone   = "heel_l"
	      volume = 0.8
	    }
	  }
	}

	curve "tint" {
	  keyframe {
	    time  = 0.0
	    kind  = "color"
	    value = "#ff8800"
	  }
	  keyframe {
	    time  = 1.0
	    kind  = "color"
	    value = rgba(1, 1, 1, 0.5)
	  }
	}
	`

	doc, err := ParseHCL([]byte(hclContent))
	require.NoError(t, err)
	require.Len(t, doc.Curves, 2)

	pos := doc.Curves[0]
	assert.Equal(t, "position", pos.Name)
	assert.Equal(t, "spline", pos.Method)
	require.NotNil(t, pos.Tension)
	assert.Equal(t, 0.5, *pos.Tension)
	require.Len(t, pos.Keyframes, 3)
	assert.Equal(t, "vector3", pos.Keyframes[1].Kind)
	require.Len(t, pos.Events, 1)
	assert.Equal(t, "footstep", pos.Events[0].Event)
	assert.Equal(t, "heel_l", pos.Events[0].Data["bone"])
	assert.Equal(t, 0.8, pos.Events[0].Data["volume"])

	c, err := BuildCurve(pos, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, curve.KindVector3, c.Kind())
	assert.Equal(t, curve.MethodSpline, c.Method())
	assert.True(t, c.IsValid())

	// The spline passes through the middle control point exactly.
	v := c.Sample(1.0)
	assert.Equal(t, curve.Vec3{X: 1, Y: 2, Z: 3}, v.Vector3())

	tint, err := BuildCurve(doc.Curves[1], quietLogger())
	require.NoError(t, err)
	assert.Equal(t, curve.KindColor, tint.Kind())
	assert.Equal(t, curve.Color{R: 1, G: 1, B: 1, A: 0.5}, tint.Sample(1.0).Color())
}

func TestParseHCLMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "syntax error",
			content: `curve "x" {`,
		},
		{
			name: "keyframe without value",
			content: `
			curve "x" {
			  keyframe {
			    time = 0.0
			    kind = "float"
			  }
			}`,
		},
		{
			name: "eventframe without name",
			content: `
			curve "x" {
			  eventframe {
			    time = 0.0
			  }
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestIsHCL(t *testing.T) {
	assert.True(t, IsHCL([]byte(`curve "x" { }`)))
	assert.False(t, IsHCL([]byte(`{"curves": []}`)))
}
