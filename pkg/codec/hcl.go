package codec

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// hclDocument mirrors Document for gohcl decoding.
type hclDocument struct {
	Curves []hclCurve `hcl:"curve,block"`
}

type hclCurve struct {
	Name      string        `hcl:"name,label"`
	Method    *string       `hcl:"method,optional"`
	Tension   *float64      `hcl:"tension,optional"`
	Keyframes []hclKeyframe `hcl:"keyframe,block"`
	Events    []hclEvent    `hcl:"eventframe,block"`
}

type hclKeyframe struct {
	Time  float64        `hcl:"time"`
	Kind  string         `hcl:"kind"`
	Value hcl.Expression `hcl:"value"`
}

type hclEvent struct {
	Time  float64        `hcl:"time"`
	Event string         `hcl:"event"`
	Data  *hcl.Attribute `hcl:"data,optional"`
}

// ParseHCL stages a document from the HCL authoring format:
//
//	curve "position" {
//	  method  = "spline"
//	  tension = 0.5
//	  keyframe { time = 0.0  kind = "vector3"  value = [0, 0, 0] }
//	  eventframe { time = 0.5  event = "footstep"  data = { bone = "heel_l" } }
//	}
func ParseHCL(content []byte) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, "curves.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			// rgba packs color components into the 4-element array form.
			"rgba": function.New(&function.Spec{
				Params: []function.Parameter{
					{Name: "r", Type: cty.Number},
					{Name: "g", Type: cty.Number},
					{Name: "b", Type: cty.Number},
					{Name: "a", Type: cty.Number},
				},
				Type: function.StaticReturnType(cty.List(cty.Number)),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					return cty.ListVal(args), nil
				},
			}),
		},
	}

	var hclDoc hclDocument
	diags = gohcl.DecodeBody(file.Body, evalCtx, &hclDoc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL body: %s", diags.Error())
	}

	doc := &Document{}
	for _, hc := range hclDoc.Curves {
		cd := CurveDoc{Name: hc.Name, Tension: hc.Tension}
		if hc.Method != nil {
			cd.Method = *hc.Method
		}

		for i, kf := range hc.Keyframes {
			val, valDiags := kf.Value.Value(evalCtx)
			if valDiags.HasErrors() {
				return nil, fmt.Errorf("curve %q keyframe %d: failed to evaluate value: %s",
					hc.Name, i, valDiags.Error())
			}
			cd.Keyframes = append(cd.Keyframes, KeyframeDoc{
				Time:  kf.Time,
				Kind:  kf.Kind,
				Value: ctyToInterface(val),
			})
		}

		for i, ev := range hc.Events {
			ed := EventDoc{Time: ev.Time, Event: ev.Event}
			if ev.Data != nil {
				dataVal, dataDiags := ev.Data.Expr.Value(evalCtx)
				if dataDiags.HasErrors() {
					return nil, fmt.Errorf("curve %q eventframe %d: failed to evaluate data: %s",
						hc.Name, i, dataDiags.Error())
				}
				ed.Data = ctyToMap(dataVal)
			}
			cd.Events = append(cd.Events, ed)
		}

		doc.Curves = append(doc.Curves, cd)
	}
	return doc, nil
}

// IsHCL attempts to detect if the given content is in HCL format.
func IsHCL(content []byte) bool {
	_, err := hclsyntax.ParseConfig(content, "", hcl.Pos{Line: 1, Column: 1})
	return err == nil
}

// ctyToMap converts an HCL object or map value to a Go map.
func ctyToMap(val cty.Value) map[string]any {
	if val.IsNull() {
		return nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil
	}
	result := make(map[string]any)
	for key, attr := range val.AsValueMap() {
		result[key] = ctyToInterface(attr)
	}
	return result
}

// ctyToInterface converts a cty.Value to the loose form the document model
// carries.
func ctyToInterface(val cty.Value) any {
	if val.IsNull() {
		return nil
	}

	switch {
	case val.Type() == cty.String:
		return val.AsString()
	case val.Type() == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case val.Type() == cty.Bool:
		return val.True()
	case val.Type().IsObjectType() || val.Type().IsMapType():
		return ctyToMap(val)
	case val.Type().IsListType() || val.Type().IsTupleType():
		values := val.AsValueSlice()
		result := make([]any, len(values))
		for i, v := range values {
			result[i] = ctyToInterface(v)
		}
		return result
	default:
		return val.AsString()
	}
}
