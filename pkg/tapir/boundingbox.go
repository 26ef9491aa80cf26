package tapir

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/geometry"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BoundingBox3D is the axis aligned bounding box of one element.
type BoundingBox3D struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
	ZMin float64 `json:"zMin"`
	ZMax float64 `json:"zMax"`
}

// Size returns the extent of the box along each axis.
func (b BoundingBox3D) Size() geometry.Vector {
	return geometry.New3D(b.XMax-b.XMin, b.YMax-b.YMin, b.ZMax-b.ZMin)
}

// BoundingBoxes fetches the fitted 3D bounding boxes of the given elements.
// The result is aligned with refs; elements without a box yield nil.
func (c acClient) BoundingBoxes(ctx context.Context, refs []elements.ElementRef) ([]*BoundingBox3D, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-3d-bounding-boxes",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "Get3DBoundingBoxes")),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err := c.callAddOn(ctx, "Get3DBoundingBoxes", map[string]any{
		"elements": wrapRefs(refs),
	})
	if err != nil {
		return nil, err
	}

	wrapper := &struct {
		BoundingBoxes3D []struct {
			BoundingBox3D *BoundingBox3D `json:"boundingBox3D,omitempty"`
			Error         *errorReport   `json:"error,omitempty"`
		} `json:"boundingBoxes3D"`
	}{}

	err = json.Unmarshal(result, wrapper)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal bounding boxes: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	boxes := make([]*BoundingBox3D, 0, len(wrapper.BoundingBoxes3D))
	for _, b := range wrapper.BoundingBoxes3D {
		boxes = append(boxes, b.BoundingBox3D)
	}

	return boxes, nil
}

// Heights returns the vertical bounding box extent for each element.
func (c acClient) Heights(ctx context.Context, refs []elements.ElementRef) ([]elements.Value, error) {
	boxes, err := c.BoundingBoxes(ctx, refs)
	if err != nil {
		return nil, err
	}

	values := make([]elements.Value, 0, len(boxes))
	for _, box := range boxes {
		if box == nil {
			values = append(values, elements.AbsentValue())
			continue
		}
		values = append(values, elements.NumberValue(box.Size().Z))
	}

	return values, nil
}
