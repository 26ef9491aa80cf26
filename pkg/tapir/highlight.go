package tapir

import (
	"context"
	"fmt"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type highlightSettings struct {
	color     [4]int
	nonColor  [4]int
	wireframe bool
}

type HighlightOption func(*highlightSettings)

// Color sets the RGBA color of the highlighted elements (0-255 per channel).
func Color(r, g, b, a int) HighlightOption {
	return func(s *highlightSettings) {
		s.color = [4]int{r, g, b, a}
	}
}

// NonHighlightedColor sets the RGBA color of all other elements.
func NonHighlightedColor(r, g, b, a int) HighlightOption {
	return func(s *highlightSettings) {
		s.nonColor = [4]int{r, g, b, a}
	}
}

// Wireframe toggles wireframe display of the non highlighted elements in 3D.
func Wireframe(enabled bool) HighlightOption {
	return func(s *highlightSettings) {
		s.wireframe = enabled
	}
}

// HighlightElements colors the given elements in the Archicad views.
func (c acClient) HighlightElements(ctx context.Context, refs []elements.ElementRef, options ...HighlightOption) error {
	var err error

	ctx, span := tracer.Start(ctx, "highlight-elements",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "HighlightElements")),
		trace.WithAttributes(attribute.Int("element-count", len(refs))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	settings := &highlightSettings{
		color:     [4]int{77, 235, 103, 100},
		nonColor:  [4]int{164, 166, 165, 128},
		wireframe: true,
	}

	for _, option := range options {
		option(settings)
	}

	if err = validateColor(settings.color); err != nil {
		return err
	}
	if err = validateColor(settings.nonColor); err != nil {
		return err
	}

	colors := make([][4]int, 0, len(refs))
	for range refs {
		colors = append(colors, settings.color)
	}

	_, err = c.callAddOn(ctx, "HighlightElements", map[string]any{
		"elements":            wrapRefs(refs),
		"highlightedColors":   colors,
		"wireframe3D":         settings.wireframe,
		"nonHighlightedColor": settings.nonColor,
	})

	return err
}

// ClearHighlight removes all element highlighting.
func (c acClient) ClearHighlight(ctx context.Context) error {
	var err error

	ctx, span := tracer.Start(ctx, "clear-highlight",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "HighlightElements")),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, err = c.callAddOn(ctx, "HighlightElements", map[string]any{
		"elements":          []elementIDItem{},
		"highlightedColors": [][4]int{},
	})

	return err
}

func validateColor(color [4]int) error {
	for _, channel := range color {
		if channel < 0 || channel > 255 {
			return errors.NewInvalidArgumentError(fmt.Sprintf("color channel %d out of range 0-255", channel))
		}
	}
	return nil
}
