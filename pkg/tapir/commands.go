package tapir

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// IsAlive reports whether an Archicad instance is reachable and responding.
func (c acClient) IsAlive(ctx context.Context) bool {
	_, err := c.call(ctx, "API.IsAlive", nil)
	return err == nil
}

// Elements lists the identifiers of all elements in the open project.
func (c acClient) Elements(ctx context.Context) ([]elements.ElementRef, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-all-elements",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "API.GetAllElements")),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err := c.call(ctx, "API.GetAllElements", nil)
	if err != nil {
		return nil, err
	}

	return unmarshalElementList(result)
}

// SelectedElements lists the identifiers of the currently selected elements.
func (c acClient) SelectedElements(ctx context.Context) ([]elements.ElementRef, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-selected-elements",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "API.GetSelectedElements")),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err := c.call(ctx, "API.GetSelectedElements", nil)
	if err != nil {
		return nil, err
	}

	return unmarshalElementList(result)
}

func unmarshalElementList(result json.RawMessage) ([]elements.ElementRef, error) {
	listing := &struct {
		Elements []elementIDItem `json:"elements"`
	}{}

	err := json.Unmarshal(result, listing)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal element list: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	return unwrapRefs(listing.Elements), nil
}

// ElementTypes returns the element type token for each of the given elements.
func (c acClient) ElementTypes(ctx context.Context, refs []elements.ElementRef) ([]elements.Value, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-details-of-elements",
		trace.WithAttributes(attribute.String(TraceAttributeCommand, "GetDetailsOfElements")),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err := c.callAddOn(ctx, "GetDetailsOfElements", map[string]any{
		"elements": wrapRefs(refs),
	})
	if err != nil {
		return nil, err
	}

	details := &struct {
		DetailsOfElements []struct {
			Type string `json:"type"`
		} `json:"detailsOfElements"`
	}{}

	err = json.Unmarshal(result, details)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal element details: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	values := make([]elements.Value, 0, len(details.DetailsOfElements))
	for _, d := range details.DetailsOfElements {
		if d.Type == "" {
			values = append(values, elements.AbsentValue())
			continue
		}
		values = append(values, elements.TokenValue(d.Type))
	}

	return values, nil
}

// BuiltInProperty returns the values of a built-in property, looked up by its
// non-localized name, for each of the given elements.
func (c acClient) BuiltInProperty(ctx context.Context, nonLocalizedName string, refs []elements.ElementRef) ([]elements.Value, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-builtin-property",
		trace.WithAttributes(attribute.String("property", nonLocalizedName)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	guid, err := c.propertyID(ctx, propertyUserID{
		Type:             "BuiltIn",
		NonLocalizedName: nonLocalizedName,
	})
	if err != nil {
		return nil, err
	}

	return c.propertyValues(ctx, guid, refs)
}

// UserProperty returns the values of a user defined property, looked up by
// group and name, for each of the given elements.
func (c acClient) UserProperty(ctx context.Context, group, name string, refs []elements.ElementRef) ([]elements.Value, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-user-property",
		trace.WithAttributes(attribute.String("property", group+"/"+name)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	guid, err := c.propertyID(ctx, propertyUserID{
		Type:          "UserDefined",
		LocalizedName: []string{group, name},
	})
	if err != nil {
		return nil, err
	}

	return c.propertyValues(ctx, guid, refs)
}

type propertyUserID struct {
	Type             string   `json:"type"`
	NonLocalizedName string   `json:"nonLocalizedName,omitempty"`
	LocalizedName    []string `json:"localizedName,omitempty"`
}

// propertyID resolves a property reference to its GUID. An unknown property
// is a command failure, not a per element condition, and is surfaced as such.
func (c acClient) propertyID(ctx context.Context, userID propertyUserID) (string, error) {
	result, err := c.call(ctx, "API.GetPropertyIds", map[string]any{
		"properties": []propertyUserID{userID},
	})
	if err != nil {
		return "", err
	}

	ids := &struct {
		Properties []struct {
			PropertyID *struct {
				GUID string `json:"guid"`
			} `json:"propertyId,omitempty"`
			Error *errorReport `json:"error,omitempty"`
		} `json:"properties"`
	}{}

	err = json.Unmarshal(result, ids)
	if err != nil {
		return "", fmt.Errorf("failed to unmarshal property ids: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if len(ids.Properties) != 1 {
		return "", fmt.Errorf("expected a single property id, got %d (%w)", len(ids.Properties), errors.ErrBadResponse)
	}

	p := ids.Properties[0]
	if p.Error != nil {
		return "", errors.NewErrorFromErrorReport(p.Error.Code, p.Error.Message)
	}

	if p.PropertyID == nil {
		return "", fmt.Errorf("property id missing from response (%w)", errors.ErrBadResponse)
	}

	return p.PropertyID.GUID, nil
}

func (c acClient) propertyValues(ctx context.Context, propertyGUID string, refs []elements.ElementRef) ([]elements.Value, error) {
	result, err := c.call(ctx, "API.GetPropertyValuesOfElements", map[string]any{
		"elements": wrapRefs(refs),
		"properties": []map[string]any{
			{"propertyId": map[string]string{"guid": propertyGUID}},
		},
	})
	if err != nil {
		return nil, err
	}

	wrapper := &struct {
		PropertyValuesForElements []struct {
			PropertyValues []struct {
				PropertyValue *struct {
					Value any `json:"value"`
				} `json:"propertyValue,omitempty"`
				Error *errorReport `json:"error,omitempty"`
			} `json:"propertyValues,omitempty"`
			Error *errorReport `json:"error,omitempty"`
		} `json:"propertyValuesForElements"`
	}{}

	err = json.Unmarshal(result, wrapper)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal property values: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	values := make([]elements.Value, 0, len(wrapper.PropertyValuesForElements))

	for _, forElement := range wrapper.PropertyValuesForElements {
		// elements the property is not available for report an error
		// instead of a value, at either level
		if forElement.Error != nil || len(forElement.PropertyValues) == 0 {
			values = append(values, elements.AbsentValue())
			continue
		}

		pv := forElement.PropertyValues[0]
		if pv.Error != nil || pv.PropertyValue == nil {
			values = append(values, elements.AbsentValue())
			continue
		}

		values = append(values, toValue(pv.PropertyValue.Value))
	}

	return values, nil
}

func toValue(raw any) elements.Value {
	switch v := raw.(type) {
	case string:
		return elements.TextValue(v)
	case float64:
		return elements.NumberValue(v)
	case bool:
		if v {
			return elements.TokenValue("True")
		}
		return elements.TokenValue("False")
	case nil:
		return elements.AbsentValue()
	}

	return elements.TextValue(fmt.Sprintf("%v", raw))
}
