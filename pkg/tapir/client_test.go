package tapir

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var body = expects.RequestBody

func TestGetAllElements(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			body("{\"command\":\"API.GetAllElements\"}"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true,"result":{"elements":[{"elementId":{"guid":"g1"}},{"elementId":{"guid":"g2"}}]}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	refs, err := c.Elements(context.Background())

	is.NoErr(err)
	is.Equal(refs, []elements.ElementRef{{GUID: "g1"}, {GUID: "g2"}})
}

func TestCommandFailureIsSurfaced(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":false,"error":{"code":4503,"message":"No open project!"}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	_, err := c.Elements(context.Background())

	is.True(stderrors.Is(err, errors.ErrCommandFailed))
	is.Equal(err.Error(), "[code: 4503] No open project!")
}

func TestElementTypesRunAsAddOnCommand(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			body("{\"command\":\"API.ExecuteAddOnCommand\",\"parameters\":{\"addOnCommandId\":{\"commandNamespace\":\"TapirCommand\",\"commandName\":\"GetDetailsOfElements\"},\"addOnCommandParameters\":{\"elements\":[{\"elementId\":{\"guid\":\"g1\"}},{\"elementId\":{\"guid\":\"g2\"}}]}}}"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true,"result":{"addOnCommandResponse":{"detailsOfElements":[{"type":"Wall"},{"type":"Column"}]}}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	values, err := c.ElementTypes(context.Background(), []elements.ElementRef{{GUID: "g1"}, {GUID: "g2"}})

	is.NoErr(err)
	is.Equal(values, []elements.Value{elements.TokenValue("Wall"), elements.TokenValue("Column")})
}

func TestErrorInsideAddOnResponseIsSurfaced(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true,"result":{"addOnCommandResponse":{"error":{"code":-2130313306,"message":"Add-On command execution failed!"}}}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	_, err := c.ElementTypes(context.Background(), []elements.ElementRef{{GUID: "g1"}})

	is.True(stderrors.Is(err, errors.ErrCommandFailed))
}

func TestHeightsMarkMissingBoundingBoxesAbsent(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true,"result":{"addOnCommandResponse":{"boundingBoxes3D":[{"boundingBox3D":{"xMin":0,"xMax":1,"yMin":0,"yMax":1,"zMin":0.5,"zMax":3}},{"error":{"code":1,"message":"no bounding box"}}]}}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	values, err := c.Heights(context.Background(), []elements.ElementRef{{GUID: "g1"}, {GUID: "g2"}})

	is.NoErr(err)
	is.Equal(values, []elements.Value{elements.NumberValue(2.5), elements.AbsentValue()})
}

func TestUnknownPropertyIsACommandFailure(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true,"result":{"properties":[{"error":{"code":4207,"message":"The given property is not found."}}]}}`)),
		),
	)
	defer s.Close()

	c := NewClient(s.URL())

	_, err := c.UserProperty(context.Background(), "Ratings", "Nonexistent", []elements.ElementRef{{GUID: "g1"}})

	is.True(stderrors.Is(err, errors.ErrCommandFailed))
}

func TestPropertyValuesMarkPerElementErrorsAbsent(t *testing.T) {
	is := is.New(t)

	// property lookups issue two consecutive commands, so the canned
	// responses are keyed by command name here
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request := struct {
			Command string `json:"command"`
		}{}
		json.NewDecoder(r.Body).Decode(&request)

		w.Header().Set("Content-Type", "application/json")

		switch request.Command {
		case "API.GetPropertyIds":
			w.Write([]byte(`{"succeeded":true,"result":{"properties":[{"propertyId":{"guid":"prop-guid"}}]}}`))
		case "API.GetPropertyValuesOfElements":
			w.Write([]byte(`{"succeeded":true,"result":{"propertyValuesForElements":[` +
				`{"propertyValues":[{"propertyValue":{"value":"A"}}]},` +
				`{"propertyValues":[{"error":{"code":4206,"message":"not available for this element"}}]},` +
				`{"propertyValues":[{"propertyValue":{"value":2.5}}]}]}}`))
		default:
			w.Write([]byte(`{"succeeded":false,"error":{"code":1,"message":"unexpected command"}}`))
		}
	}))
	defer s.Close()

	c := NewClient(s.URL)

	values, err := c.BuiltInProperty(context.Background(), "General_ElementID", []elements.ElementRef{{GUID: "g1"}, {GUID: "g2"}, {GUID: "g3"}})

	is.NoErr(err)
	is.Equal(values, []elements.Value{
		elements.TextValue("A"),
		elements.AbsentValue(),
		elements.NumberValue(2.5),
	})
}

func TestHighlightRejectsInvalidColors(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := NewClient(s.URL())

	err := c.HighlightElements(context.Background(), []elements.ElementRef{{GUID: "g1"}}, Color(300, 0, 0, 255))

	is.True(stderrors.Is(err, errors.ErrInvalidArgument))
	is.Equal(s.RequestCount(), 0)
}

func TestIsAlive(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"succeeded":true}`)),
		),
	)

	c := NewClient(s.URL())
	is.True(c.IsAlive(context.Background()))

	s.Close()
	is.True(!c.IsAlive(context.Background()))
}
