package tapir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/runxel/perisso/pkg/elements"
	"github.com/runxel/perisso/pkg/perisso/errors"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// DefaultAddress is where a locally running Archicad exposes its JSON API.
const DefaultAddress = "http://127.0.0.1:19723"

// Client talks to the JSON API of a running Archicad instance, including the
// add-on commands registered by the Tapir plugin. All calls are synchronous
// and fail as a whole; partial responses are never consumed.
type Client interface {
	IsAlive(ctx context.Context) bool

	Elements(ctx context.Context) ([]elements.ElementRef, error)
	SelectedElements(ctx context.Context) ([]elements.ElementRef, error)

	ElementTypes(ctx context.Context, refs []elements.ElementRef) ([]elements.Value, error)
	BuiltInProperty(ctx context.Context, nonLocalizedName string, refs []elements.ElementRef) ([]elements.Value, error)
	UserProperty(ctx context.Context, group, name string, refs []elements.ElementRef) ([]elements.Value, error)
	Heights(ctx context.Context, refs []elements.ElementRef) ([]elements.Value, error)

	BoundingBoxes(ctx context.Context, refs []elements.ElementRef) ([]*BoundingBox3D, error)

	HighlightElements(ctx context.Context, refs []elements.ElementRef, options ...HighlightOption) error
	ClearHighlight(ctx context.Context) error
}

func Debug(enabled string) func(*acClient) {
	return func(c *acClient) {
		c.debug = (enabled == "true")
	}
}

func NewClient(address string, options ...func(*acClient)) Client {
	c := &acClient{
		address: address,
		debug:   false,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeCommand string = "archicad-command"
)

var tracer = otel.Tracer("perisso/tapir-client")

type acClient struct {
	address string
	debug   bool
}

// the client doubles as the attribute resolver for element collections
var _ elements.Resolver = &acClient{}

type commandRequest struct {
	Command    string `json:"command"`
	Parameters any    `json:"parameters,omitempty"`
}

type commandResponse struct {
	Succeeded bool            `json:"succeeded"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *errorReport    `json:"error,omitempty"`
}

type errorReport struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type addOnCommandID struct {
	Namespace string `json:"commandNamespace"`
	Name      string `json:"commandName"`
}

type addOnCommandRequest struct {
	CommandID  addOnCommandID `json:"addOnCommandId"`
	Parameters any            `json:"addOnCommandParameters,omitempty"`
}

type elementIDItem struct {
	ElementID elements.ElementRef `json:"elementId"`
}

func wrapRefs(refs []elements.ElementRef) []elementIDItem {
	items := make([]elementIDItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, elementIDItem{ElementID: ref})
	}
	return items
}

func unwrapRefs(items []elementIDItem) []elements.ElementRef {
	refs := make([]elements.ElementRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.ElementID)
	}
	return refs
}

// call posts a single command to the JSON API and returns the raw result.
func (c acClient) call(ctx context.Context, command string, params any) (json.RawMessage, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	payload, err := json.Marshal(commandRequest{Command: command, Parameters: params})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, errors.ErrBadResponse)
	}

	response := &commandResponse{}
	err = json.Unmarshal(respBody, response)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if !response.Succeeded {
		if c.debug {
			reqbytes, _ := httputil.DumpRequest(req, false)
			respbytes, _ := httputil.DumpResponse(resp, false)

			log := logging.GetFromContext(ctx)
			log.Error("command failed", "command", command, "request", string(reqbytes), "response", string(respbytes))
		}

		if response.Error != nil {
			return nil, errors.NewErrorFromErrorReport(response.Error.Code, response.Error.Message)
		}

		return nil, fmt.Errorf("command %s failed without error report (%w)", command, errors.ErrCommandFailed)
	}

	return response.Result, nil
}

// callAddOn runs a Tapir add-on command through API.ExecuteAddOnCommand and
// unwraps the add-on response. Tapir reports failures inside the response
// object rather than via the outer succeeded flag.
func (c acClient) callAddOn(ctx context.Context, command string, params any) (json.RawMessage, error) {
	result, err := c.call(ctx, "API.ExecuteAddOnCommand", addOnCommandRequest{
		CommandID:  addOnCommandID{Namespace: "TapirCommand", Name: command},
		Parameters: params,
	})
	if err != nil {
		return nil, err
	}

	unwrapped := &struct {
		Response json.RawMessage `json:"addOnCommandResponse"`
	}{}

	err = json.Unmarshal(result, unwrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal add-on response: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	failure := &struct {
		Error *errorReport `json:"error"`
	}{}

	if json.Unmarshal(unwrapped.Response, failure) == nil && failure.Error != nil {
		return nil, errors.NewErrorFromErrorReport(failure.Error.Code, failure.Error.Message)
	}

	return unwrapped.Response, nil
}
