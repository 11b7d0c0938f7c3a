package builtin

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fwojciec/toolbridge"
	"github.com/fwojciec/toolbridge/schema"
)

// OperationSuccessful is the render_altair success message.
const OperationSuccessful = "Operation successful"

type renderAltairArgs struct {
	JSONGraph string `json:"json_graph" jsonschema:"required,description=JSON STRING representation of the graph to render. Must be a string and not a json object"`
}

// RenderAltairTool returns the declaration for the render_altair tool.
func RenderAltairTool() toolbridge.Declaration {
	return schema.Declare[renderAltairArgs]("render_altair", "Displays an altair graph in json format.")
}

// RenderAltair returns the handler for render_altair. The graph is only
// checked to be a JSON object; nothing is rendered.
func RenderAltair() toolbridge.Handler {
	return toolbridge.Typed(func(_ context.Context, a renderAltairArgs) (any, error) {
		var graph map[string]any
		if err := json.Unmarshal([]byte(a.JSONGraph), &graph); err != nil || graph == nil {
			return nil, errors.New("json_graph must be a JSON object")
		}
		return OperationSuccessful, nil
	})
}
