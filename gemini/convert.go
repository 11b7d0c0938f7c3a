package gemini

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/toolbridge"
	"google.golang.org/genai"
)

// ConvertParts converts normalized documents to genai parts with prompt as
// the final text part. Binary content is decoded from base64 into inline data.
func ConvertParts(parts []toolbridge.NormalizedContent, prompt string) ([]*genai.Part, error) {
	out := make([]*genai.Part, 0, len(parts)+1)
	for i, p := range parts {
		if !p.IsBinary() {
			out = append(out, genai.NewPartFromText(p.Data))
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, fmt.Errorf("part %d: decode %s data: %w", i, p.MIMEType, err)
		}
		out = append(out, genai.NewPartFromBytes(data, p.MIMEType))
	}
	return append(out, genai.NewPartFromText(prompt)), nil
}

// ConvertDeclarations converts declarations into a single genai Tool holding
// every function declaration. It returns nil for no declarations.
func ConvertDeclarations(decls []toolbridge.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}
	fds := make([]*genai.FunctionDeclaration, len(decls))
	for i, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if len(d.Parameters) > 0 {
			// Parameters are validated as a JSON object at registration.
			var schema map[string]any
			_ = json.Unmarshal(d.Parameters, &schema)
			fd.ParametersJsonSchema = schema
		}
		fds[i] = fd
	}
	return []*genai.Tool{{FunctionDeclarations: fds}}
}

// ConvertFunctionCalls converts the function calls of a Live tool-call
// message into a batch. Nil entries are dropped.
func ConvertFunctionCalls(calls []*genai.FunctionCall) toolbridge.ToolCallBatch {
	batch := make(toolbridge.ToolCallBatch, 0, len(calls))
	for _, fc := range calls {
		if fc == nil {
			continue
		}
		batch = append(batch, toolbridge.ToolCall{
			ID:        fc.ID,
			Name:      fc.Name,
			Arguments: fc.Args,
		})
	}
	return batch
}

// ConvertResults converts a result batch into function responses. Each
// response carries an "output" object with a success flag and one of
// "message" (string payload), "result" (any other payload) or "error".
func ConvertResults(results toolbridge.ToolResultBatch) []*genai.FunctionResponse {
	out := make([]*genai.FunctionResponse, len(results))
	for i, r := range results {
		output := map[string]any{"success": r.Success}
		switch p := r.Payload.(type) {
		case nil:
		case string:
			if r.Success {
				output["message"] = p
			} else {
				output["error"] = p
			}
		default:
			if r.Success {
				output["result"] = p
			} else {
				output["error"] = fmt.Sprint(p)
			}
		}
		out[i] = &genai.FunctionResponse{
			ID:       r.ID,
			Name:     r.Name,
			Response: map[string]any{"output": output},
		}
	}
	return out
}
