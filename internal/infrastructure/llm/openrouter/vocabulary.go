package openrouter

import (
	"github.com/sashabaranov/go-openai"

	"computer-use-agent/internal/domain/entity"
)

func coordinateProps() map[string]any {
	return map[string]any{
		"x": map[string]any{"type": "integer", "description": "Normalized x coordinate, 0-999"},
		"y": map[string]any{"type": "integer", "description": "Normalized y coordinate, 0-999"},
	}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

type intentDefinition struct {
	kind        entity.IntentKind
	description string
	parameters  map[string]any
}

// intentDefinitions declares the fixed action vocabulary as function tools
// for providers without a native computer-use tool.
func intentDefinitions() []intentDefinition {
	directionProp := map[string]any{
		"type": "string",
		"enum": []string{"up", "down", "left", "right"},
	}

	return []intentDefinition{
		{
			kind:        entity.IntentNavigate,
			description: "Load a URL and wait for the page to settle",
			parameters: objectSchema(map[string]any{
				"url": map[string]any{"type": "string", "description": "URL to navigate to"},
			}, "url"),
		},
		{
			kind:        entity.IntentClickAt,
			description: "Click the topmost element at a normalized position",
			parameters:  objectSchema(coordinateProps(), "x", "y"),
		},
		{
			kind:        entity.IntentTypeTextAt,
			description: "Focus the element at a normalized position and type text",
			parameters: objectSchema(func() map[string]any {
				props := coordinateProps()
				props["text"] = map[string]any{"type": "string", "description": "Text to type"}
				props["clear_before_typing"] = map[string]any{"type": "boolean", "description": "Select all before typing (default true)"}
				props["press_enter"] = map[string]any{"type": "boolean", "description": "Press Enter after typing (default true)"}
				return props
			}(), "x", "y", "text"),
		},
		{
			kind:        entity.IntentScrollDocument,
			description: "Scroll the whole document one page in a direction",
			parameters: objectSchema(map[string]any{
				"direction": directionProp,
			}, "direction"),
		},
		{
			kind:        entity.IntentScrollAt,
			description: "Scroll the viewport at a normalized position",
			parameters: objectSchema(func() map[string]any {
				props := coordinateProps()
				props["direction"] = directionProp
				props["magnitude"] = map[string]any{"type": "integer", "description": "Scroll magnitude, default 800"}
				return props
			}(), "x", "y", "direction"),
		},
		{
			kind:        entity.IntentWait,
			description: "Wait five seconds for the page to settle",
			parameters:  objectSchema(map[string]any{}),
		},
		{
			kind:        entity.IntentGoBack,
			description: "Go back in browser history",
			parameters:  objectSchema(map[string]any{}),
		},
		{
			kind:        entity.IntentGoForward,
			description: "Go forward in browser history",
			parameters:  objectSchema(map[string]any{}),
		},
		{
			kind:        entity.IntentSearch,
			description: "Open the search engine start page",
			parameters:  objectSchema(map[string]any{}),
		},
		{
			kind:        entity.IntentKeyCombination,
			description: "Send a key combination such as Control+a or Enter to the focused element",
			parameters: objectSchema(map[string]any{
				"keys": map[string]any{"type": "string", "description": "Key combination, tokens joined with +"},
			}, "keys"),
		},
	}
}

func intentTools(excluded []string) []openai.Tool {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	var tools []openai.Tool
	for _, def := range intentDefinitions() {
		if skip[string(def.kind)] {
			continue
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(def.kind),
				Description: def.description,
				Parameters:  def.parameters,
			},
		})
	}
	return tools
}
