package openrouter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

var _ output.ReasonerPort = (*Adapter)(nil)

// systemPrompt teaches OpenAI-compatible models the computer-use contract
// that Gemini's native tool provides out of the box.
const systemPrompt = `You control a web browser through the provided functions.
You see the page only through the screenshots attached to function results.
Coordinates are normalized to a 0-999 grid per axis regardless of the real
viewport size. Issue function calls until the task is done, then reply with
a plain text final answer and no function calls.`

// Adapter implements the reasoner port over an OpenAI-compatible chat
// completions API, exposing the computer-use vocabulary as function tools
// and screenshots as image parts.
type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

func NewAdapter(cfg Config, logger output.LoggerPort) *Adapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Adapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger.WithField("component", "reasoner.openrouter"),
	}
}

func (a *Adapter) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	messages, err := convertMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Tools:       intentTools(req.ExcludedActions),
		ToolChoice:  "auto",
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	decoded, err := decodeMessage(resp.Choices[0].Message)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Reasoner generation complete",
		"intents", len(decoded.Intents),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return decoded, nil
}

// convertMessages flattens the conversation into chat-completions form.
// Tool results become role-tool messages matched to the preceding assistant
// call by position; their screenshots, which tool messages cannot carry, are
// attached to a trailing user message.
func convertMessages(messages []entity.Message) ([]openai.ChatCompletionMessage, error) {
	out := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	var pendingCallIDs []string

	for i, m := range messages {
		switch m.Role {
		case entity.RoleModel:
			msg, callIDs := convertModelMessage(i, m)
			pendingCallIDs = callIDs
			out = append(out, msg)

		case entity.RoleUser:
			if hasToolResults(m) {
				toolMsgs, imageParts, err := convertToolResults(m, pendingCallIDs)
				if err != nil {
					return nil, err
				}
				out = append(out, toolMsgs...)
				if len(imageParts) > 0 {
					out = append(out, openai.ChatCompletionMessage{
						Role:         openai.ChatMessageRoleUser,
						MultiContent: imageParts,
					})
				}
				pendingCallIDs = nil
				continue
			}
			out = append(out, convertUserMessage(m))

		default:
			return nil, fmt.Errorf("unsupported conversation role %q", m.Role)
		}
	}

	return out, nil
}

func hasToolResults(m entity.Message) bool {
	for _, p := range m.Parts {
		if p.Response != nil {
			return true
		}
	}
	return false
}

func convertUserMessage(m entity.Message) openai.ChatCompletionMessage {
	var parts []openai.ChatMessagePart
	for _, p := range m.Parts {
		switch {
		case p.Blob != nil:
			parts = append(parts, imagePart(p.Blob))
		case p.Text != "":
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
		}
	}
	return openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	}
}

func convertModelMessage(index int, m entity.Message) (openai.ChatCompletionMessage, []string) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant}
	var texts []string
	var callIDs []string

	for _, p := range m.Parts {
		switch {
		case p.Call != nil:
			id := fmt.Sprintf("call_%d_%d", index, len(callIDs))
			callIDs = append(callIDs, id)
			args, _ := json.Marshal(p.Call.Args)
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   id,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      p.Call.Name,
					Arguments: string(args),
				},
			})
		case p.Text != "" && !p.Thought:
			texts = append(texts, p.Text)
		}
	}

	msg.Content = strings.Join(texts, " ")
	return msg, callIDs
}

func convertToolResults(m entity.Message, callIDs []string) ([]openai.ChatCompletionMessage, []openai.ChatMessagePart, error) {
	var msgs []openai.ChatCompletionMessage
	var images []openai.ChatMessagePart

	idx := 0
	for _, p := range m.Parts {
		if p.Response == nil {
			continue
		}
		if idx >= len(callIDs) {
			return nil, nil, fmt.Errorf("tool result %q has no matching tool call", p.Response.Name)
		}

		content, err := json.Marshal(p.Response.Response)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal tool result: %w", err)
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: callIDs[idx],
			Name:       p.Response.Name,
			Content:    string(content),
		})
		if p.Response.Screenshot != nil {
			images = append(images, imagePart(p.Response.Screenshot))
		}
		idx++
	}

	return msgs, images, nil
}

func imagePart(b *entity.Blob) openai.ChatMessagePart {
	return openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL:    fmt.Sprintf("data:%s;base64,%s", b.MIMEType, base64.StdEncoding.EncodeToString(b.Data)),
			Detail: openai.ImageURLDetailAuto,
		},
	}
}

func decodeMessage(msg openai.ChatCompletionMessage) (*output.GenerateResponse, error) {
	result := &output.GenerateResponse{
		Message: entity.Message{Role: entity.RoleModel},
		Text:    msg.Content,
	}

	if msg.Content != "" {
		result.Message.Parts = append(result.Message.Parts, entity.Part{Text: msg.Content})
	}

	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("malformed arguments for %q: %w", tc.Function.Name, err)
			}
		}
		intent := entity.Intent{Name: tc.Function.Name, Args: args}
		result.Intents = append(result.Intents, intent)
		call := intent
		result.Message.Parts = append(result.Message.Parts, entity.Part{Call: &call})
	}

	if len(result.Message.Parts) == 0 {
		return nil, fmt.Errorf("empty message in response")
	}
	return result, nil
}
