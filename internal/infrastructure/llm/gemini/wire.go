package gemini

import (
	"encoding/base64"
	"fmt"
	"strings"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

// Wire structures for the generateContent API, limited to the fields the
// computer-use loop needs.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text             string            `json:"text,omitempty"`
	Thought          bool              `json:"thought,omitempty"`
	InlineData       *blob             `json:"inlineData,omitempty"`
	FunctionCall     *functionCall     `json:"functionCall,omitempty"`
	FunctionResponse *functionResponse `json:"functionResponse,omitempty"`
}

type blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type functionCall struct {
	Name           string          `json:"name"`
	Args           map[string]any  `json:"args,omitempty"`
	SafetyDecision *safetyDecision `json:"safetyDecision,omitempty"`
}

type safetyDecision struct {
	Decision    string `json:"decision,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type functionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]any         `json:"response"`
	Parts    []functionResponsePart `json:"parts,omitempty"`
}

type functionResponsePart struct {
	InlineData *blob `json:"inlineData,omitempty"`
}

type computerUse struct {
	Environment                 string   `json:"environment"`
	ExcludedPredefinedFunctions []string `json:"excludedPredefinedFunctions,omitempty"`
}

type tool struct {
	ComputerUse *computerUse `json:"computerUse,omitempty"`
}

type thinkingConfig struct {
	IncludeThoughts bool `json:"includeThoughts,omitempty"`
}

type generationConfig struct {
	ThinkingConfig *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`

	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

const environmentBrowser = "ENVIRONMENT_BROWSER"

func buildRequestPayload(req output.GenerateRequest) generateRequest {
	payload := generateRequest{
		Contents: make([]content, 0, len(req.Messages)),
		Tools: []tool{{
			ComputerUse: &computerUse{
				Environment:                 environmentBrowser,
				ExcludedPredefinedFunctions: req.ExcludedActions,
			},
		}},
	}
	if req.IncludeThoughts {
		payload.GenerationConfig = &generationConfig{
			ThinkingConfig: &thinkingConfig{IncludeThoughts: true},
		}
	}
	for _, m := range req.Messages {
		payload.Contents = append(payload.Contents, encodeMessage(m))
	}
	return payload
}

func encodeMessage(m entity.Message) content {
	c := content{Role: string(m.Role), Parts: make([]part, 0, len(m.Parts))}
	for _, p := range m.Parts {
		c.Parts = append(c.Parts, encodePart(p))
	}
	return c
}

func encodePart(p entity.Part) part {
	switch {
	case p.Call != nil:
		fc := &functionCall{Name: p.Call.Name, Args: p.Call.Args}
		if p.Call.Safety != nil {
			fc.SafetyDecision = &safetyDecision{
				Decision:    p.Call.Safety.Decision,
				Explanation: p.Call.Safety.Explanation,
			}
		}
		return part{FunctionCall: fc}

	case p.Response != nil:
		fr := &functionResponse{Name: p.Response.Name, Response: p.Response.Response}
		if p.Response.Screenshot != nil {
			fr.Parts = []functionResponsePart{{InlineData: encodeBlob(p.Response.Screenshot)}}
		}
		return part{FunctionResponse: fr}

	case p.Blob != nil:
		return part{InlineData: encodeBlob(p.Blob)}

	default:
		return part{Text: p.Text, Thought: p.Thought}
	}
}

func encodeBlob(b *entity.Blob) *blob {
	return &blob{
		MIMEType: b.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(b.Data),
	}
}

// decodeCandidate maps a response candidate to the loop's view: the raw
// message, the concatenated visible text, and the requested intents.
func decodeCandidate(c candidate) (*output.GenerateResponse, error) {
	msg := entity.Message{Role: entity.RoleModel}
	var texts []string
	var intents []entity.Intent

	for _, p := range c.Content.Parts {
		switch {
		case p.FunctionCall != nil:
			intent := entity.Intent{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
			if p.FunctionCall.SafetyDecision != nil {
				intent.Safety = &entity.SafetyDecision{
					Decision:    p.FunctionCall.SafetyDecision.Decision,
					Explanation: p.FunctionCall.SafetyDecision.Explanation,
				}
			}
			intents = append(intents, intent)
			call := intent
			msg.Parts = append(msg.Parts, entity.Part{Call: &call})

		case p.Text != "":
			msg.Parts = append(msg.Parts, entity.Part{Text: p.Text, Thought: p.Thought})
			if !p.Thought {
				texts = append(texts, p.Text)
			}

		case p.InlineData != nil:
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("malformed inline data in response: %w", err)
			}
			msg.Parts = append(msg.Parts, entity.Part{
				Blob: &entity.Blob{MIMEType: p.InlineData.MIMEType, Data: data},
			})
		}
	}

	if len(msg.Parts) == 0 {
		return nil, fmt.Errorf("gemini API returned empty content parts (reason: %s)", c.FinishReason)
	}

	return &output.GenerateResponse{
		Message: msg,
		Text:    strings.Join(texts, " "),
		Intents: intents,
	}, nil
}
