package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"inhotel/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiOracle implements Oracle on top of the Gemini API, using declared
// function tools and streamed generation.
type GeminiOracle struct {
	client    *genai.Client
	modelName string
}

func NewGeminiOracle(apiKey, modelName string) *GeminiOracle {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiOracle{client: client, modelName: modelName}
}

func (g *GeminiOracle) Decide(ctx context.Context, req Request) (*Decision, error) {
	// Each call configures its own model handle. Sessions resolve turns
	// concurrently, so the oracle must not carry per-request state.
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	model.Tools = declarationsToGenai(req.Tools)

	history, last, err := transcriptToGenai(req.Transcript)
	if err != nil {
		return nil, err
	}

	chat := model.StartChat()
	chat.History = history

	iter := chat.SendMessageStream(ctx, last...)
	resp, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("gemini returned an empty response")
	}
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	// A tool decision arrives as a function call in the first response.
	if fc := firstFunctionCall(resp); fc != nil {
		return &Decision{Tool: &ToolSelection{Name: fc.Name, Args: fc.Args}}, nil
	}
	return &Decision{Text: &geminiTextStream{iter: iter, pending: textOf(resp)}}, nil
}

// geminiTextStream adapts the Gemini response iterator to delta semantics.
type geminiTextStream struct {
	iter    *genai.GenerateContentResponseIterator
	pending string
	primed  bool
}

func (s *geminiTextStream) Next() (string, error) {
	if !s.primed {
		s.primed = true
		return s.pending, nil
	}
	resp, err := s.iter.Next()
	if err == iterator.Done {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("gemini stream error: %w", err)
	}
	return textOf(resp), nil
}

func firstFunctionCall(resp *genai.GenerateContentResponse) *genai.FunctionCall {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if fc, ok := part.(genai.FunctionCall); ok {
				return &fc
			}
		}
	}
	return nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
	}
	return out
}

// transcriptToGenai converts the transcript to chat history plus the parts of
// the final user message, which SendMessageStream takes separately.
func transcriptToGenai(turns []models.Turn) ([]*genai.Content, []genai.Part, error) {
	if len(turns) == 0 || turns[len(turns)-1].Kind != models.TurnUser {
		return nil, nil, fmt.Errorf("transcript must end with a user turn")
	}

	var history []*genai.Content
	for _, t := range turns[:len(turns)-1] {
		switch t.Kind {
		case models.TurnUser:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(t.Text)}})
		case models.TurnAssistantText:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Text)}})
		case models.TurnToolCall:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{
				genai.FunctionCall{Name: t.ToolName, Args: t.Args},
			}})
		case models.TurnToolResult:
			payload, err := toolResultPayload(t.Result)
			if err != nil {
				return nil, nil, err
			}
			history = append(history, &genai.Content{Role: "function", Parts: []genai.Part{
				genai.FunctionResponse{Name: t.ToolName, Response: payload},
			}})
		}
	}

	last := []genai.Part{genai.Text(turns[len(turns)-1].Text)}
	return history, last, nil
}

func toolResultPayload(result *models.ToolResult) (map[string]any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode tool result: %w", err)
	}
	return payload, nil
}

func declarationsToGenai(decls []Declaration) []*genai.Tool {
	var fns []*genai.FunctionDeclaration
	for _, d := range decls {
		fn := &genai.FunctionDeclaration{Name: d.Name, Description: d.Description}
		if len(d.Params) > 0 {
			fn.Parameters = objectSchema(d.Params)
		}
		fns = append(fns, fn)
	}
	return []*genai.Tool{{FunctionDeclarations: fns}}
}

func objectSchema(params []Param) *genai.Schema {
	props := make(map[string]*genai.Schema, len(params))
	var required []string
	for _, p := range params {
		props[p.Name] = paramSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func paramSchema(p Param) *genai.Schema {
	switch p.Type {
	case "object":
		s := objectSchema(p.Children)
		s.Description = p.Description
		return s
	case "array":
		return &genai.Schema{Type: genai.TypeArray, Description: p.Description, Items: paramSchema(*p.Items)}
	case "number":
		return &genai.Schema{Type: genai.TypeNumber, Description: p.Description}
	case "boolean":
		return &genai.Schema{Type: genai.TypeBoolean, Description: p.Description}
	default:
		return &genai.Schema{Type: genai.TypeString, Description: p.Description}
	}
}
