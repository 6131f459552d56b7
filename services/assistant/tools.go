package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"inhotel/database/repository/catalog"
	"inhotel/models"
	"inhotel/services/hub"
)

// Tool names as declared to the oracle.
const (
	ToolNameFindHotel = "findHotel"
	ToolNameViewHub   = "viewHub"
	ToolNameUpdateHub = "updateHub"
)

// ToolKind is the closed set of tools the orchestrator can execute. Dispatch
// over it is exhaustive; an unknown tool name never reaches execution.
type ToolKind int

const (
	ToolFindHotel ToolKind = iota
	ToolViewHub
	ToolUpdateHub
)

// KindForName maps a declared tool name to its kind.
func KindForName(name string) (ToolKind, bool) {
	switch name {
	case ToolNameFindHotel:
		return ToolFindHotel, true
	case ToolNameViewHub:
		return ToolViewHub, true
	case ToolNameUpdateHub:
		return ToolUpdateHub, true
	}
	return 0, false
}

// Param describes one argument in a tool's declared schema. Object params
// nest via Children; array params describe their element via Items.
type Param struct {
	Name        string
	Type        string // "string" | "number" | "boolean" | "object" | "array"
	Description string
	Required    bool
	Children    []Param
	Items       *Param
}

// Declaration is the contract surface the oracle is told about for one tool.
type Declaration struct {
	Name        string
	Description string
	Params      []Param
}

// Declarations returns the declared tool set for oracle requests.
func Declarations() []Declaration {
	hubParam := Param{
		Name:     "hub",
		Type:     "object",
		Required: true,
		Children: []Param{
			{Name: "climate", Type: "object", Required: true, Children: []Param{
				{Name: "low", Type: "number", Required: true},
				{Name: "high", Type: "number", Required: true},
			}},
			{Name: "lights", Type: "array", Required: true, Items: &Param{Type: "object", Children: []Param{
				{Name: "name", Type: "string", Required: true},
				{Name: "status", Type: "boolean", Required: true},
			}}},
			{Name: "locks", Type: "array", Required: true, Items: &Param{Type: "object", Children: []Param{
				{Name: "name", Type: "string", Required: true},
				{Name: "isLocked", Type: "boolean", Required: true},
			}}},
		},
	}

	return []Declaration{
		{
			Name:        ToolNameFindHotel,
			Description: "find hotels based on location or hotel name",
			Params: []Param{
				{Name: "query", Type: "string", Description: "search query for location or hotel name", Required: true},
			},
		},
		{
			Name:        ToolNameViewHub,
			Description: "view the current state of the smart home hub",
		},
		{
			Name:        ToolNameUpdateHub,
			Description: "update the smart home hub with a new state",
			Params:      []Param{hubParam},
		},
	}
}

// ToolArgs is the validated, typed argument set for one tool invocation.
// Exactly the field matching the kind is populated.
type ToolArgs struct {
	FindHotel *FindHotelArgs
	UpdateHub *UpdateHubArgs
}

type FindHotelArgs struct {
	Query string
}

type UpdateHubArgs struct {
	Hub models.HubState
}

// ParseArgs validates raw oracle-supplied arguments against the declared
// schema for the tool. A violation yields InvalidToolArgumentsError.
func ParseArgs(kind ToolKind, raw map[string]any) (*ToolArgs, error) {
	switch kind {
	case ToolFindHotel:
		v, ok := raw["query"]
		if !ok {
			return nil, &InvalidToolArgumentsError{Tool: ToolNameFindHotel, Reason: "missing required argument \"query\""}
		}
		q, ok := v.(string)
		if !ok {
			return nil, &InvalidToolArgumentsError{Tool: ToolNameFindHotel, Reason: "argument \"query\" must be a string"}
		}
		return &ToolArgs{FindHotel: &FindHotelArgs{Query: q}}, nil

	case ToolViewHub:
		return &ToolArgs{}, nil

	case ToolUpdateHub:
		v, ok := raw["hub"]
		if !ok {
			return nil, &InvalidToolArgumentsError{Tool: ToolNameUpdateHub, Reason: "missing required argument \"hub\""}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, &InvalidToolArgumentsError{Tool: ToolNameUpdateHub, Reason: "argument \"hub\" is not serializable"}
		}
		var state models.HubState
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&state); err != nil {
			return nil, &InvalidToolArgumentsError{Tool: ToolNameUpdateHub, Reason: fmt.Sprintf("argument \"hub\" has the wrong shape: %v", err)}
		}
		return &ToolArgs{UpdateHub: &UpdateHubArgs{Hub: state}}, nil
	}
	return nil, &InvalidToolArgumentsError{Tool: fmt.Sprintf("kind(%d)", kind), Reason: "unknown tool"}
}

// ToolDeps carries the collaborators a tool body may touch.
type ToolDeps struct {
	Catalog catalog.Repository
	Hub     *hub.Service
}

// ExecuteTool runs the tool body and returns the typed result along with the
// Markdown summary that becomes the assistant's rendered text.
func ExecuteTool(ctx context.Context, kind ToolKind, args *ToolArgs, deps ToolDeps) (*models.ToolResult, string, error) {
	switch kind {
	case ToolFindHotel:
		hotels, err := deps.Catalog.Search(ctx, args.FindHotel.Query)
		if err != nil {
			return nil, "", fmt.Errorf("hotel search failed: %w", err)
		}
		summary := buildSearchSummary(args.FindHotel.Query, hotels)
		return &models.ToolResult{Search: &models.SearchResult{
			Hotels:      hotels,
			SearchQuery: args.FindHotel.Query,
			Summary:     summary,
		}}, summary, nil

	case ToolViewHub:
		state := deps.Hub.Get()
		return &models.ToolResult{Hub: &state}, "Here is the current state of your hub.", nil

	case ToolUpdateHub:
		state := deps.Hub.Update(args.UpdateHub.Hub)
		return &models.ToolResult{Hub: &state}, "Your hub has been updated.", nil
	}
	return nil, "", fmt.Errorf("unknown tool kind %d", kind)
}

// buildSearchSummary renders the findHotel result the way the assistant
// presents it: a bullet list for multiple matches, a one-liner for a single
// match, an apology for none.
func buildSearchSummary(query string, hotels []models.Hotel) string {
	switch len(hotels) {
	case 0:
		return fmt.Sprintf("I couldn't find any hotels matching %q. Please try a different search term or location.", query)
	case 1:
		return fmt.Sprintf("**%s**: %s", hotels[0].Name, hotels[0].Description)
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "I found %d hotels matching %q:\n\n", len(hotels), query)
		for _, h := range hotels {
			fmt.Fprintf(&sb, "- **%s**: %s\n\n", h.Name, h.Description)
		}
		return sb.String()
	}
}
