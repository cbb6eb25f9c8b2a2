package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Order intents.
const (
	IntentMove    = "move"
	IntentHold    = "hold"
	IntentAttack  = "attack"
	IntentObserve = "observe"
	IntentSupport = "support"
	IntentRetreat = "retreat"
	IntentCancel  = "cancel"
)

var recognizedIntents = map[string]bool{
	IntentMove:    true,
	IntentHold:    true,
	IntentAttack:  true,
	IntentObserve: true,
	IntentSupport: true,
	IntentRetreat: true,
	IntentCancel:  true,
}

var recognizedSpeeds = map[string]bool{"slow": true, "normal": true, "fast": true}
var recognizedPriorities = map[string]bool{"low": true, "normal": true, "high": true}

// SubcellCoord locates a precise point inside a macro command-cell as a
// fractional 0..100 coordinate pair.
type SubcellCoord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Waypoint is either a bare macro command-cell label ("D3") or a command
// cell plus a fractional subcell point. Exactly one form is populated.
type Waypoint struct {
	Label       string
	CommandCell string
	Subcell     *SubcellCoord
}

// CellLabel returns the macro command-cell label of either waypoint form.
func (w Waypoint) CellLabel() string {
	if w.Label != "" {
		return w.Label
	}
	return w.CommandCell
}

func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		w.Label = s
		w.CommandCell = ""
		w.Subcell = nil
		return nil
	}
	var obj struct {
		CommandCell string        `json:"commandCell"`
		Subcell     *SubcellCoord `json:"subcell"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("waypoint must be a label or a commandCell/subcell object: %w", err)
	}
	w.Label = ""
	w.CommandCell = obj.CommandCell
	w.Subcell = obj.Subcell
	return nil
}

func (w Waypoint) MarshalJSON() ([]byte, error) {
	if w.Label != "" {
		return json.Marshal(w.Label)
	}
	return json.Marshal(struct {
		CommandCell string        `json:"commandCell"`
		Subcell     *SubcellCoord `json:"subcell,omitempty"`
	}{CommandCell: w.CommandCell, Subcell: w.Subcell})
}

// JSONSchema publishes the two accepted waypoint forms in the generated
// order contract.
func (Waypoint) JSONSchema() *jsonschema.Schema {
	subProps := jsonschema.NewProperties()
	subProps.Set("x", &jsonschema.Schema{Type: "number", Minimum: "0", Maximum: "100"})
	subProps.Set("y", &jsonschema.Schema{Type: "number", Minimum: "0", Maximum: "100"})

	objProps := jsonschema.NewProperties()
	objProps.Set("commandCell", &jsonschema.Schema{Type: "string", Pattern: "^[A-J][0-9]$"})
	objProps.Set("subcell", &jsonschema.Schema{
		Type:       "object",
		Properties: subProps,
		Required:   []string{"x", "y"},
	})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Pattern: "^[A-J][0-9]$"},
			{Type: "object", Properties: objProps, Required: []string{"commandCell", "subcell"}},
		},
	}
}

// Constraints narrow how a movement destination is chosen.
type Constraints struct {
	PreferTerrain []string `json:"preferTerrain,omitempty" jsonschema:"description=Terrain kinds preferred when selecting a station point"`
	AvoidCells    []string `json:"avoidCells,omitempty"`
	StayConcealed bool     `json:"stayConcealed,omitempty"`
	Speed         string   `json:"speed,omitempty" jsonschema:"enum=slow,enum=normal,enum=fast"`
}

// EngagementSpec scopes fires for attack/support intents.
type EngagementSpec struct {
	TargetCells  []string `json:"targetCells,omitempty"`
	SuppressOnly bool     `json:"suppressOnly,omitempty"`
}

// Order is the validated structured command document consumed by the order
// executor. It is produced externally (scripted or parsed from natural
// language) and consumed once.
type Order struct {
	Units       []string       `json:"units" jsonschema:"description=Unit identifiers the order addresses"`
	Intent      string         `json:"intent" jsonschema:"enum=move,enum=hold,enum=attack,enum=observe,enum=support,enum=retreat,enum=cancel"`
	Waypoints   []Waypoint     `json:"waypoints,omitempty"`
	Constraints Constraints    `json:"constraints,omitempty"`
	ROE         string         `json:"roe,omitempty" jsonschema:"enum=hold,enum=return_fire,enum=free"`
	Posture     string         `json:"posture,omitempty" jsonschema:"enum=stand,enum=crouch,enum=prone"`
	Engagement  EngagementSpec `json:"engagement,omitempty"`
	Priority    string         `json:"priority,omitempty" jsonschema:"enum=low,enum=normal,enum=high"`
	Ack         bool           `json:"ack,omitempty"`
}

// ValidateOrder checks the structural contract of an order document. The
// first failure rejects the document wholesale; a rejected order must cause
// no mutation anywhere. Enum-valued mood fields (roe, posture, speed,
// priority) are checked only when present; the executor additionally ignores
// values it cannot parse on a per-field basis.
func ValidateOrder(o *Order) error {
	if o == nil {
		return errors.New("nil order")
	}
	if !recognizedIntents[o.Intent] {
		return fmt.Errorf("unrecognized intent %q", o.Intent)
	}
	if len(o.Units) == 0 {
		return errors.New("order names no units")
	}
	for i, id := range o.Units {
		if id == "" {
			return fmt.Errorf("units[%d] is empty", i)
		}
	}
	for i, wp := range o.Waypoints {
		label := wp.CellLabel()
		if !commandCellRe.MatchString(label) {
			return fmt.Errorf("waypoints[%d]: invalid command cell %q", i, label)
		}
		if wp.Subcell != nil {
			if wp.Subcell.X < 0 || wp.Subcell.X > 100 || wp.Subcell.Y < 0 || wp.Subcell.Y > 100 {
				return fmt.Errorf("waypoints[%d]: subcell (%.1f,%.1f) outside 0..100", i, wp.Subcell.X, wp.Subcell.Y)
			}
		}
	}
	for i, cell := range o.Constraints.AvoidCells {
		if !commandCellRe.MatchString(cell) {
			return fmt.Errorf("constraints.avoidCells[%d]: invalid command cell %q", i, cell)
		}
	}
	if o.Constraints.Speed != "" && !recognizedSpeeds[o.Constraints.Speed] {
		return fmt.Errorf("unrecognized speed %q", o.Constraints.Speed)
	}
	if o.Priority != "" && !recognizedPriorities[o.Priority] {
		return fmt.Errorf("unrecognized priority %q", o.Priority)
	}
	return nil
}

// ParseOrder decodes and validates an order document from its JSON form.
func ParseOrder(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if err := ValidateOrder(&o); err != nil {
		return nil, err
	}
	return &o, nil
}
