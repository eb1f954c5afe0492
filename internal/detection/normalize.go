package detection

import (
	"errors"
	"fmt"
)

// ErrNoPrediction marks an upstream response with none of the expected
// fields populated. It is an empty result, not a transport failure.
var ErrNoPrediction = errors.New("no prediction")

// Result is the uniform shape handed to clients regardless of which key
// variants the inference service used.
type Result struct {
	Crop        string   `json:"crop"`
	Disease     string   `json:"disease"`
	Cause       []string `json:"cause"`
	PreventCure []string `json:"prevent_cure"`
}

// Alias priority per logical field. The first populated variant wins.
var (
	cropAliases        = []string{"Crop", "crop", "crop_name"}
	diseaseAliases     = []string{"Disease", "disease", "label"}
	causeAliases       = []string{"Cause", "cause", "Causes"}
	preventCureAliases = []string{"Prevent_Cure", "Prevent", "Prevent_Cures"}
)

// Normalize maps a raw inference response onto Result. List fields coerce a
// scalar string to a single-element list and absent values to empty lists.
func Normalize(payload map[string]any) (*Result, error) {
	result := &Result{
		Crop:        firstString(payload, cropAliases),
		Disease:     firstString(payload, diseaseAliases),
		Cause:       firstList(payload, causeAliases),
		PreventCure: firstList(payload, preventCureAliases),
	}

	if result.Crop == "" && result.Disease == "" &&
		len(result.Cause) == 0 && len(result.PreventCure) == 0 {
		return nil, ErrNoPrediction
	}
	return result, nil
}

func firstString(payload map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := payload[alias]; ok {
			if s := stringify(value); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstList(payload map[string]any, aliases []string) []string {
	for _, alias := range aliases {
		value, ok := payload[alias]
		if !ok || value == nil {
			continue
		}
		switch typed := value.(type) {
		case []any:
			items := make([]string, 0, len(typed))
			for _, item := range typed {
				if s := stringify(item); s != "" {
					items = append(items, s)
				}
			}
			if len(items) > 0 {
				return items
			}
		case []string:
			if len(typed) > 0 {
				return typed
			}
		default:
			if s := stringify(value); s != "" {
				return []string{s}
			}
		}
	}
	return []string{}
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case float64, int, int64, bool:
		return fmt.Sprintf("%v", typed)
	default:
		return ""
	}
}
