// Package types contains the shared data structures for candidate evaluation.
package types

import (
	"encoding/json"
	"fmt"
)

// Action is the terminal hiring decision for a candidate.
type Action int

const (
	ActionReject Action = iota
	ActionPool
	ActionInterview
	ActionFastTrack
)

// actionTags are the serialized identifiers, stable across API responses
// and persisted sessions.
var actionTags = map[Action]string{
	ActionFastTrack: "FAST_TRACK",
	ActionInterview: "INTERVIEW",
	ActionPool:      "POOL",
	ActionReject:    "REJECT",
}

var actionDescriptions = map[Action]string{
	ActionFastTrack: "Select for fast-track hiring",
	ActionInterview: "Schedule interview",
	ActionPool:      "Add to talent pool for future roles",
	ActionReject:    "Reject with explanation",
}

// Tag returns the stable serialized identifier for the action.
func (a Action) Tag() string {
	if tag, ok := actionTags[a]; ok {
		return tag
	}
	return "REJECT"
}

// String returns the human-readable description of the action.
func (a Action) String() string {
	if desc, ok := actionDescriptions[a]; ok {
		return desc
	}
	return actionDescriptions[ActionReject]
}

// Priority returns the tiebreak ordering of the action. Higher is better:
// fast-track 4, interview 3, pool 2, reject 1.
func (a Action) Priority() int {
	switch a {
	case ActionFastTrack:
		return 4
	case ActionInterview:
		return 3
	case ActionPool:
		return 2
	default:
		return 1
	}
}

// MarshalJSON serializes the action as its tag string.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Tag())
}

// UnmarshalJSON parses an action from its tag string.
func (a *Action) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	parsed, err := ParseAction(tag)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction converts a tag string back into an Action.
func ParseAction(tag string) (Action, error) {
	for action, t := range actionTags {
		if t == tag {
			return action, nil
		}
	}
	return ActionReject, fmt.Errorf("unknown action tag: %q", tag)
}
