// internal/bridge/bridge.go
// Package bridge carries the JSON scripting contract between the modal view
// model and the embedded web surface: inbound events posted by the page and
// outbound property updates pushed into it.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Message is an event posted by the modal page. Args carries the event
// payload objects; in practice the page sends exactly one.
type Message struct {
	Name string           `json:"name"`
	Args []map[string]any `json:"args"`
}

// messageSchema pins the envelope shape so malformed page payloads are
// rejected before any field access.
const messageSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "args"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"args": {
			"type": "array",
			"items": {"type": "object"}
		}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(messageSchema)

// Decode validates and parses an inbound bridge payload.
func Decode(data []byte) (*Message, error) {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate bridge message: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("bridge message rejected by schema: %v", result.Errors())
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode bridge message: %w", err)
	}
	return &msg, nil
}

// ExtractShared removes the page's __shared__ object from the first event
// payload and returns it. The shared data belongs on the component logger,
// not on the individual event.
func ExtractShared(msg *Message) map[string]any {
	if len(msg.Args) == 0 {
		return nil
	}
	shared, ok := msg.Args[0]["__shared__"].(map[string]any)
	if !ok {
		return nil
	}
	delete(msg.Args[0], "__shared__")
	return shared
}

// UpdatePropsScript renders the outbound props push for the page's action
// hook.
func UpdatePropsScript(propsJSON []byte) string {
	return fmt.Sprintf("window.actions.updateProps(%s)", propsJSON)
}
