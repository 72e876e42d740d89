package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	KeyStartID = "startId"
	KeyScenes  = "scenes"
)

// Parse decodes a JSON or YAML story document.
// JSON goes through encoding/json so that tab-indented files are accepted.
func Parse(data []byte) (*domain.Story, error) {
	var raw map[string]any
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
		}
		return Decode(raw)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoad, err)
	}
	return Decode(raw)
}

// Decode builds a story from a generic document map.
// The start scene must be present in scenes; choice targets are not checked here.
func Decode(raw map[string]any) (*domain.Story, error) {
	if raw == nil {
		return nil, &AggregateError{Errors: []error{
			&ValidationError{Key: KeyStartID, Reason: "document is empty"},
		}}
	}

	var errs []error

	startID, ok := raw[KeyStartID].(string)
	if !ok || startID == "" {
		errs = append(errs, &ValidationError{Key: KeyStartID, Reason: "required non-empty string", Value: raw[KeyStartID]})
	}

	scenes, ok := raw[KeyScenes].(map[string]any)
	if !ok {
		errs = append(errs, &ValidationError{Key: KeyScenes, Reason: "required mapping of scene id to scene", Value: raw[KeyScenes]})
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}

	story := &domain.Story{StartID: startID, Scenes: make(map[string]domain.Scene, len(scenes))}
	for id, v := range scenes {
		scene, err := decodeScene(id, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		story.Scenes[id] = scene
	}

	if _, ok := scenes[startID]; !ok {
		errs = append(errs, &ValidationError{Key: KeyStartID, Reason: fmt.Sprintf("start scene %q is not defined in scenes", startID)})
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return story, nil
}

func decodeScene(id string, v any) (domain.Scene, error) {
	var scene domain.Scene
	if v == nil {
		return scene, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &scene,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return scene, fmt.Errorf("failed to build decoder: %w", err)
	}

	if err := decoder.Decode(v); err != nil {
		return scene, &ValidationError{Key: KeyScenes + "." + id, Reason: err.Error(), Value: v}
	}
	return scene, nil
}
