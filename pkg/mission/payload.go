package mission

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Typed payload shapes, one per mission type. Payloads are validated once at
// the runner boundary so the stages can assume a known shape.

type PrayerPayload struct {
	Topic    string `mapstructure:"topic"`
	Audience string `mapstructure:"audience"`
}

type ResearchPayload struct {
	Question string `mapstructure:"question"`
	Depth    string `mapstructure:"depth"`
}

type ContentPayload struct {
	Topic           string `mapstructure:"topic"`
	Format          string `mapstructure:"format"`
	RequiresVisuals bool   `mapstructure:"requires_visuals"`
}

// DecodePayload validates and decodes the raw payload for the given mission
// type. Unknown keys are tolerated; missing required fields are not.
func DecodePayload(missionType Type, payload map[string]interface{}) (interface{}, error) {
	switch missionType {
	case TypePrayerDistribution:
		var p PrayerPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if p.Topic == "" {
			return nil, fmt.Errorf("%s payload requires a topic", missionType)
		}
		return &p, nil

	case TypeResearch:
		var p ResearchPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if p.Question == "" {
			return nil, fmt.Errorf("%s payload requires a question", missionType)
		}
		return &p, nil

	case TypeContentCreation:
		var p ContentPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if p.Topic == "" {
			return nil, fmt.Errorf("%s payload requires a topic", missionType)
		}
		return &p, nil

	default:
		return nil, &UnsupportedTypeError{Type: string(missionType)}
	}
}

func decode(payload map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build payload decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
