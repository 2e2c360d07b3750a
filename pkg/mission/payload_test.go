package mission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, valid := range []string{"PRAYER_DISTRIBUTION", "RESEARCH", "CONTENT_CREATION"} {
		mt, err := ParseType(valid)
		require.NoError(t, err)
		assert.Equal(t, Type(valid), mt)
	}

	_, err := ParseType("TEMPLE_BUILDING")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	var typeErr *UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "TEMPLE_BUILDING", typeErr.Type)
}

func TestDecodePayload(t *testing.T) {
	t.Run("prayer", func(t *testing.T) {
		typed, err := DecodePayload(TypePrayerDistribution, map[string]interface{}{
			"topic":    "healing",
			"audience": "community",
		})
		require.NoError(t, err)
		p := typed.(*PrayerPayload)
		assert.Equal(t, "healing", p.Topic)
		assert.Equal(t, "community", p.Audience)
	})

	t.Run("prayer requires topic", func(t *testing.T) {
		_, err := DecodePayload(TypePrayerDistribution, map[string]interface{}{
			"audience": "community",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic")
	})

	t.Run("research requires question", func(t *testing.T) {
		_, err := DecodePayload(TypeResearch, map[string]interface{}{"depth": "deep"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question")
	})

	t.Run("content with visuals flag", func(t *testing.T) {
		typed, err := DecodePayload(TypeContentCreation, map[string]interface{}{
			"topic":            "poster",
			"requires_visuals": true,
		})
		require.NoError(t, err)
		p := typed.(*ContentPayload)
		assert.True(t, p.RequiresVisuals)
	})

	t.Run("unknown keys tolerated", func(t *testing.T) {
		_, err := DecodePayload(TypeResearch, map[string]interface{}{
			"question": "origins",
			"extra":    "ignored",
		})
		assert.NoError(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := DecodePayload(Type("TEMPLE_BUILDING"), map[string]interface{}{})
		assert.True(t, errors.Is(err, ErrUnsupportedType))
	})
}
