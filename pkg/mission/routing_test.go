package mission

import (
	"errors"
	"testing"
)

func TestSelectPrimaryAgent(t *testing.T) {
	tests := []struct {
		name        string
		missionType Type
		payload     map[string]interface{}
		want        string
	}{
		{
			name:        "prayer distribution routes to evangelist",
			missionType: TypePrayerDistribution,
			payload:     map[string]interface{}{"topic": "gratitude"},
			want:        "Evangelist",
		},
		{
			name:        "research routes to researcher",
			missionType: TypeResearch,
			payload:     map[string]interface{}{"question": "origins"},
			want:        "Researcher",
		},
		{
			name:        "content creation routes to editor by default",
			missionType: TypeContentCreation,
			payload:     map[string]interface{}{"topic": "newsletter"},
			want:        "Editor",
		},
		{
			name:        "content creation with visuals routes to designer",
			missionType: TypeContentCreation,
			payload:     map[string]interface{}{"topic": "poster", "requires_visuals": true},
			want:        "Designer",
		},
		{
			name:        "visuals flag false keeps editor",
			missionType: TypeContentCreation,
			payload:     map[string]interface{}{"topic": "essay", "requires_visuals": false},
			want:        "Editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectPrimaryAgent(tt.missionType, tt.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectPrimaryAgentUnsupportedType(t *testing.T) {
	_, err := SelectPrimaryAgent(Type("TEMPLE_BUILDING"), nil)
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSelectPrimaryAgentVisualsWrongType(t *testing.T) {
	// A non-boolean requires_visuals value must not trigger the Designer
	// route.
	got, err := SelectPrimaryAgent(TypeContentCreation, map[string]interface{}{
		"topic":            "flyer",
		"requires_visuals": "yes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Editor" {
		t.Errorf("got %q, want Editor", got)
	}
}
