package mission

// primaryAgents maps each mission type to its executing agent. Content
// creation is the one conditional route: payloads flagged as requiring
// visuals go to the Designer instead of the Editor.
var primaryAgents = map[Type]string{
	TypePrayerDistribution: "Evangelist",
	TypeResearch:           "Researcher",
	TypeContentCreation:    "Editor",
}

// SelectPrimaryAgent resolves the agent that performs the execute stage.
// Runs before the graph, so an unsupported type fails before any agent is
// invoked.
func SelectPrimaryAgent(missionType Type, payload map[string]interface{}) (string, error) {
	name, ok := primaryAgents[missionType]
	if !ok {
		return "", &UnsupportedTypeError{Type: string(missionType)}
	}

	if missionType == TypeContentCreation {
		if visuals, ok := payload["requires_visuals"].(bool); ok && visuals {
			return "Designer", nil
		}
	}

	return name, nil
}
