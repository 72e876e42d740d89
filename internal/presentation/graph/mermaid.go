package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/lotka/pkg/domain"
)

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFromState builds an overlay from a navigation state.
func OverlayFromState(state domain.NavigationState) *GraphOverlay {
	return &GraphOverlay{
		VisitedNodes: state.History,
		CurrentNode:  state.CurrentNodeID,
	}
}

// GenerateMermaid produces a Mermaid flowchart of a story.
// It applies semantic styling:
// - Start: ((Circle))
// - Ending (no choices): ([Stadium])
// - Missing target: {{Hexagon}}
// - Default: [Rectangle]
// Edges carry the choice text. Choices with an empty target are left out.
func GenerateMermaid(story *domain.Story, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if story == nil {
		return sb.String()
	}

	missing := make(map[string]bool)
	for _, id := range story.SceneIDs() {
		scene := story.Scenes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == story.StartID:
			opener, closer = "((", "))"
		case scene.Terminal():
			opener, closer = "([", "])"
		}

		label := id
		if scene.Title != "" && scene.Title != id {
			label = fmt.Sprintf("%s <br/> %s", escapeLabel(scene.Title), id)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		for _, choice := range scene.Choices {
			if choice.NextID == "" {
				continue
			}
			if _, ok := story.Resolve(choice.NextID); !ok {
				missing[choice.NextID] = true
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escapeLabel(choice.Text), sanitizeMermaidID(choice.NextID))
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    %% Missing scenes\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-dasharray: 5 5,color:#000;\n")
		for _, id := range sortedKeys(missing) {
			safeID := sanitizeMermaidID(id)
			fmt.Fprintf(&sb, "    %s{{\"%s ?\"}}\n", safeID, id)
			fmt.Fprintf(&sb, "    class %s missing;\n", safeID)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !visited[safeID] {
				visited[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
