package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/lotka/pkg/domain"
)

// Severity tells whether an issue breaks reading or is only suspicious.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding about the story graph.
type Issue struct {
	Severity Severity
	SceneID  string
	// Choice is the index of the offending choice, or -1.
	Choice  int
	Message string
}

func (i Issue) String() string {
	if i.Choice >= 0 {
		return fmt.Sprintf("%s: scene '%s' choice %d: %s", i.Severity, i.SceneID, i.Choice+1, i.Message)
	}
	return fmt.Sprintf("%s: scene '%s': %s", i.Severity, i.SceneID, i.Message)
}

// Report collects the findings of one validation run.
type Report struct {
	Issues    []Issue
	Reachable int
	Total     int
}

// Errors returns the issues that would put a reader on an error view.
func (r Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the suspicious but harmless issues.
func (r Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r Report) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Err summarizes the errors, or returns nil when there are none.
// With strict set warnings count as errors too.
func (r Report) Err(strict bool) error {
	issues := r.Errors()
	if strict {
		issues = r.Issues
	}
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

// ValidateStory crawls the story from its start scene and reports choices
// pointing at missing scenes, choices without a target and scenes that can
// never be reached.
func ValidateStory(story *domain.Story) Report {
	report := Report{Total: len(story.Scenes)}

	if _, ok := story.Resolve(story.StartID); !ok {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			SceneID:  story.StartID,
			Choice:   -1,
			Message:  "start scene not found",
		})
		return report
	}

	visited := map[string]bool{story.StartID: true}
	queue := []string{story.StartID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		scene, _ := story.Resolve(currentID)
		for i, choice := range scene.Choices {
			target := choice.NextID
			if target == "" {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityWarning,
					SceneID:  currentID,
					Choice:   i,
					Message:  fmt.Sprintf("choice '%s' has no target and does nothing", choice.Text),
				})
				continue
			}
			if _, ok := story.Resolve(target); !ok {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityError,
					SceneID:  currentID,
					Choice:   i,
					Message:  fmt.Sprintf("missing scene '%s'", target),
				})
				continue
			}
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}
	report.Reachable = len(visited)

	for _, id := range story.SceneIDs() {
		if !visited[id] {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				SceneID:  id,
				Choice:   -1,
				Message:  "unreachable from the start scene",
			})
		}
	}

	return report
}
