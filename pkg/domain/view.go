package domain

// ViewKind distinguishes scene views from error views.
type ViewKind string

const (
	ViewLoading ViewKind = "loading"
	ViewScene   ViewKind = "scene"
	ViewError   ViewKind = "error"
)

// ErrorTitle is the title carried by every error view.
const ErrorTitle = "error"

// ChoiceView is one interactive affordance. Index is the position in the scene's
// choice list and is what adapters hand back to Choose.
type ChoiceView struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	NextID string `json:"next_id"`
}

// View is the render record produced for presentation adapters.
type View struct {
	Kind       ViewKind     `json:"kind"`
	SceneID    string       `json:"scene_id,omitempty"`
	Title      string       `json:"title"`
	Paragraphs [][]string   `json:"paragraphs,omitempty"`
	Choices    []ChoiceView `json:"choices"`

	// Ended is set on terminal scenes, where a non-interactive indicator replaces the choices.
	Ended bool `json:"ended,omitempty"`

	// Message carries the ended indicator text or the error description.
	Message string `json:"message,omitempty"`

	BackEnabled   bool `json:"back_enabled"`
	RestartPrompt bool `json:"restart_prompt"`
}

// IsError reports whether the view describes a failure.
func (v View) IsError() bool {
	return v.Kind == ViewError
}
