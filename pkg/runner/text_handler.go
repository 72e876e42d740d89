package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/lotka/pkg/domain"
)

// RestartQuestion is shown while the restart prompt is open.
const RestartQuestion = "Restart the story from the beginning? [y/N]"

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// Hints prints the available controls under each view.
	Hints bool
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Hints:  true,
	}
}

func (h *TextHandler) Output(ctx context.Context, view domain.View) error {
	var b strings.Builder

	switch {
	case view.Kind == domain.ViewLoading:
		b.WriteString("Loading...\n")
	case view.RestartPrompt:
		b.WriteString(RestartQuestion)
		b.WriteString("\n")
	default:
		b.WriteString(h.body(view))
		for _, c := range view.Choices {
			fmt.Fprintf(&b, "  %d) %s\n", c.Index+1, c.Label)
		}
		if view.Ended {
			fmt.Fprintf(&b, "\n-- %s --\n", view.Message)
		}
		if h.Hints {
			b.WriteString(hints(view))
		}
	}

	_, err := io.WriteString(h.Writer, b.String())
	return err
}

// body renders the title and paragraphs, through the renderer when one is set.
func (h *TextHandler) body(view domain.View) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", view.Title)
	if view.IsError() {
		md.WriteString(view.Message)
		md.WriteString("\n\n")
	}
	for _, p := range view.Paragraphs {
		md.WriteString(strings.Join(p, " "))
		md.WriteString("\n\n")
	}

	out := md.String()
	if h.Renderer != nil {
		if rendered, err := h.Renderer(out); err == nil {
			return strings.TrimRight(rendered, "\n") + "\n\n"
		}
	}
	return out
}

func hints(view domain.View) string {
	parts := make([]string, 0, 4)
	if len(view.Choices) > 0 {
		parts = append(parts, fmt.Sprintf("[1-%d] choose", len(view.Choices)))
	}
	if view.BackEnabled {
		parts = append(parts, "[b] back")
	}
	parts = append(parts, "[r] restart", "[q] quit")
	return "\n" + strings.Join(parts, "  ") + "\n"
}

func (h *TextHandler) Notify(ctx context.Context, msg string) error {
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(h.Writer, "> ")

		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return "", err
		}

		clean, serr := SanitizeInput(strings.TrimSpace(text))
		if serr != nil {
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", serr)
			if err == io.EOF {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}
