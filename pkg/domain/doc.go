/*
Package domain contains the core domain models for the Lotka story engine.

It defines the story graph (an immutable document of scenes and choices), the
mutable navigation state of a reading session, and the render record handed to
presentation adapters. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Story: The loaded document. Maps scene IDs to scenes and names the start scene.
  - Scene: One unit of narrative content with a title, body text and outgoing choices.
  - Choice: A labelled transition to another scene.
  - NavigationState: The current scene and the back-history stack of a session.
  - View: A structural description of what the host should display.
*/
package domain
