/*
Package ports defines the driven ports (interfaces) for the Lotka engine.

These interfaces decouple the navigation core from where stories come from and
from how they are presented.

# Key Interfaces

  - StoryLoader: Fetches and parses the story document once at startup
    (file, HTTP, Loam directory, Redis key, memory).
  - Navigator: The operations a presentation adapter can trigger on a session.
*/
package ports
