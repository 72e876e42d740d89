/*
Package runner implements the line-oriented reading loop for a Lotka session.

It is the bridge between a session (any ports.Navigator) and a plain stream of
lines: each view is written out, each line read back is parsed as a command
(a choice number, back, restart, quit) and applied to the session.

# Key Components

  - Runner: reads commands and applies them until the reader quits or input ends.
  - IOHandler: decouples presentation from the loop.
  - TextHandler: human readable output, optionally rendered as markdown.
  - JSONHandler: one JSON view per line, for scripting.

# Usage

	session, _ := engine.Start(ctx)
	r := runner.NewRunner(runner.WithHeadless(true))
	if err := r.Run(ctx, session); err != nil {
		log.Fatal(err)
	}
*/
package runner
