/*
Package lotka is a small engine for branching stories: a static graph of scenes,
each with a title, some prose and a list of choices.

It loads the story once, renders the current scene as a structured View, and lets
the reader move forward through choices, step back through a history stack and
restart after an explicit confirmation. The engine owns no I/O beyond loading;
terminals, HTTP clients and MCP agents drive a Session and draw its View.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/lotka"
	)

	func main() {
		eng, err := lotka.New("./story.json")
		if err != nil {
			log.Fatal(err)
		}

		session, err := eng.Start(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		view := session.View()
		fmt.Println(view.Title)
		for _, c := range view.Choices {
			fmt.Printf("[%d] %s\n", c.Index+1, c.Label)
		}

		view = session.Choose(0)
		if view.BackEnabled {
			view = session.Back()
		}
	}
*/
package lotka
