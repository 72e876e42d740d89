package lotka_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/lotka"
	"github.com/aretw0/lotka/pkg/dsl"
)

// ExampleNew_memory demonstrates how to use the Engine with a story built in Go.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	b := dsl.New()
	b.Add("start").
		Title("Crossroads").
		Text("Two paths split in the fog. Which one?").
		Choice("Left", "left").
		Choice("Right", "right")
	b.Add("left").Title("The Mill").Text("The wheel still turns.")
	b.Add("right").Title("The Marsh").Text("Your boots sink.")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// Leave source empty because a loader is provided.
	engine, err := lotka.New("", lotka.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	session, err := engine.Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	view := session.View()
	fmt.Println(view.Title)
	for _, c := range view.Choices {
		fmt.Printf("%d) %s\n", c.Index+1, c.Label)
	}

	view = session.Choose(0)
	fmt.Println(view.Title, view.Ended)

	view = session.Back()
	fmt.Println(view.Title, view.BackEnabled)

	// Output:
	// Crossroads
	// 1) Left
	// 2) Right
	// The Mill true
	// Crossroads false
}
