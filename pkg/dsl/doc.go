/*
Package dsl provides a Go DSL for programmatically constructing stories.

It is an alternative to JSON or YAML documents, useful for tests, generated
stories and embedding a small story in a program.

Example usage:

	b := dsl.New()

	b.Add("start").
		Title("The Porch").
		Text("The door is ajar. A cat watches.").
		Choice("Go inside", "hall").
		Choice("Walk away", "road")

	b.Add("hall").Title("The Hall").Text("Dust everywhere.")
	b.Add("road").Title("The Road").Text("You leave.")

	loader, err := b.Build()
	// ... pass loader to lotka.New("", lotka.WithLoader(loader))
*/
package dsl
