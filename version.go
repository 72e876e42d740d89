package lotka

// Version is the release of the engine. Overridden at build time with
// -ldflags "-X github.com/aretw0/lotka.Version=...".
var Version = "0.3.0"
