package mediator

import "github.com/next-trace/scg-mediator/kind"

// Factory produces a fresh handler of type H per invocation. Kind identifies the
// factory: registrations are deduplicated and checked for conflicts by Kind, and
// it must descend from the capability root for the role H plays.
type Factory[H any] struct {
	Kind kind.Kind
	New  func() H
}

// FactoryOf builds a Factory from a kind and constructor.
func FactoryOf[H any](k kind.Kind, newFn func() H) Factory[H] {
	return Factory[H]{Kind: k, New: newFn}
}

// Singleton builds a Factory that always hands out the same stateless handler.
func Singleton[H any](k kind.Kind, h H) Factory[H] {
	return Factory[H]{Kind: k, New: func() H { return h }}
}
