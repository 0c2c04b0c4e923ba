// Package noise provides the blend-value sources used by the classifier.
//
// A Source produces a statistical blending value in [0,1] given the previous
// raw input magnitude as optional feedback. Four policies are available:
//
//   - prng: uniform pseudo-random values
//   - entropy: a non-blocking OS random read, falling back to prng output
//     when entropy is unavailable (the fallback never errors outward)
//   - environmental: a stateful random walk seeded at 0.5
//   - feedback: a stateful exponential filter over the input magnitude
//
// Sources are statistical inputs to classification, not security primitives.
// All state is held on the source value itself; the package has no shared
// mutable state, so independent sources never interfere.
package noise
