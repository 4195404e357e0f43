// Package fault injects measurement-chain impairments into a signal.
//
// A [Spec] enables any subset of the 21 [Kind] values, each with a severity
// from 0 to 5 that scales to a magnitude of severity*0.4. [Injector.Apply]
// runs the enabled kinds strictly in enumeration order, each on the output
// of the previous one, so the composition is deterministic for a seeded
// injector even though several kinds are stochastic.
//
// Dropped samples (sample loss) are recorded in the signal's validity mask.
// Resampling kinds (aliasing, timing jitter) move the mask together with the
// values.
package fault
