// Package sim drives a string simulation from seed history to finished
// artifacts.
//
// The [Driver] walks the time steps in strict order. For each step it asks
// the [Engine] for the next field row, commits it to the history buffer,
// then fans the committed row and the particle positions out to the optional
// [Animator], [StreamWriter], and registered [Metric] values. A driver runs
// exactly once.
//
// # Thread Safety
//
// Driver instances are NOT thread-safe and own their history buffer
// exclusively for the duration of the run.
package sim
