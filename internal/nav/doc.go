// Package nav owns the client's navigation state.
//
// [Reduce] is the pure transition function: given the current [State] and an
// [Intent] it returns the next state. [Machine] wraps it with a [History], the
// second projection of the same state: in-app navigation writes the history
// through [Machine.Navigate], and the only write in the opposite direction is
// [Machine.Pop], the back/forward event.
//
// Intents carry an explicit tri-state per selector ([Keep], [Clear], [Set]),
// so switching to the diary does not forget the album a pending review needs.
package nav
