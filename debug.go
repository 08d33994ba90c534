//go:build bridgedebug

package wirebridge

// debugAsserts enables the consistency checks proving that native encoder
// failures and sink failures always correspond. Build with -tags bridgedebug
// to turn contract violations into immediate panics; without the tag the
// checks compile away and the bridge degrades to best-effort propagation.
const debugAsserts = true
