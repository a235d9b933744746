//go:build inventorydebug

package inventory

// Built with -tags inventorydebug every mutating call re-validates the
// container and panics on a broken invariant.
const invariantChecks = true
