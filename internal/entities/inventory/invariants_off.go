//go:build !inventorydebug

package inventory

const invariantChecks = false
