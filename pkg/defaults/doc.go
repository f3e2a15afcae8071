// Package defaults centralizes timeout, rate, and size constants used
// across secenum so that operational limits live in one place.
package defaults
