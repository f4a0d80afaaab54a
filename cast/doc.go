// Package cast provides lenient conversions to basic types.
//
// Conversions go through the [convert] engine first, with checked integer
// conversions backed by [safemath] to catch overflows, underflows and
// silent truncation.
//
// Inputs the engine has no rule for, such as numeric strings, fall back to
// [cast] for flexible casting. An overflow is never retried with the
// fallback.
package cast
