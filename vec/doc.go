// Package vec provides the 3-component double-precision value type produced
// by evaluating vexpr expressions.
//
// In reality a Vec3 is a vector with its base point at the global origin;
// points and vectors share the one representation because points cannot be
// meaningfully added or subtracted on their own.
package vec
