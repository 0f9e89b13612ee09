// Package lang implements the vexpr expression front end: parsing expression
// text into a closed node-kind tree, statically examining the tree for
// variable and function usage, and evaluating it to a 3-component vector.
//
// The three passes are independent layers. Parse builds an immutable tree
// from expression source. Prepare validates the tree against a Resolver,
// binding variable and function descriptors to their sites; resolution
// failures surface here and never during traversal. Walker and UsageExaminer
// read the tree without executing it and report every call and reference
// site in pre-order. Eval computes the tree's vec.Vec3 value and assumes a
// prepared tree.
package lang
