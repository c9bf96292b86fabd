// Package skeleton holds the static, already-parsed skeletal data model:
// bundles of armatures, bones, slots, skins, display lists, meshes, bounding
// boxes, animations and texture atlases.
//
// The package does no parsing and no rendering. Callers build values
// directly and hand them to a bones.Factory.
//
// Transforms compose as matrices [a, b, c, d, tx, ty]; see [Transform.ToMatrix].
package skeleton
