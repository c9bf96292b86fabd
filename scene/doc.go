// Package scene is the retained-mode 2D host that armatures render into.
//
// It provides a flat [Node] tree with affine transforms, sprite nodes backed
// by atlas [Texture] regions, triangle meshes drawn with DrawTriangles, vector
// [Graphics] nodes used for debug overlays, and a per-frame [Ticker].
//
// # Quick start
//
//	s := scene.NewScene()
//	// ... add nodes ...
//	scene.Run(s, scene.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Transforms
//
// Matrices are [6]float64{a, b, c, d, tx, ty}:
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// A node is driven either by its decomposed fields (X, Y, Rotation, ScaleX, ScaleY) or by a
// full matrix set with [Node.SetLocalMatrix].
//
// The scene graph is single-threaded. All nodes must be created and mutated
// on the Ebitengine update goroutine.
package scene
