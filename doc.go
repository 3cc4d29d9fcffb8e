// Package fontmesh turns TrueType glyph outlines into GPU-ready geometry.
//
// The package sits between a font parser and a GPU renderer. The
// [truetype] subpackage decodes a font file into canonical [Outline]
// values (points, on-/off-curve bits, contour boundaries, all in font
// units). This package flattens those outlines into polylines and builds
// the index topology a renderer needs:
//
//   - [Wireframe] emits a closed line-list per contour, suitable for
//     debug and outline rendering.
//   - [StencilCover] emits a triangle fan per contour plus a bounding-box
//     cover quad, the input geometry for the classic two-pass
//     stencil-then-cover fill (non-zero winding via increment-wrap /
//     decrement-wrap, then a cover pass gated on stencil != 0).
//
// Quadratic Beziers are flattened by de Casteljau adaptive subdivision:
// a segment is bisected until the perpendicular distance from the control
// point to the chord drops below the tolerance, or a fixed depth cap is
// reached. Flattening is order- and orientation-preserving; no contour is
// ever reversed.
//
// All geometry stays in font units. Scaling to pixels and the Y-flip
// (glyph Y grows up, screen Y grows down) happen at the GPU boundary; see
// the gpucore subpackage for the per-draw parameter record that carries
// the scale factors.
//
// # Architecture
//
//	font bytes -> truetype -> Outline -> fontmesh -> gpucore blobs -> backend
//	                                        |
//	                                     layout (pen positions)
//
// The core is deterministic: every output is an exact function of the
// outline, the tolerance, and the subdivision depth cap.
package fontmesh
