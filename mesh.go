package fontmesh

// WireframeMesh is flattened outline geometry indexed as a line list.
// Vertices are interleaved (x, y) float32 pairs in font units, ready for
// upload as a vertex buffer; LineIndices pairs are line-list indices that
// close every contour.
type WireframeMesh struct {
	Vertices    []float32
	LineIndices []uint32
}

// StencilCoverMesh is flattened outline geometry prepared for the two-pass
// stencil-then-cover fill.
//
// FanIndices triangulate each contour as a fan anchored at the contour's
// first point. Rendered with increment-wrap on front faces and
// decrement-wrap on back faces, the fans accumulate the winding number of
// every pixel in the stencil buffer; the contour orientation encoded in
// the font (outer vs counter) produces the signs, so an "O" scores 0
// inside its hole.
//
// CoverVertices are the four corners of the glyph's bounding box
// (optionally padded) and CoverIndices its two triangles; the cover pass
// draws them with the stencil test `!= 0` to shade the interior.
type StencilCoverMesh struct {
	Vertices      []float32
	FanIndices    []uint32
	CoverVertices []float32
	CoverIndices  []uint32
}

// Wireframe flattens the outline and builds a closed line list per
// contour. An empty outline yields empty buffers; Wireframe never fails.
func Wireframe(o *Outline, opts Options) WireframeMesh {
	contours := Flatten(o, opts)
	var m WireframeMesh
	m.Vertices = packContours(contours)
	base := uint32(0)
	for _, c := range contours {
		n := uint32(len(c))
		if n == 0 {
			continue
		}
		for i := base; i < base+n-1; i++ {
			m.LineIndices = append(m.LineIndices, i, i+1)
		}
		m.LineIndices = append(m.LineIndices, base+n-1, base)
		base += n
	}
	return m
}

// StencilCover flattens the outline and builds the fan triangulation plus
// the bounding-box cover quad. An empty outline yields empty buffers;
// StencilCover never fails.
func StencilCover(o *Outline, opts Options) StencilCoverMesh {
	opts = opts.withDefaults()
	contours := Flatten(o, opts)
	var m StencilCoverMesh
	m.Vertices = packContours(contours)
	if len(m.Vertices) == 0 {
		return m
	}

	base := uint32(0)
	for _, c := range contours {
		n := uint32(len(c))
		for i := base + 1; i+1 < base+n; i++ {
			m.FanIndices = append(m.FanIndices, base, i, i+1)
		}
		base += n
	}

	bounds := contourBounds(contours).Expand(opts.CoverPad)
	m.CoverVertices = []float32{
		float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Max.X), float32(bounds.Min.Y),
		float32(bounds.Max.X), float32(bounds.Max.Y),
		float32(bounds.Min.X), float32(bounds.Max.Y),
	}
	m.CoverIndices = []uint32{0, 1, 2, 0, 2, 3}
	return m
}

// packContours concatenates flattened contours into one interleaved
// float32 vertex array.
func packContours(contours []Contour) []float32 {
	total := 0
	for _, c := range contours {
		total += len(c)
	}
	if total == 0 {
		return nil
	}
	v := make([]float32, 0, total*2)
	for _, c := range contours {
		for _, p := range c {
			v = append(v, float32(p.X), float32(p.Y))
		}
	}
	return v
}

// contourBounds computes the bounding box over all flattened points.
func contourBounds(contours []Contour) Rect {
	first := true
	var r Rect
	for _, c := range contours {
		for _, p := range c {
			if first {
				r = Rect{Min: p, Max: p}
				first = false
				continue
			}
			r = r.ExtendBy(p)
		}
	}
	return r
}
