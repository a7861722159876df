package texture

import "image"

// InputRegion returns the part of the source needed to produce requested.
//
// Every output pixel reads a window of half-extent radius around itself and,
// for each window site, the neighbor displaced by offset. The needed input is
// therefore the union of the padded request and the padded request shifted by
// offset, clipped to bounds.
//
// Arguments:
//   - requested: The output region.
//   - radius: Window half-extent per axis.
//   - offset: Co-occurrence displacement.
//   - bounds: The full image bounds.
//
// Returns:
//   - image.Rectangle: The clipped input region, empty when requested is empty
//     or does not touch bounds.
//
// @example
//
//	in := texture.InputRegion(image.Rect(0, 0, 64, 64), image.Pt(2, 2), image.Pt(1, 0), img.Bounds())
func InputRegion(requested image.Rectangle, radius, offset image.Point, bounds image.Rectangle) image.Rectangle {
	if requested.Empty() {
		return image.Rectangle{}
	}
	padded := image.Rectangle{
		Min: requested.Min.Sub(radius),
		Max: requested.Max.Add(radius),
	}
	return padded.Union(padded.Add(offset)).Intersect(bounds)
}

// window returns the clipped window of the pixel at center.
func window(center, radius image.Point, bounds image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: center.Sub(radius),
		Max: center.Add(radius).Add(image.Pt(1, 1)),
	}.Intersect(bounds)
}
