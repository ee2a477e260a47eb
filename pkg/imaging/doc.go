// Package imaging decodes, resizes and re-encodes emoji images.
//
// The package handles:
//   - Format sniffing for GIF and WebP payloads, with PNG/JPEG falling
//     through to the standard library decoders
//   - Fit-inside resizing that preserves aspect ratio and never upscales
//   - Re-encoding static frames as lossy WebP and animated assets as GIF
//
// An Asset is either a single still frame or a full multi-frame GIF.
// Animated sources keep their frame timing and disposal metadata through
// the resize so the re-encoded file still plays correctly.
//
// Usage:
//
//	asset, err := imaging.Decode(payload)
//	if err != nil {
//	    return err
//	}
//	asset = imaging.FitInside(asset, 512)
//	data, ext, err := imaging.Encode(asset, 80)
package imaging
