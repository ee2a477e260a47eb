// Package discord drives the Discord web client and its CDN.
//
// This package includes:
//   - A browser Session (go-rod) that logs in, navigates to a server and
//     opens the emoji picker, exposing the scroll/scan primitives the
//     collector consumes
//   - A configurable HTTP client for downloading emoji assets from the CDN
//   - Descriptor models and helpers for normalizing emoji URLs and labels
//
// Example usage:
//
//	client := discord.NewClient(30*time.Second, nil)
//
//	url, animated, err := discord.NormalizeEmojiURL(thumb.URL, 512)
//	if err != nil {
//	    // thumbnail URL was junk, skip the cell
//	}
//
//	data, err := client.FetchEmoji(url)
//	if err != nil {
//	    if e, ok := err.(*errors.Error); ok {
//	        switch e.Type {
//	        case errors.ErrorTypeRateLimit:
//	            // CDN is throttling
//	        case errors.ErrorTypeNotFound:
//	            // emoji was deleted since collection
//	        }
//	    }
//	}
//	_ = animated
//	_ = data
package discord
