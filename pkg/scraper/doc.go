// Package scraper provides the core functionality for extracting custom
// emojis from Discord servers.
//
// The scraper package orchestrates the entire extraction process,
// coordinating between the browser session, the scroll collector, and the
// download pipeline.
//
// Architecture:
//
// The Scraper struct is the main component that:
//   - Opens and authenticates the Discord browser session
//   - Walks every configured collection in order
//   - Drives the Collector, which scrolls one picker section at a time
//   - Hands the collected descriptors to the pipeline for download
//   - Provides progress tracking and notifications
//
// The Collector scans the emoji picker's scroll region round by round. A
// round scans the rendered thumbnails, normalizes their CDN URLs, and
// dedupes them by source URL so incremental rendering never produces
// duplicates. The scan ends when the next section scrolls into view, when
// several consecutive rounds surface nothing new, or when the round cap
// is hit, in which case the result is flagged partial.
//
// Usage:
//
//	cfg, err := config.Load("", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := scraper.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := s.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Failure policy:
//
// Authentication and navigation failures abort the run. A collection
// whose section cannot be located is logged and skipped. Individual
// emojis that fail to download or convert are logged and skipped without
// stopping the rest of their collection.
package scraper
