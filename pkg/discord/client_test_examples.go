package discord

// This file contains examples of how to properly mock the CDN client for
// testing. The key insight is that we should mock at the HTTP transport
// level rather than trying to override URLs, since the normalization
// functions always produce absolute CDN URLs.

/*
Example 1: Basic mocking with mockRoundTripper

func TestMyFeature(t *testing.T) {
    log := logger.NewTestLogger()

    client := NewClient(30*time.Second, log)
    client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
        if req.URL.Path == "/emojis/1234.webp" {
            return newResponse(req, http.StatusOK, webpFixture), nil
        }
        return newResponse(req, http.StatusNotFound, nil), nil
    })

    data, err := client.FetchEmoji("https://cdn.discordapp.com/emojis/1234.webp?size=512")
    // assert on data/err
}

Example 2: Simulating CDN throttling

    client.httpClient = newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
        return newResponse(req, http.StatusTooManyRequests, nil), nil
    })

    _, err := client.FetchEmoji(url)
    if errors.TypeOf(err) == errors.ErrorTypeRateLimit {
        // throttled
    }

Example 3: Driving the collector without a browser

The collector does not need this client at all, it consumes the
PickerSession interface from pkg/scraper. Implement that interface with
canned Thumbnail slices per round to script any scroll behavior, see the
fake session in pkg/scraper's tests.
*/
