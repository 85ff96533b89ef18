// Package download runs song records through the pipeline: search,
// fetch, placement and tagging.
//
// # Manager
//
// The Manager coordinates the whole process for each record:
//
//  1. Skip the record if its destination file already exists
//  2. Build a query and select a video (youtube.Selector)
//  3. Fetch and transcode the audio into the work directory (Fetcher)
//  4. Move the single produced file into place and tag it (Placer)
//  5. Generate album playlists (optional)
//
// # Basic Usage
//
//	manager, err := download.NewManager(ctx, settings, download.Components{}, func(e event.Event) {
//	    fmt.Println(e.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.Preflight(); err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := manager.Import(ctx, records)
//
// # Concurrency
//
// Records are processed strictly one after another. The work directory is
// shared between records: it must be free of audio files before a fetch
// and hold exactly one afterwards.
//
// # Retry Logic
//
// Failed fetches are retried up to settings.Attempts times, waiting
// settings.BackoffSeconds[i] after failure i. The waits honor context
// cancellation.
package download
