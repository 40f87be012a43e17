// Package scan provides the library scanning logic: it finds every
// material set below a root folder and resolves them all.
//
// # Manager
//
// The Manager coordinates the whole scan:
//
//  1. Walk the library root, skipping hidden folders
//  2. Group the files of each folder into size-qualified set paths
//  3. Resolve the sets concurrently
//  4. Report missing critical passes per set
//
// # Basic Usage
//
//	manager := scan.NewManager(settings, func(event scan.ProgressEvent) {
//	    fmt.Println(event.Message)
//	}, scan.WithLogger(logger))
//
//	if _, err := manager.Discover(ctx, "/textures"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.ResolveAll(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, set := range manager.Results() {
//	    fmt.Println(set.SetName, set.Workflow)
//	}
//
// # Concurrency
//
// Sets are resolved in parallel, limited by settings.MaxConcurrentSets.
// Each resolve owns its result, so no locking is needed beyond collecting
// the results.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package scan
