// Package resolve turns a size-qualified set path into a MaterialSet: the
// detected workflow, the resolution tag and one winning file per texture
// pass.
//
// # Resolution Steps
//
//  1. Split the set path into prefix and size ("/tex/Wood_2K" -> "/tex/Wood", "2K")
//  2. List candidate files whose basename starts with the prefix
//  3. Classify the workflow (METALNESS, SPECULAR or DIELECTRIC)
//  4. Assign files to pass slots, breaking ties deterministically
//  5. Validate that the critical passes of the workflow are present
//
// # Basic Usage
//
//	set, err := resolve.Resolve("/textures/Wood/Wood_2K", resolve.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if missing := set.MissingCritical(); len(missing) > 0 {
//	    fmt.Println("missing:", missing)
//	}
//
// ResolveFiles runs the same steps on an explicit file listing and performs
// no I/O, which is what the tests use.
//
// # Tie-Breaking
//
// When two files claim the same slot the resolver prefers, in order:
//   - the file whose size tag equals the requested size
//   - the 16-bit file when Options.UseSixteenBit is set
//   - the lower VAR<N> number
//   - otherwise the later file in sorted order
//
// # Status
//
// Missing passes never abort resolution. They are recorded in
// MaterialSet.Status under model.StatusMissingCritical and logged as a
// warning.
//
// # Concurrency
//
// Resolve keeps no state between calls. Independent sets can be resolved
// from separate goroutines.
package resolve
