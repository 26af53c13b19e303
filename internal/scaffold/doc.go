// Package scaffold writes a generated project to disk.
//
// The work happens in three sequential stages:
//
//  1. The target root is created.
//  2. EnsureFolders creates the fixed folder skeleton.
//  3. Materializer.Materialize resolves every manifest entry and writes it.
//
// Scaffolder.Run drives all three. Nothing runs concurrently and nothing is
// retried; the first error aborts the run and may leave a partial tree,
// which the user is expected to delete before trying again.
//
// Existing files at manifest paths are overwritten without merging or
// backup. Files that are not in the manifest are left alone.
package scaffold
