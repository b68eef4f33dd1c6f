// Package publish moves consolidated documents to their stable, final
// location.
//
// Publication is keyed by document id and replaces any prior content for
// that id entirely: the new tree is populated in a hidden temp directory
// next to the final one, the old tree is removed, and the temp directory
// is renamed into place. Finalizer invocations for one id are serialized
// with a per-id lock, so readers of final/<id> observe either the complete
// prior version or the complete new version.
package publish
