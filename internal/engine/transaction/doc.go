// Package transaction defines the atomic edit model for the engine.
//
// A Change is one primitive edit: insert, delete, or replace, addressed
// by byte offsets into the text as it was before the enclosing set
// applied. A ChangeSet is an ordered batch of Changes applied atomically:
// changes execute in ascending order of their declared start position,
// and a running length delta shifts each declared position by the net
// growth of the changes that executed before it. A Transaction wraps a
// ChangeSet with opaque metadata and, once applied, carries the inverse
// ChangeSet that restores the pre-apply text exactly.
//
// Inverses are captured lazily. The text removed by a delete or replace
// is read from the document at the moment the change executes, after
// earlier changes in the same set have already run, so inverses stay
// correct no matter how the set was composed. Undo cost is proportional
// to the edited region, never to the document.
//
// Validation is all-or-nothing: a set whose changes exceed the document
// bounds or overlap after offset adjustment is rejected before any text
// is touched.
package transaction
