// Package plan decides what the generator emits for each marked type.
//
// Planning pipeline:
//  1. Resolve the runtime identities once per Compilation
//  2. Scan and resolve the marked types of every root package
//  3. For each candidate, in parallel:
//     - Reject local and non-struct types with a diagnostic
//     - Detect the notification capabilities it already embeds
//     - Derive a property name for every declared field, skipping
//     ineligible and conflicting ones with a reason
//  4. Forward per-type diagnostics to the host reporter in candidate order
package plan
