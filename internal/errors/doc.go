// Package errors provides the structured error type used across rpg-inventory.
//
// Every error carries a Code, a human readable message, an optional cause and
// optional metadata:
//
//	err := errors.NotFound("stack not found").
//	    WithMeta("stack_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Load(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load inventory")
//	}
//
// # Container taxonomy
//
// The inventory container reports its failures with four codes:
//   - InvalidArgument: nil entry, non-positive quantity or capacity
//   - NotFound: unknown stack ID, empty slot or index out of range
//   - Full: no free slot when one was required
//   - Inconsistent: a broken invariant; treat as a bug, not a recoverable state
//
// Persistence adds DataLoss for malformed or corrupted payloads and
// Internal/Unavailable for storage failures.
//
// # gRPC Integration
//
// Services embedding a container convert errors at their boundary:
//
//	return nil, errors.ToGRPCError(err)
package errors
