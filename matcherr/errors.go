// Package matcherr defines the sentinel errors returned across the engine.
// Return these unwrapped from RPC entrypoints — wrapping changes the gRPC
// code Nakama's gateway maps to an HTTP status on the wire.
package matcherr

import "github.com/heroiclabs/nakama-common/runtime"

// gRPC status codes used below, named the way errors/errors.go named them.
const (
	CodeInternal    = 13 // codes.Internal        -> 500
	CodeInvalidArg  = 3  // codes.InvalidArgument  -> 400
	CodeNotFound    = 5  // codes.NotFound         -> 404
	CodeForbidden   = 7  // codes.PermissionDenied -> 403
	CodeUnauth      = 16 // codes.Unauthenticated  -> 401
	CodeAborted     = 10 // codes.Aborted          -> 409 (optimistic-concurrency conflict)
)

var (
	// ValidationError (§7) — malformed params, illegal moves, bad trajectories.
	ErrInvalidInput         = runtime.NewError("invalid request", CodeInvalidArg)
	ErrOutOfBounds           = runtime.NewError("target out of bounds", CodeInvalidArg)
	ErrTooFar                = runtime.NewError("target exceeds movement range", CodeInvalidArg)
	ErrCellOccupied          = runtime.NewError("target cell is occupied", CodeInvalidArg)
	ErrWeaponNotEquipped     = runtime.NewError("weapon not equipped", CodeInvalidArg)
	ErrNoTrajectory          = runtime.NewError("no valid trajectory to target", CodeInvalidArg)
	ErrInsufficientResources = runtime.NewError("insufficient resources", CodeInvalidArg)
	ErrUnknownAction         = runtime.NewError("unknown action type", CodeInvalidArg)
	ErrUnknownRecipe         = runtime.NewError("unknown recipe key", CodeInvalidArg)
	ErrInteractTooFar        = runtime.NewError("interact target too far", CodeInvalidArg)
	ErrNoResourceHere        = runtime.NewError("no matching resource at target cell", CodeInvalidArg)
	ErrWallAlreadyThere      = runtime.NewError("a wall already occupies that cell", CodeInvalidArg)
	ErrPlaceTooFar           = runtime.NewError("placement exceeds recipe's max distance", CodeInvalidArg)
	ErrMarshal               = runtime.NewError("cannot marshal type", CodeInternal)
	ErrUnmarshal             = runtime.NewError("cannot unmarshal type", CodeInternal)

	// ConflictError (§7) — wrong turn, version mismatch, already-ended.
	ErrVersionMismatch = runtime.NewError("concurrent update; reload snapshot", CodeAborted)
	ErrWrongTurn       = runtime.NewError("not your turn", CodeAborted)
	ErrMatchEnded      = runtime.NewError("match has already ended", CodeAborted)

	// NotFoundError (§7)
	ErrMatchNotFound  = runtime.NewError("match not found", CodeNotFound)
	ErrRecipeNotFound = runtime.NewError("recipe not found", CodeNotFound)

	// AuthError (§7)
	ErrNoUserID        = runtime.NewError("no user ID in context", CodeUnauth)
	ErrInvalidToken    = runtime.NewError("missing or invalid bearer token", CodeUnauth)
	ErrNotParticipant  = runtime.NewError("not a participant in this match", CodeForbidden)

	// StorageError (§7) — transient I/O; orchestrator may retry once for
	// terminal-pipeline archival, otherwise surfaced as-is.
	ErrStorageRead       = runtime.NewError("could not read storage", CodeInternal)
	ErrStorageWrite      = runtime.NewError("could not write storage", CodeInternal)
	ErrTransactionFailed = runtime.NewError("atomic commit failed", CodeInternal)
	ErrInternal          = runtime.NewError("internal server error", CodeInternal)
)
