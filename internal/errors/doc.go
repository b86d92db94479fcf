// Package errors provides structured errors for the onemillion game server.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional Meta. Codes map onto HTTP statuses for the game API and onto gRPC
// codes for the health endpoint.
//
// # Basic Usage
//
//	err := errors.NotFound("game not found").WithMeta("game_id", id)
//	err := errors.FailedPreconditionf("it is not the %s's turn", slot)
//
// Wrapping keeps the code of the wrapped error:
//
//	damage, err := o.engine.RollPlayerAttack(ctx, attacker)
//	if err != nil {
//	    return nil, errors.Wrap(err, "failed to roll attack")
//	}
//
// # Taxonomy used by the battle engine
//
//   - InvalidArgument: unknown slot, unknown difficulty, malformed request.
//     Rejected before any state is mutated.
//   - FailedPrecondition: an action arrived out of turn or in the wrong phase.
//   - NotFound: the game does not exist.
//   - Internal: the dice roller or a store failed.
//
// Decorative image fetch failures never surface as errors; the caller
// downgrades them to a fallback image and a status message.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateEnum("mitigation", cfg.Mitigation, []string{"defense", "halve"}, vb)
//	errors.ValidateRange("http_port", cfg.HTTPPort, 1, 65535, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
