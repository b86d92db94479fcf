package errors

import (
	"google.golang.org/grpc/status"
)

// ToGRPCError turns err into a status error. Status errors pass through.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(GetCode(err).GRPCCode(), GetMessage(err))
}
