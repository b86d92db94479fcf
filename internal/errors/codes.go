package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies a failure for the transports
type Code string

// Codes in use by the game server
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

type transportCodes struct {
	http int
	grpc codes.Code
}

var byCode = map[Code]transportCodes{
	CodeOK:              {http.StatusOK, codes.OK},
	CodeInvalidArgument: {http.StatusBadRequest, codes.InvalidArgument},
	CodeNotFound:        {http.StatusNotFound, codes.NotFound},
	// acting out of turn conflicts with the game phase
	CodeFailedPrecondition: {http.StatusConflict, codes.FailedPrecondition},
	CodeInternal:           {http.StatusInternalServerError, codes.Internal},
	CodeUnavailable:        {http.StatusServiceUnavailable, codes.Unavailable},
}

func (c Code) String() string {
	return string(c)
}

// HTTPStatus is the status the game API answers with. Unknown codes are 500.
func (c Code) HTTPStatus() int {
	if t, ok := byCode[c]; ok {
		return t.http
	}
	return http.StatusInternalServerError
}

// GRPCCode is the status code used on the gRPC listener
func (c Code) GRPCCode() codes.Code {
	if t, ok := byCode[c]; ok {
		return t.grpc
	}
	return codes.Internal
}
