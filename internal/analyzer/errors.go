package analyzer

import (
	"fmt"
	"strings"
)

const (
	// ConnectivityMessage is shown to the operator for every transport failure.
	ConnectivityMessage = "Failed to connect to the server. Please try again."
	// GenericServiceMessage is shown when the service reports a failure without details.
	GenericServiceMessage = "An error occurred during analysis"
)

// TransportError means no usable response was obtained: the call failed or
// the body could not be interpreted.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) OperatorMessage() string {
	return ConnectivityMessage
}

// ServiceError is a well-formed response with success not set to true.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service (status %d): %s", e.Status, e.OperatorMessage())
}

func (e *ServiceError) OperatorMessage() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return GenericServiceMessage
}
