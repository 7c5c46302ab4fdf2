package rubiksify

import "errors"

// Sentinel errors for the rubiksify package and its clients.
var (
	// Remote endpoint errors
	ErrTransport = errors.New("rubiksify: transport failure")
	ErrProtocol  = errors.New("rubiksify: endpoint reported failure")

	// Input errors
	ErrValidation = errors.New("rubiksify: invalid input")

	// Pipeline errors
	ErrInvalidTransition = errors.New("rubiksify: invalid pipeline transition")
	ErrBusy              = errors.New("rubiksify: another operation is in flight")

	// Verification errors
	ErrGeneratorMismatch = errors.New("rubiksify: generator does not produce cube definition")
)
