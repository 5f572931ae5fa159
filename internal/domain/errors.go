package domain

import "errors"

var (
	// ErrEmptyCommand is returned when a request carries no usable text.
	ErrEmptyCommand = errors.New("empty command text")

	// ErrRecognitionFailure is returned when speech-to-text produced no
	// usable transcript from an audio payload.
	ErrRecognitionFailure = errors.New("speech not recognized")

	// ErrUnknownIntent is returned when no intent matches the command.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrPipelineStopped is returned when a command is submitted after the
	// assistant has shut down.
	ErrPipelineStopped = errors.New("command pipeline stopped")

	// ErrProcessingTimeout is returned when a command does not finish
	// within the pipeline deadline.
	ErrProcessingTimeout = errors.New("command processing timeout")

	// ErrCollaboratorUnavailable wraps failures from external services the
	// assistant depends on.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")
)
