package services

import "errors"

var (
	// ErrApplicationNotFound terminates a screening run in the load phase.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrJobNotFound terminates a screening run in the load phase.
	ErrJobNotFound = errors.New("job posting not found")
	// ErrScoringFailed marks a fatal scoring step: model unreachable or the
	// response could not be parsed. Nothing is persisted.
	ErrScoringFailed = errors.New("screening analysis failed")
	// ErrPersistFailed marks a fatal analysis write; the verdict is lost.
	ErrPersistFailed = errors.New("failed to save analysis")
	// ErrNoTextExtracted is returned by document analysis when none of the
	// supplied files yielded any text.
	ErrNoTextExtracted = errors.New("could not extract text from documents")
)
