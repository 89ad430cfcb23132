package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeUpstreamFetch = "UPSTREAM_FETCH_ERROR"
	CodeParse         = "PARSE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeCache         = "CACHE_ERROR"
)

// SoccerError is the common base for every classified error in the module.
// Message is safe to show to API consumers; Context and Cause are operator-only.
type SoccerError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *SoccerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SoccerError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message without the cause chain.
func (e *SoccerError) UserMessage() string {
	return e.Message
}

func NewSoccerError(message, code string, statusCode int, context map[string]any) *SoccerError {
	return &SoccerError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *SoccerError) WithCause(cause error) *SoccerError {
	e.Cause = cause
	return e
}

// UpstreamFetchError means a remote page or endpoint could not be retrieved.
type UpstreamFetchError struct {
	*SoccerError
	Source string
	URL    string
	Status int
}

func NewUpstreamFetchError(source, url string, status int, cause error) *UpstreamFetchError {
	return &UpstreamFetchError{
		SoccerError: &SoccerError{
			Message:    fmt.Sprintf("failed to retrieve data from %s", source),
			Code:       CodeUpstreamFetch,
			StatusCode: 502,
			Context: map[string]any{
				"source": source,
				"url":    url,
				"status": status,
			},
			Cause: cause,
		},
		Source: source,
		URL:    url,
		Status: status,
	}
}

// ParseError means a fetched document lacked a required structural element.
type ParseError struct {
	*SoccerError
	Source  string
	Element string
}

func NewParseError(source, element string, cause error) *ParseError {
	return &ParseError{
		SoccerError: &SoccerError{
			Message:    fmt.Sprintf("unexpected page structure from %s", source),
			Code:       CodeParse,
			StatusCode: 500,
			Context: map[string]any{
				"source":  source,
				"element": element,
			},
			Cause: cause,
		},
		Source:  source,
		Element: element,
	}
}

type NotFoundError struct {
	*SoccerError
	Kind string
	Name string
}

func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{
		SoccerError: &SoccerError{
			Message:    fmt.Sprintf("%s not found: %s", kind, name),
			Code:       CodeNotFound,
			StatusCode: 404,
			Context: map[string]any{
				"kind": kind,
				"name": name,
			},
		},
		Kind: kind,
		Name: name,
	}
}

type ValidationError struct {
	*SoccerError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		SoccerError: &SoccerError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*SoccerError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		SoccerError: &SoccerError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// Classified returns the first SoccerError found in err's chain.
func Classified(err error) (*SoccerError, bool) {
	if err == nil {
		return nil, false
	}

	var upstream *UpstreamFetchError
	if stderrors.As(err, &upstream) {
		return upstream.SoccerError, true
	}
	var parse *ParseError
	if stderrors.As(err, &parse) {
		return parse.SoccerError, true
	}
	var notFound *NotFoundError
	if stderrors.As(err, &notFound) {
		return notFound.SoccerError, true
	}
	var validation *ValidationError
	if stderrors.As(err, &validation) {
		return validation.SoccerError, true
	}
	var cacheErr *CacheError
	if stderrors.As(err, &cacheErr) {
		return cacheErr.SoccerError, true
	}
	var base *SoccerError
	if stderrors.As(err, &base) {
		return base, true
	}
	return nil, false
}

// KindOf returns the error code of err, or "" when err is not classified.
func KindOf(err error) string {
	if se, ok := Classified(err); ok {
		return se.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target *UpstreamFetchError
	return stderrors.As(err, &target)
}

func IsParse(err error) bool {
	var target *ParseError
	return stderrors.As(err, &target)
}
