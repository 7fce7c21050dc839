package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNetwork represents social network (people and friendships) errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeDiscord represents Discord-related errors
	ErrorTypeDiscord ErrorType = "discord"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrType returns the error category. Promoted to every typed error embedding *BaseError.
func (e *BaseError) ErrType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Network Errors

// ErrInvalidName is returned when a person name is empty or blank
var ErrInvalidName = NewBaseError(ErrorTypeNetwork, "person name must not be empty", nil)

// ErrSelfFriendship is returned when a person is asked to befriend themselves
var ErrSelfFriendship = NewBaseError(ErrorTypeNetwork, "a person cannot be friends with themselves", nil)

// ErrPersonAlreadyExists is returned when adding a name that is already in the network
type ErrPersonAlreadyExists struct {
	*BaseError
	Name string
}

func NewPersonAlreadyExists(name string) *ErrPersonAlreadyExists {
	return &ErrPersonAlreadyExists{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("%s already exists in the network", name), nil),
		Name:      name,
	}
}

// ErrPersonNotFound is returned when one or more names are not in the network
type ErrPersonNotFound struct {
	*BaseError
	Names []string
}

func NewPersonNotFound(names ...string) *ErrPersonNotFound {
	return &ErrPersonNotFound{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("not found in the network: %s", strings.Join(names, ", ")), nil),
		Names:     names,
	}
}

// ErrInvalidAttribute is returned when an attribute value cannot be represented
type ErrInvalidAttribute struct {
	*BaseError
	Key    string
	Reason string
}

func NewInvalidAttribute(key, reason string) *ErrInvalidAttribute {
	return &ErrInvalidAttribute{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("invalid attribute %q: %s", key, reason), nil),
		Key:       key,
		Reason:    reason,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Discord Errors

// ErrDiscordMessageSendFailed is returned when sending a Discord message fails
type ErrDiscordMessageSendFailed struct {
	*BaseError
	ChannelID string
}

func NewDiscordMessageSendFailed(channelID string, err error) *ErrDiscordMessageSendFailed {
	return &ErrDiscordMessageSendFailed{
		BaseError: NewBaseError(ErrorTypeDiscord, "failed to send message", err),
		ChannelID: channelID,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type typedError interface {
	error
	ErrType() ErrorType
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	var te typedError
	if stderrors.As(err, &te) {
		return te.ErrType() == errType
	}
	return false
}

// IsNotFound reports whether err is an ErrPersonNotFound
func IsNotFound(err error) bool {
	var nf *ErrPersonNotFound
	return stderrors.As(err, &nf)
}

// IsAlreadyExists reports whether err is an ErrPersonAlreadyExists
func IsAlreadyExists(err error) bool {
	var ae *ErrPersonAlreadyExists
	return stderrors.As(err, &ae)
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	// Context errors are not retryable
	if IsErrorType(err, ErrorTypeContext) {
		return false
	}
	// Network errors describe caller input; retrying changes nothing
	if IsErrorType(err, ErrorTypeNetwork) {
		return false
	}
	// Graph connection errors are retryable
	if IsErrorType(err, ErrorTypeGraph) {
		return true
	}
	return false
}
