package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference. Codes are grouped by category:
//
// # Dataset Errors (DATA001-DATA099)
//
//	DATA001 - Dataset malformed: the snapshot could not be decoded or a record
//	          failed shape validation
//	          Patterns: "invalid dataset", "invalid record"
//
//	DATA002 - Duplicate id: two dataset entries share an id
//	          Patterns: "duplicate id"
//
// # Argument Errors (ARG001-ARG099)
//
//	ARG001 - Invalid id: the identifier is not exactly 12 digits
//	         Patterns: "invalid id"
//
//	ARG002 - Invalid criteria: a search parameter has the wrong type
//	         Patterns: "invalid criteria"
//
//	ARG003 - Missing id: no identifier was supplied
//	         Patterns: "missing id"
//
//	ARG000 - Any other ErrInvalidArgument
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Not found: no record for a well-formed id
//	         Patterns: "record not found"
//
// # System Errors (SYS001-SYS099, REQ001-REQ099, RATE001)
//
//	SYS001  - Busy: every scan slot is occupied
//	REQ001  - Request cancelled
//	REQ002  - Request timeout
//	REQ003  - Method not allowed
//	RATE001 - Too many requests from this client
//
// # Default Error (ERR000)
//
// Errors carrying one of the package sentinels are matched with errors.Is
// first, in table order, so dataset errors (which wrap the id error) win over
// argument errors. Argument errors echo client input, so they never reach the
// text patterns. Everything else is matched case-insensitively with
// strings.Contains and the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	sentinel error
	pattern  string
	msg      UserMessage
}

var errorPatterns = []errorPattern{
	// Dataset
	{
		sentinel: ErrInvalidDataset,
		pattern:  "invalid dataset",
		msg: UserMessage{
			Message: "The dataset snapshot could not be read",
			Action:  "Regenerate the snapshot with the reduce command",
			Code:    "DATA001",
		},
	},
	{
		sentinel: ErrInvalidRecord,
		pattern:  "invalid record",
		msg: UserMessage{
			Message: "The dataset contains a malformed record",
			Action:  "Check that every record has a 12-digit id, name, city and state",
			Code:    "DATA001",
		},
	},
	{
		sentinel: ErrDuplicateID,
		pattern:  "duplicate id",
		msg: UserMessage{
			Message: "The dataset contains a duplicate id",
			Action:  "Remove the duplicate entry and reload",
			Code:    "DATA002",
		},
	},

	// Arguments
	{
		sentinel: ErrMissingID,
		pattern:  "missing id",
		msg: UserMessage{
			Message: "Aadhaar number is required as query parameter",
			Action:  "Pass the number as ?aadhaar=<12 digits>",
			Code:    "ARG003",
		},
	},
	{
		sentinel: ErrInvalidID,
		pattern:  "invalid id",
		msg: UserMessage{
			Message: "Aadhaar number must be exactly 12 digits",
			Action:  "Check the number and try again",
			Code:    "ARG001",
		},
	},
	{
		sentinel: ErrInvalidCriteria,
		pattern:  "invalid criteria",
		msg: UserMessage{
			Message: "A search parameter has an invalid value",
			Action:  "Use whole numbers for minAge, maxAge and limit",
			Code:    "ARG002",
		},
	},

	// Records
	{
		sentinel: ErrNotFound,
		pattern:  "record not found",
		msg: UserMessage{
			Message: "No data found for the provided Aadhaar number",
			Action:  "Verify the number or pick one from a random sample",
			Code:    "REC001",
		},
	},

	// System
	{
		sentinel: ErrTooManyScans,
		pattern:  "too many concurrent scans",
		msg: UserMessage{
			Message: "The server is busy",
			Action:  "Please wait a moment and try again",
			Code:    "SYS001",
		},
	},
	{
		sentinel: context.Canceled,
		pattern:  "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		sentinel: context.DeadlineExceeded,
		pattern:  "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow the query or try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "method not allowed",
		msg: UserMessage{
			Message: "Only GET requests are supported",
			Action:  "Send the request with GET",
			Code:    "REQ003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var invalidArgumentMessage = UserMessage{
	Message: "An argument has an invalid value",
	Action:  "Check the command usage and try again",
	Code:    "ARG000",
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// Returns an empty UserMessage for a nil error and ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.sentinel != nil && errors.Is(err, ep.sentinel) {
			return ep.msg
		}
	}
	if errors.Is(err, ErrInvalidArgument) {
		return invalidArgumentMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message. Generic
// argument errors (ARG000) are not: their detail is only in the error text.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	code := MapError(err).Code
	return code != defaultMessage.Code && code != invalidArgumentMessage.Code
}
