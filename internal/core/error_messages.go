package core

// error_messages.go maps technical errors to operator-facing hints with codes.
//
// Error codes are grouped by category:
//
//	DB001-DB099   destination store rejected the data
//	NET001-NET099 the store could not be reached or refused the credential
//	MIG001-MIG099 the export file does not match the entity definition
//	FILE001-FILE099 the export file could not be opened or parsed
//
// The migration logs the formatted hint next to the raw error for every
// entity type that fails, so the operator knows what to fix before a re-run.

import (
	"fmt"
	"strings"
)

// UserMessage is the operator-facing description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Destination errors (DB001-DB008)
	// =========================================================================
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists in the destination",
			Action:  "Truncate the table or remove already migrated rows before re-running",
			Code:    "DB001",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review the export for duplicate key values",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Ensure the referenced entity type loaded successfully first",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates not-null",
		msg: UserMessage{
			Message: "A required destination column received no value",
			Action:  "Check the export for empty cells in that column",
			Code:    "DB004",
		},
	},
	{
		pattern: "invalid input syntax",
		msg: UserMessage{
			Message: "A value does not match the destination column type",
			Action:  "Compare the table schema with the field mapping",
			Code:    "DB005",
		},
	},
	{
		pattern: "could not find the",
		msg: UserMessage{
			Message: "The destination table or column does not exist",
			Action:  "Create the tables from the setup docs and reload the schema cache",
			Code:    "DB006",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "The destination table or column does not exist",
			Action:  "Create the tables from the setup docs before migrating",
			Code:    "DB006",
		},
	},
	{
		pattern: "row-level security",
		msg: UserMessage{
			Message: "Row level security rejected the insert",
			Action:  "Use the service role key, or enable RLS policies after migrating",
			Code:    "DB007",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The credential may not write to this table",
			Action:  "Use the service role key or a database owner role",
			Code:    "DB008",
		},
	},

	// =========================================================================
	// Connectivity errors (NET001-NET004)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the destination",
			Action:  "Check the store URL and that the project is running",
			Code:    "NET001",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "The destination host could not be resolved",
			Action:  "Check the store URL for typos",
			Code:    "NET001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The destination did not answer in time",
			Action:  "Retry, or lower MIGRATION_BATCH_SIZE",
			Code:    "NET002",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "The destination rejected the credential",
			Action:  "Check SUPABASE_SERVICE_KEY",
			Code:    "NET003",
		},
	},
	{
		pattern: "jwt",
		msg: UserMessage{
			Message: "The destination rejected the credential",
			Action:  "Check SUPABASE_SERVICE_KEY",
			Code:    "NET003",
		},
	},
	{
		pattern: "password authentication failed",
		msg: UserMessage{
			Message: "The database rejected the credential",
			Action:  "Check DATABASE_URL",
			Code:    "NET003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The migration was interrupted",
			Action:  "Check which tables received rows before re-running",
			Code:    "NET004",
		},
	},

	// =========================================================================
	// Export shape errors (MIG001-MIG002)
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "An expected column is missing from the export",
			Action:  "Re-export the collection, headers must match exactly",
			Code:    "MIG001",
		},
	},
	{
		pattern: `bare "`,
		msg: UserMessage{
			Message: "A quote character appears inside an unquoted cell",
			Action:  "Open the export and repair the reported row",
			Code:    "MIG002",
		},
	},

	// =========================================================================
	// File errors (FILE001-FILE002)
	// =========================================================================
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The export file was not found",
			Action:  "Place the CSV in MIGRATION_DIR or set its name in the manifest",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "The export is not a valid CSV",
			Action:  "Check for unbalanced quotes around the reported line",
			Code:    "FILE002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Inspect the logged error before re-running",
	Code:    "ERR000",
}

// MapError converts a technical error to an operator-facing message.
// It searches the known patterns (case-insensitive) and returns the first
// match, or the ERR000 fallback.
//
// Example:
//
//	err := errors.New("duplicate key violation")
//	msg := MapError(err)
//	// msg.Code == "DB001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted hint: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsKnown reports whether err matches a specific pattern rather than ERR000.
func IsKnown(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
