// Package errs defines the closed set of error kinds produced by the
// storage, server, and language layers, and their wire serialization.
package errs

// Kind classifies an [Error] into one of the machine-stable categories
// enumerated by the wire protocol. The zero value is never produced.
type Kind uint8

const (
	_ Kind = iota

	// Input validation.
	KeyTooShort
	KeyWrongFormat
	UIntParseFail
	CommandNotFound
	CommandError

	// Permission.
	PermissionFailure

	// Storage I/O.
	CheckExistsFail
	CreateDirFail
	FileWriteFail
	FileReadFail
	FileRemoveFail
	DirRemoveFail
	GetKeyFail
	DeleteKeyFail

	// Transport.
	SendFail
	RecvFail
	RecvTimeout
)

// tag is the snake_case wire name for each Kind, per spec.
var tag = map[Kind]string{
	KeyTooShort:       "key_too_short",
	KeyWrongFormat:    "key_wrong_format",
	CheckExistsFail:   "check_exists_fail",
	CreateDirFail:     "create_dir_fail",
	FileWriteFail:     "file_write_fail",
	FileReadFail:      "file_read_fail",
	FileRemoveFail:    "file_remove_fail",
	DirRemoveFail:     "dir_remove_fail",
	UIntParseFail:     "uint_parse_fail",
	SendFail:          "send_fail",
	RecvFail:          "recv_fail",
	RecvTimeout:       "recv_timeout",
	CommandNotFound:   "command_not_found",
	CommandError:      "command_error",
	PermissionFailure: "permission_failure",
	GetKeyFail:        "get_key_fail",
	DeleteKeyFail:     "delete_key_fail",
}

// String returns the snake_case wire tag for k, or "unknown" if k is not a
// recognized member of the set.
func (k Kind) String() string {
	if s, ok := tag[k]; ok {
		return s
	}
	return "unknown"
}

var message = map[Kind]string{
	KeyTooShort:       "key length must be at least two (2) characters",
	KeyWrongFormat:    "key must be alphanumeric or underscore",
	CheckExistsFail:   "unknown error while checking key",
	CreateDirFail:     "unknown error while creating key",
	FileWriteFail:     "setting key failed",
	FileReadFail:      "getting key failed",
	FileRemoveFail:    "deleting key failed",
	DirRemoveFail:     "removing a directory failed due to filesystem error",
	UIntParseFail:     "value must be a valid unsigned integer",
	SendFail:          "sending message failed",
	RecvFail:          "receiving message failed",
	RecvTimeout:       "receiving message timed out",
	CommandNotFound:   "nothing to execute",
	CommandError:      "command error",
	PermissionFailure: "you don't have permission to perform this operation",
	GetKeyFail:        "getting key failed",
	DeleteKeyFail:     "deleting key failed",
}
