package ftp

// Opcode is a request or response opcode carried in Payload.Opcode /
// Payload.ReqOpcode.
type Opcode uint8

// Request opcodes.
const (
	OpNone              Opcode = 0
	OpTerminateSession  Opcode = 1
	OpResetSessions     Opcode = 2
	OpListDirectory     Opcode = 3
	OpOpenFileRO        Opcode = 4
	OpReadFile          Opcode = 5
	OpCreateFile        Opcode = 6
	OpWriteFile         Opcode = 7
	OpRemoveFile        Opcode = 8
	OpCreateDirectory   Opcode = 9
	OpRemoveDirectory   Opcode = 10
	OpOpenFileWO        Opcode = 11
	OpTruncateFile      Opcode = 12
	OpRename            Opcode = 13
	OpCalcFileCRC32     Opcode = 14
	OpBurstReadFile     Opcode = 15
)

// Response opcodes.
const (
	OpRspAck Opcode = 128
	OpRspNak Opcode = 129
)

func (o Opcode) String() string {
	switch o {
	case OpNone:
		return "NONE"
	case OpTerminateSession:
		return "TERMINATE_SESSION"
	case OpResetSessions:
		return "RESET_SESSIONS"
	case OpListDirectory:
		return "LIST_DIRECTORY"
	case OpOpenFileRO:
		return "OPEN_FILE_RO"
	case OpReadFile:
		return "READ_FILE"
	case OpCreateFile:
		return "CREATE_FILE"
	case OpWriteFile:
		return "WRITE_FILE"
	case OpRemoveFile:
		return "REMOVE_FILE"
	case OpCreateDirectory:
		return "CREATE_DIRECTORY"
	case OpRemoveDirectory:
		return "REMOVE_DIRECTORY"
	case OpOpenFileWO:
		return "OPEN_FILE_WO"
	case OpTruncateFile:
		return "TRUNCATE_FILE"
	case OpRename:
		return "RENAME"
	case OpCalcFileCRC32:
		return "CALC_FILE_CRC32"
	case OpBurstReadFile:
		return "BURST_READ_FILE"
	case OpRspAck:
		return "RSP_ACK"
	case OpRspNak:
		return "RSP_NAK"
	default:
		return "UNKNOWN"
	}
}

// ServerResult is the error code a NAK carries in Data[0].
type ServerResult uint8

const (
	ServerSuccess                 ServerResult = 0
	ServerErrFail                 ServerResult = 1
	ServerErrFailErrno            ServerResult = 2
	ServerErrInvalidDataSize      ServerResult = 3
	ServerErrInvalidSession       ServerResult = 4
	ServerErrNoSessionsAvailable  ServerResult = 5
	ServerErrEOF                  ServerResult = 6
	ServerErrUnknownCommand       ServerResult = 7
	ServerErrFailFileExists       ServerResult = 8
	ServerErrFailFileProtected    ServerResult = 9
	ServerErrFailFileDoesNotExist ServerResult = 10
)

func (r ServerResult) String() string {
	switch r {
	case ServerSuccess:
		return "SUCCESS"
	case ServerErrFail:
		return "ERR_FAIL"
	case ServerErrFailErrno:
		return "ERR_FAIL_ERRNO"
	case ServerErrInvalidDataSize:
		return "ERR_INVALID_DATA_SIZE"
	case ServerErrInvalidSession:
		return "ERR_INVALID_SESSION"
	case ServerErrNoSessionsAvailable:
		return "ERR_NO_SESSIONS_AVAILABLE"
	case ServerErrEOF:
		return "ERR_EOF"
	case ServerErrUnknownCommand:
		return "ERR_UNKNOWN_COMMAND"
	case ServerErrFailFileExists:
		return "ERR_FAIL_FILE_EXISTS"
	case ServerErrFailFileProtected:
		return "ERR_FAIL_FILE_PROTECTED"
	case ServerErrFailFileDoesNotExist:
		return "ERR_FAIL_FILE_DOES_NOT_EXIST"
	default:
		return "UNKNOWN"
	}
}

// posixENOENT is the errno value PX4 stuffs into Data[1] of an
// ERR_FAIL_ERRNO nak when the underlying open/stat failed with ENOENT.
const posixENOENT = 2
