package ftp

import "testing"

func TestTranslateServerResult(t *testing.T) {
	tests := []struct {
		in   ServerResult
		want Result
	}{
		{ServerSuccess, ResultSuccess},
		{ServerErrFailFileExists, ResultFileExists},
		{ServerErrFailFileProtected, ResultFileProtected},
		{ServerErrUnknownCommand, ResultUnsupported},
		{ServerErrFailFileDoesNotExist, ResultFileDoesNotExist},
		{ServerErrFail, ResultProtocolError},
		{ServerErrInvalidDataSize, ResultProtocolError},
		{ServerErrInvalidSession, ResultProtocolError},
		{ServerErrNoSessionsAvailable, ResultProtocolError},
		{ServerErrEOF, ResultProtocolError},
	}
	for _, tt := range tests {
		if got := translateServerResult(tt.in); got != tt.want {
			t.Errorf("translateServerResult(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResultFromNakRemapsErrnoENOENT(t *testing.T) {
	p := &Payload{Size: 2}
	p.Data[0] = byte(ServerErrFailErrno)
	p.Data[1] = posixENOENT

	if got := resultFromNak(p); got != ResultFileDoesNotExist {
		t.Errorf("resultFromNak = %v, want ResultFileDoesNotExist", got)
	}
}

func TestResultFromNakOtherErrnoIsProtocolError(t *testing.T) {
	p := &Payload{Size: 2}
	p.Data[0] = byte(ServerErrFailErrno)
	p.Data[1] = 13 // EACCES

	if got := resultFromNak(p); got != ResultProtocolError {
		t.Errorf("resultFromNak = %v, want ResultProtocolError", got)
	}
}

func TestResultFromNakEmptyDataIsProtocolError(t *testing.T) {
	p := &Payload{Size: 0}
	if got := resultFromNak(p); got != ResultProtocolError {
		t.Errorf("resultFromNak = %v, want ResultProtocolError", got)
	}
}
