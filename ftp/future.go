package ftp

// This file holds the blocking counterparts spec.md §6.4 requires for
// every *_async entry point: "a trivial promise/future adapter." Each
// wraps its async call in a channel and turns any non-Success terminal
// result into an *Error, so callers that don't want a callback-based
// style can use ordinary Go error handling.

// Download blocks until the transfer finishes. progress may be nil.
func (c *Client) Download(remotePath, localFolder string, progress func(ProgressData)) error {
	done := make(chan error, 1)
	c.DownloadAsync(remotePath, localFolder, func(result Result, p ProgressData) {
		if result == ResultNext {
			if progress != nil {
				progress(p)
			}
			return
		}
		done <- resultToError(result, OpOpenFileRO)
	})
	return <-done
}

// Upload blocks until the transfer finishes. progress may be nil.
func (c *Client) Upload(localFile, remoteFolder string, progress func(ProgressData)) error {
	done := make(chan error, 1)
	c.UploadAsync(localFile, remoteFolder, func(result Result, p ProgressData) {
		if result == ResultNext {
			if progress != nil {
				progress(p)
			}
			return
		}
		done <- resultToError(result, OpOpenFileWO)
	})
	return <-done
}

// ListDirectory blocks until the listing completes.
func (c *Client) ListDirectory(path string) ([]string, error) {
	type outcome struct {
		entries []string
		err     error
	}
	done := make(chan outcome, 1)
	c.ListDirectoryAsync(path, func(result Result, entries []string) {
		done <- outcome{entries, resultToError(result, OpListDirectory)}
	})
	out := <-done
	return out.entries, out.err
}

// CreateDirectory blocks until CREATE_DIRECTORY completes.
func (c *Client) CreateDirectory(path string) error {
	return c.blockingResultCall(OpCreateDirectory, func(cb ResultCallback) { c.CreateDirectoryAsync(path, cb) })
}

// RemoveDirectory blocks until REMOVE_DIRECTORY completes.
func (c *Client) RemoveDirectory(path string) error {
	return c.blockingResultCall(OpRemoveDirectory, func(cb ResultCallback) { c.RemoveDirectoryAsync(path, cb) })
}

// RemoveFile blocks until REMOVE_FILE completes.
func (c *Client) RemoveFile(path string) error {
	return c.blockingResultCall(OpRemoveFile, func(cb ResultCallback) { c.RemoveFileAsync(path, cb) })
}

// Rename blocks until RENAME completes.
func (c *Client) Rename(from, to string) error {
	return c.blockingResultCall(OpRename, func(cb ResultCallback) { c.RenameAsync(from, to, cb) })
}

// Reset blocks until RESET_SESSIONS completes.
func (c *Client) Reset() error {
	return c.blockingResultCall(OpResetSessions, func(cb ResultCallback) { c.ResetAsync(cb) })
}

// AreFilesIdentical blocks until both CRC32s are known and compared.
func (c *Client) AreFilesIdentical(localPath, remotePath string) (bool, error) {
	type outcome struct {
		identical bool
		err       error
	}
	done := make(chan outcome, 1)
	c.AreFilesIdenticalAsync(localPath, remotePath, func(result Result, identical bool) {
		done <- outcome{identical, resultToError(result, OpCalcFileCRC32)}
	})
	out := <-done
	return out.identical, out.err
}

func (c *Client) blockingResultCall(opcode Opcode, start func(ResultCallback)) error {
	done := make(chan error, 1)
	start(func(result Result) { done <- resultToError(result, opcode) })
	return <-done
}

func resultToError(result Result, opcode Opcode) error {
	if result == ResultSuccess {
		return nil
	}
	return NewOpcodeError(result, "", opcode)
}
