package ftp

// ProgressData accompanies a ResultNext callback invocation.
type ProgressData struct {
	BytesTransferred uint32
	TotalBytes       uint32
}

// ResultCallback is the terminal callback shape for operations that
// don't return a value: mkdir, rmdir, rm, rename, reset.
type ResultCallback func(result Result)

// TransferCallback is the callback shape for download/upload: it may be
// invoked any number of times with ResultNext and progress data, then
// exactly once with a terminal, non-Next result.
type TransferCallback func(result Result, progress ProgressData)

// ListDirectoryCallback is the terminal callback for list_directory_async.
type ListDirectoryCallback func(result Result, entries []string)

// CRC32Callback is the terminal callback for the internal CRC32 op.
type CRC32Callback func(result Result, crc32 uint32)

// AreFilesIdenticalCallback is the terminal callback for
// are_files_identical_async.
type AreFilesIdenticalCallback func(result Result, identical bool)
