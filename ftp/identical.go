package ftp

// AreFilesIdenticalAsync compares the CRC32 of a local file against the
// server's CRC32 of a remote file (spec.md §4.3.5, §6.4). The local
// CRC32 is computed synchronously before enqueueing the remote request,
// the same way upload's local-existence precondition is checked
// synchronously — it's a local IO op, not a wire round trip.
func (c *Client) AreFilesIdenticalAsync(localPath, remotePath string, cb AreFilesIdenticalCallback) {
	localSum, err := localCRC32(c.fs, localPath)
	if err != nil {
		if !c.fs.Exists(localPath) {
			c.rejectSync(func() { cb(ResultFileDoesNotExist, false) })
		} else {
			c.rejectSync(func() { cb(ResultFileIoError, false) })
		}
		return
	}

	c.calcRemoteCRC32Async(remotePath, func(result Result, remoteSum uint32) {
		if result != ResultSuccess {
			cb(result, false)
			return
		}
		cb(ResultSuccess, localSum == remoteSum)
	})
}
