// Package file implements config.DataFetcher for files on disk.
//
// The file is read when the fetcher is constructed; Fetch hands out copies
// of those bytes, so later changes to the file are not observed:
//
//	fetcher, err := file.NewFetcher("examiner.yaml")()
//	if err != nil {
//	    // missing file (errors.Is(err, fs.ErrNotExist)), a directory, too large...
//	}
//	data, err := fetcher.Fetch()
package file
