// Package file provides a file-based DataFetcher implementation for the config package.
//
// Each source of a merged configuration (config/<name>.yml) is read through a
// Fetcher. The file is read when the Fetcher is opened and cached, so Fetch
// returns the same data for the life of the Fetcher.
//
// Usage:
//
//	fetcher, err := file.Open("/app/config/base.yml")
//	if err != nil {
//	    // file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Open returns an error if the file cannot be read or path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, fs.ErrNotExist) to detect a missing source
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
