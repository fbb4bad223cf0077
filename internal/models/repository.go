package models

type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

type (
	// RepoRef identifies a hosted repository.
	RepoRef struct {
		Owner string
		Name  string
	}

	// TreeEntry is one node of a directory listing.
	TreeEntry struct {
		Name        string
		Path        string
		Type        EntryType
		DownloadURL string
	}

	// FileContentMap maps a file name to its raw text. Names are not paths, so a
	// later file with the same name replaces an earlier one.
	FileContentMap map[string]string

	// SkippedPath is a directory whose listing failed and was left out of the scan.
	SkippedPath struct {
		Path   string
		Reason error
	}

	// ScanResult is the flattened list of files found under a start path.
	ScanResult struct {
		Files   []TreeEntry
		Skipped []SkippedPath
	}

	// FetchFailure is a file whose content could not be downloaded.
	FetchFailure struct {
		Name   string
		URL    string
		Reason error
	}

	// FetchResult holds the downloaded contents. Failed files are present with an
	// empty string.
	FetchResult struct {
		Contents FileContentMap
		Failures []FetchFailure
		Bytes    uint64
	}
)

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

func (e TreeEntry) IsFile() bool {
	return e.Type == EntryFile
}

func (e TreeEntry) IsDir() bool {
	return e.Type == EntryDir
}
