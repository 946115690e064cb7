package model

type AppData struct {
	SaveDir             string
	IgnoreDownloaded    bool
	MatchSimilar        bool
	ConcurrentDownloads int
	APIKey              string
	// APIKeyFromEnv is set when the key comes from the environment and
	// cannot be changed from the settings screen.
	APIKeyFromEnv bool
	// LibrarySize is the number of files found in the storage directory.
	LibrarySize int
}
