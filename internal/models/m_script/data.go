package m_script

import "time"

// StoreFileVersion is the on-disk format version of the file store.
const StoreFileVersion = 1

// StoreFile is the JSON document persisted by the file-backed session store.
type StoreFile struct {
	Version   int               `json:"version"`
	Entries   map[string]string `json:"entries"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewStoreFile returns an empty store document at the current version.
func NewStoreFile() *StoreFile {
	return &StoreFile{
		Version: StoreFileVersion,
		Entries: make(map[string]string),
	}
}
