package data

import "time"

// Series is a pixiv novel series as described by a
// PixivBatchDownloader export, after normalization.
type Series struct {
	ID     int64
	Title  string
	Author string
	Novels []*Novel
}

// Novel is one episode of a series. File names are relative to the
// download data directory.
type Novel struct {
	ID          int64
	Title       string
	Description string
	CoverFile   string
	// EmbeddedFiles maps an [uploadedimage:N] marker id to the image
	// file name the downloader saved it under.
	EmbeddedFiles map[string]string
}

// Book is a library record of a finished build.
type Book struct {
	SeriesID   int64
	Title      string
	Author     string
	NovelCount int
	FilePath   string
	BuiltAt    time.Time
}

// NovelByID returns the novel with the given id, or nil.
func (s *Series) NovelByID(id int64) *Novel {
	for _, n := range s.Novels {
		if n.ID == id {
			return n
		}
	}
	return nil
}
