package model

// Aggregate result rows for the public, anonymised statistics. None of these
// types carry owner information; they are the only shapes the aggregation
// endpoints are allowed to return.

// BookCount is the occurrence count of an exact (title, author) pair.
type BookCount struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Count  int64  `json:"count"`
}

// GenreCount is the occurrence count of a non-empty genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int64  `json:"count"`
}

// AuthorCount is the occurrence count of a non-empty author.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int64  `json:"count"`
}

// StatusCount is the number of books in a given reading status.
type StatusCount struct {
	Status BookStatus `json:"status"`
	Count  int64      `json:"count"`
}

// SearchResult is one (title, author, genre) group matched by a public search.
type SearchResult struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Count  int64  `json:"count"`
}

// CommunityStats is the full anonymised snapshot over every account's books.
type CommunityStats struct {
	PopularBooks       []BookCount   `json:"popularBooks"`
	PopularGenres      []GenreCount  `json:"popularGenres"`
	PopularAuthors     []AuthorCount `json:"popularAuthors"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
	TotalBooks         int64         `json:"totalBooks"`
	TotalAccounts      int64         `json:"totalAccounts"`
}
