package models

// Book represents a book record. Year and OwnerID are nullable; OwnerID is a
// weak reference to users.id with no cascade rules, so orphaned owner ids are
// tolerated.
type Book struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Year    *int   `json:"year"`
	OwnerID *int64 `json:"ownerId"`
}
