package domain

// Category is the top-level grouping of titles (books, films, music).
// Slug is the lookup key; there is no numeric id on the API surface.
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre tags a title. Like Category it is addressed by slug only.
type Genre struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Title is a reviewable work. Rating is the live average of its reviews'
// scores and is nil while the title has no reviews; it is never persisted.
type Title struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Genres      []Genre  `json:"genre"`
	Rating      *float64 `json:"rating"`
}
