package ports

// PageRequest carries pagination parameters common to all list operations.
// Page is 1-based; Limit is capped by the service layer.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and the cap. maxLimit <= 0 means no cap.
func (p PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset returns the number of records to skip for this page.
func (p PageRequest) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}
