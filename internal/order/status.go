package order

type Status string

const (
	// StatusPlaced is the only status checkout produces. Payment and
	// shipping transitions will be layered on top of it later.
	StatusPlaced Status = "placed"
)
