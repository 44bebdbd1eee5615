package league

// League is a competition season as supplied by the data provider. The shape
// carries no behavior: season boundaries are opaque date strings and Current
// is whatever the provider last reported.
type League struct {
	ID          int64
	Name        string
	Country     string
	Logo        string
	Flag        string
	Season      int
	SeasonStart string
	SeasonEnd   string
	Current     bool
}
