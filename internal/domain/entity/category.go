package entity

// Category groups articles. Names are unique.
type Category struct {
	ID   int64
	Name string
}
