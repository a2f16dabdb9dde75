package domain

type Room struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Location string `db:"location"`
	Capacity int64  `db:"capacity"`
}
