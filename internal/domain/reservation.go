package domain

import "time"

type Reservation struct {
	ID        int64     `db:"id"`
	RoomID    int64     `db:"room_id"`
	UserName  string    `db:"user_name"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// Overlaps — интервалы полуоткрытые [start, end): касание границ
// (end == start соседа) пересечением не считается.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
