package queries

const (
	QueryCreateRoom = `
		INSERT INTO room (name, location, capacity)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	QueryGetRoom = `
		SELECT id, name, location, capacity
		FROM room
		WHERE id = $1;
	`
	// Блокирует строку комнаты на время транзакции бронирования.
	QueryLockRoom = `
		SELECT id, name, location, capacity
		FROM room
		WHERE id = $1
		FOR UPDATE;
	`
	QueryListRooms = `
		SELECT id, name, location, capacity
		FROM room
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`
	QueryDeleteRoom = `DELETE FROM room WHERE id = $1;`

	// Условный декремент вместо read-modify-write: при capacity = 0
	// строка не обновляется и бронь отклоняется.
	QueryDecrementRoomCapacity = `
		UPDATE room
		SET capacity = capacity - 1
		WHERE id = $1 AND capacity > 0;
	`
	QueryIncrementRoomCapacity = `
		UPDATE room
		SET capacity = capacity + 1
		WHERE id = $1;
	`

	QueryCreateReservation = `
		INSERT INTO reservation (room_id, user_name, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	QueryGetReservation = `
		SELECT id, room_id, user_name, start_time, end_time
		FROM reservation
		WHERE id = $1;
	`
	QueryLockReservation = `
		SELECT id, room_id, user_name, start_time, end_time
		FROM reservation
		WHERE id = $1
		FOR UPDATE;
	`
	QueryDeleteReservation = `DELETE FROM reservation WHERE id = $1;`

	// Полуоткрытые интервалы: existing.start < $3 AND existing.end > $2.
	QueryFindOverlapping = `
		SELECT id, room_id, user_name, start_time, end_time
		FROM reservation
		WHERE room_id = $1 AND start_time < $3 AND end_time > $2
		LIMIT 1;
	`
	QueryListReservationsByRoom = `
		SELECT id, room_id, user_name, start_time, end_time
		FROM reservation
		WHERE room_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3;
	`

	QueryCreateUser = `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	QueryGetUserByUsername = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1;
	`
	QueryExistsUserByUsername = `SELECT 1 FROM users WHERE username = $1;`
)
