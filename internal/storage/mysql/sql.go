package mysql

const upsertHotelSQL = `
INSERT INTO hotels (name)
VALUES (?)
ON DUPLICATE KEY UPDATE updated_at = CURRENT_TIMESTAMP
`

// The occupant columns are owned by setOccupantSQL; re-importing a room must
// not clear them.
const upsertRoomSQL = `
INSERT INTO rooms
  (hotel_name, number, kind, cost)
VALUES
  (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  kind       = VALUES(kind),
  cost       = VALUES(cost),
  updated_at = CURRENT_TIMESTAMP
`

const setOccupantSQL = `
UPDATE rooms
SET guest_name = ?, guest_address = ?, updated_at = CURRENT_TIMESTAMP
WHERE hotel_name = ? AND number = ?
`

const insertReservationSQL = `
INSERT INTO reservations
  (id, hotel_name, reservation_date, start_date, end_date, room_count, payer_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

const insertStaySQL = `
INSERT INTO stays
  (hotel_name, room_number, event, guest_name, guest_address, occurred_at)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const insertMissSQL = `
INSERT INTO import_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Hotels without rooms still come back once with NULL room columns. Rows keep
// insertion order so a restored hotel lists rooms the way they were added.
const loadInventorySQL = `
SELECT
  h.name,
  r.number,
  r.kind,
  r.cost,
  r.guest_name,
  r.guest_address
FROM hotels h
LEFT JOIN rooms r ON r.hotel_name = h.name
ORDER BY h.id, r.id
`

const loadReservationsSQL = `
SELECT
  id,
  hotel_name,
  reservation_date,
  start_date,
  end_date,
  room_count,
  payer_id
FROM reservations
ORDER BY created_at, id
`
