package request

// UpdatePosition тело POST /vehicles/:vehicle_id/position.
// Указатели позволяют отличить отсутствующее поле от нулевой координаты.
type UpdatePosition struct {
	Longitude *float64 `json:"longitude" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
}
