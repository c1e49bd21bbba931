package dto

// RouteCreateRequest payload for POST /routes/create. A zero id lets the
// database assign one; pointer fields distinguish absent from zero.
type RouteCreateRequest struct {
	ID         int      `json:"idRuta"`
	Vehicle    *string  `json:"vehiculoAsociado"`
	Driver     *string  `json:"conductorAsignado"`
	StatusID   *int     `json:"idEstado"`
	DistanceKm *float64 `json:"distanciaTotal" validate:"required"`
	AvgTimeMin *float64 `json:"tiempoPromedio" validate:"required"`
	TrafficID  *int     `json:"idTrafico" validate:"required"`
	Priority   *int16   `json:"prioridad" validate:"required"`
}

// RouteUpdateRequest payload for PUT /routes/update/:id. Only submitted
// fields are applied.
type RouteUpdateRequest struct {
	Vehicle    *string  `json:"vehiculoAsociado"`
	Driver     *string  `json:"conductorAsignado"`
	StatusID   *int     `json:"idEstado"`
	DistanceKm *float64 `json:"distanciaTotal"`
	AvgTimeMin *float64 `json:"tiempoPromedio"`
	TrafficID  *int     `json:"idTrafico"`
	Priority   *int16   `json:"prioridad"`
}

// RouteResponse mirrors the stored route.
type RouteResponse struct {
	ID         int     `json:"idRuta"`
	Vehicle    *string `json:"vehiculoAsociado"`
	Driver     *string `json:"conductorAsignado"`
	StatusID   int     `json:"idEstado"`
	DistanceKm float64 `json:"distanciaTotal"`
	AvgTimeMin float64 `json:"tiempoPromedio"`
	TrafficID  int     `json:"idTrafico"`
	Priority   int16   `json:"prioridad"`
}
