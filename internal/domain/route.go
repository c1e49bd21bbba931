package domain

// Route models a delivery route.
type Route struct {
	ID         int
	Vehicle    *string
	Driver     *string
	StatusID   int
	DistanceKm float64
	AvgTimeMin float64
	TrafficID  int
	Priority   int16
}

// RouteStatus is a row of the route status lookup table.
type RouteStatus struct {
	ID   int
	Name string
}

// TrafficLevel is a row of the traffic level lookup table.
type TrafficLevel struct {
	ID    int
	Level string
}
