package dto

type CustomerResponse struct {
	CustomerID int     `json:"customer_id"`
	Name       string  `json:"name"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	Demand     float64 `json:"demand"`
	Ready      string  `json:"ready"`
	Due        string  `json:"due"`
	ReadyMin   float64 `json:"ready_min"`
	DueMin     float64 `json:"due_min"`
	ServiceMin float64 `json:"service_min"`
}

type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}
