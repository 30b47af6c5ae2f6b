package dto

// CardDTO una tarjeta del dashboard.
type CardDTO struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Value  int    `json:"value"`
	Footer string `json:"footer"`
}

// DashboardDTO las seis tarjetas en orden de menú.
type DashboardDTO struct {
	Cards []CardDTO `json:"cards"`
}
