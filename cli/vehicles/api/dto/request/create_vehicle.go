package request

type CreateVehicle struct {
	Model       string `json:"model"`
	FullName    string `json:"full_name"`
	PlateNumber string `json:"plate_number"`
}
