package types

type Vehicle struct {
	Id          int32  `gorm:"column:id"`
	Model       string `gorm:"column:model"`
	FullName    string `gorm:"column:full_name"`
	PlateNumber string `gorm:"column:plate_number"`
}

type NewVehicle struct {
	Model       string `validate:"required"`
	FullName    string `validate:"required"`
	PlateNumber string `validate:"required"`
}
