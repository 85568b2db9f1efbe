package types

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("некорректные входные данные")

var (
	ErrInvalidCoordinate = fmt.Errorf("%w: координаты вне допустимого диапазона", ErrInvalidInput)
	ErrInvalidRadius     = fmt.Errorf("%w: некорректный радиус поиска", ErrInvalidInput)
	ErrInvalidQuery      = fmt.Errorf("%w: некорректный запрос поиска", ErrInvalidInput)
	ErrInvalidVehicle    = fmt.Errorf("%w: некорректные данные транспорта", ErrInvalidInput)
)

// ErrNotFound отличается от недоступности хранилища и никогда с ней не смешивается
var ErrNotFound = errors.New("запись не найдена")

var (
	ErrGeoIndexUnavailable = errors.New("геоиндекс недоступен")
	ErrRegistryUnavailable = errors.New("реестр транспорта недоступен")
)
