package domain

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// AuditPositions ищет позиции в геоиндексе, для которых нет записи в реестре.
// Только отчёт: позиции не удаляются.
type AuditPositions struct {
	GeoIndex PositionLister
	Registry VehicleLister
}

func (d *AuditPositions) Run(ctx context.Context) ([]int32, error) {
	positions, err := d.GeoIndex.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить позиции из геоиндекса: %w", err)
	}

	vehicles, err := d.Registry.GetVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список транспорта: %w", err)
	}

	known := make(map[int32]struct{}, len(vehicles))
	for _, v := range vehicles {
		known[v.Id] = struct{}{}
	}

	orphans := []int32{}
	for _, p := range positions {
		if _, ok := known[p.VehicleId]; !ok {
			orphans = append(orphans, p.VehicleId)
		}
	}

	if len(orphans) > 0 {
		log.WithFields(log.Fields{
			"positions": len(positions),
			"orphans":   orphans,
		}).Warn("В геоиндексе есть позиции транспорта без записи в реестре")
	} else {
		log.WithField("positions", len(positions)).Info("Позиции геоиндекса согласованы с реестром")
	}

	return orphans, nil
}
