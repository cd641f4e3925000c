package services

import (
	"strings"
	"time"

	"onestop/internal/domain"
)

const etaLayout = "Jan 02"

// DeliveryService estimates delivery windows as business-day offsets from today.
// The postcode is echoed back but not used.
type DeliveryService struct {
	Now func() time.Time
}

func NewDeliveryService() *DeliveryService {
	return &DeliveryService{Now: time.Now}
}

func (s *DeliveryService) Estimate(postcode string) domain.DeliveryEstimate {
	today := s.Now()
	return domain.DeliveryEstimate{
		Postcode: strings.TrimSpace(postcode),
		Standard: dateRange(AddBusinessDays(today, 2), AddBusinessDays(today, 4)),
		Express:  dateRange(AddBusinessDays(today, 1), AddBusinessDays(today, 2)),
	}
}

// AddBusinessDays moves forward one day at a time, counting only Monday to Friday.
func AddBusinessDays(start time.Time, days int) time.Time {
	d := start
	for added := 0; added < days; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}

func dateRange(from, to time.Time) string {
	return from.Format(etaLayout) + " - " + to.Format(etaLayout)
}
