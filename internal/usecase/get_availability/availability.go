package get_availability

import (
	"sort"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// occupiedSet строит множество занятых пар (корт, слот) по активным бронированиям
func occupiedSet(bookings []*domain.Booking) map[domain.CourtSlotKey]struct{} {
	occupied := make(map[domain.CourtSlotKey]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		occupied[domain.CourtSlotKey{CourtID: b.CourtID, SlotID: b.SlotID}] = struct{}{}
	}
	return occupied
}

// buildLocations раскладывает каталог в ответ, отмечая занятые ячейки.
// Локации и корты упорядочены по ID, слоты по времени начала.
func buildLocations(
	locations []*domain.Location,
	slots []*domain.TimeSlot,
	occupied map[domain.CourtSlotKey]struct{},
) []LocationAvailability {
	sortedSlots := append([]*domain.TimeSlot(nil), slots...)
	sort.SliceStable(sortedSlots, func(i, j int) bool {
		return sortedSlots[i].StartTime.IsBefore(sortedSlots[j].StartTime)
	})

	sortedLocations := append([]*domain.Location(nil), locations...)
	sort.SliceStable(sortedLocations, func(i, j int) bool {
		return sortedLocations[i].ID < sortedLocations[j].ID
	})

	result := make([]LocationAvailability, 0, len(sortedLocations))
	for _, loc := range sortedLocations {
		courts := append([]*domain.Court(nil), loc.Courts...)
		sort.SliceStable(courts, func(i, j int) bool { return courts[i].ID < courts[j].ID })

		la := LocationAvailability{
			LocationID:  loc.ID,
			Name:        loc.Name,
			ComplexName: loc.ComplexName,
			ImageURL:    loc.ImageURL,
			Courts:      make([]CourtAvailability, 0, len(courts)),
		}

		for _, court := range courts {
			ca := CourtAvailability{
				CourtID: court.ID,
				Name:    court.Name,
				Slots:   make([]SlotAvailability, 0, len(sortedSlots)),
			}

			for _, slot := range sortedSlots {
				status := domain.AvailabilityAvailable
				if _, ok := occupied[domain.CourtSlotKey{CourtID: court.ID, SlotID: slot.ID}]; ok {
					status = domain.AvailabilityBooked
				}
				ca.Slots = append(ca.Slots, SlotAvailability{
					SlotID:    slot.ID,
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
					Status:    status,
				})
			}

			la.Courts = append(la.Courts, ca)
		}

		result = append(result, la)
	}

	return result
}
