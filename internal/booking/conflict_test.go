package booking

import (
	"errors"
	"testing"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

func res(user string, equipment string, startH, endH int) model.Reservation {
	return model.Reservation{
		UserID: user, Room: "Lab A", Equipment: equipment,
		Start: at(0, startH, 0), End: at(0, endH, 0),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Reservation
		want bool
	}{
		{"identical", res("1", "PCR-1", 8, 11), res("2", "PCR-1", 8, 11), true},
		{"partial", res("1", "PCR-1", 8, 11), res("2", "PCR-1", 10, 12), true},
		{"contained", res("1", "PCR-1", 8, 20), res("2", "PCR-1", 10, 12), true},
		{"touching end", res("1", "PCR-1", 8, 11), res("2", "PCR-1", 11, 14), false},
		{"touching start", res("1", "PCR-1", 11, 14), res("2", "PCR-1", 8, 11), false},
		{"disjoint", res("1", "PCR-1", 8, 11), res("2", "PCR-1", 14, 17), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasOverlap_IgnoresOtherEquipment(t *testing.T) {
	existing := []model.Reservation{res("2", "PCR-2", 8, 11)}
	if HasOverlap(res("1", "PCR-1", 8, 11), existing) {
		t.Fatalf("different equipment must not conflict")
	}
	existing = append(existing, res("2", "PCR-1", 9, 10))
	if !HasOverlap(res("1", "PCR-1", 8, 11), existing) {
		t.Fatalf("expected overlap with any user's booking")
	}
}

func TestViolatesContinuousSlot(t *testing.T) {
	existing := []model.Reservation{res("1", "PCR-1", 8, 11)}

	if !ViolatesContinuousSlot(res("1", "PCR-1", 11, 14), existing) {
		t.Errorf("slot directly after own booking should violate")
	}
	before := []model.Reservation{res("1", "PCR-1", 11, 14)}
	if !ViolatesContinuousSlot(res("1", "PCR-1", 8, 11), before) {
		t.Errorf("slot directly before own booking should violate")
	}
	if ViolatesContinuousSlot(res("2", "PCR-1", 11, 14), existing) {
		t.Errorf("another user's adjacent booking must not violate")
	}
	if ViolatesContinuousSlot(res("1", "PCR-1", 14, 17), existing) {
		t.Errorf("non-adjacent slot must not violate")
	}
	nextDay := res("1", "PCR-1", 8, 11)
	nextDay.Start, nextDay.End = at(1, 8, 0), at(1, 11, 0)
	if ViolatesContinuousSlot(nextDay, []model.Reservation{res("1", "PCR-1", 17, 20)}) {
		t.Errorf("different day must not violate")
	}
}

func TestCheck_ContinuousRuleOnlyForSlotEquipment(t *testing.T) {
	existing := []model.Reservation{res("1", "Centrifuge", 8, 11)}
	free := model.Equipment{Name: "Centrifuge", Room: "Lab A"}
	if err := Check(free, res("1", "Centrifuge", 11, 14), existing); err != nil {
		t.Fatalf("free-form equipment allows adjacent bookings, got %v", err)
	}

	pcrExisting := []model.Reservation{res("1", "PCR-1", 8, 11)}
	pcr := model.Equipment{Name: "PCR-1", Room: "Lab A", SlotBased: true}
	if err := Check(pcr, res("1", "PCR-1", 11, 14), pcrExisting); !errors.Is(err, ErrContinuousSlotViolation) {
		t.Fatalf("expected ErrContinuousSlotViolation, got %v", err)
	}
	if err := Check(pcr, res("2", "PCR-1", 8, 11), pcrExisting); !errors.Is(err, ErrOverlapConflict) {
		t.Fatalf("expected ErrOverlapConflict, got %v", err)
	}
}
