package entity

import (
	"testing"
	"time"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole int
		want        float64
	}{
		{part: 1, whole: 3, want: 33.33},
		{part: 2, whole: 3, want: 66.67},
		{part: 5, whole: 0, want: 0},
		{part: 0, whole: 10, want: 0},
		{part: 15, whole: 10, want: 150},
	}
	for _, tt := range tests {
		if got := Percentage(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestHospital_CapacityValid(t *testing.T) {
	tests := []struct {
		name     string
		hospital Hospital
		want     bool
	}{
		{name: "empty", hospital: Hospital{}, want: true},
		{name: "full house", hospital: Hospital{TotalBeds: 10, AvailableBeds: 0}, want: true},
		{name: "more free than total", hospital: Hospital{TotalBeds: 10, AvailableBeds: 11}, want: false},
		{name: "icu overflow", hospital: Hospital{ICUBeds: 2, AvailableICUBeds: 3}, want: false},
		{name: "negative ventilators", hospital: Hospital{Ventilators: 1, AvailableVentilators: -1}, want: false},
		{name: "negative ambulances", hospital: Hospital{AmbulanceCount: -1}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hospital.CapacityValid(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHospital_Occupancy(t *testing.T) {
	h := Hospital{TotalBeds: 40, AvailableBeds: 10}
	if h.OccupiedBeds() != 30 {
		t.Errorf("expected 30 occupied, got %d", h.OccupiedBeds())
	}
	if h.OccupancyRate() != 75 {
		t.Errorf("expected 75%%, got %v", h.OccupancyRate())
	}
}

func TestMedicineStock_ComputeStockStatus(t *testing.T) {
	tests := []struct {
		quantity, reorder int
		want              string
	}{
		{quantity: 0, reorder: 100, want: StockStatusCritical},
		{quantity: 99, reorder: 100, want: StockStatusLow},
		{quantity: 100, reorder: 100, want: StockStatusAdequate},
		{quantity: 0, reorder: 0, want: StockStatusCritical},
	}
	for _, tt := range tests {
		m := MedicineStock{Quantity: tt.quantity, ReorderLevel: tt.reorder}
		if got := m.ComputeStockStatus(); got != tt.want {
			t.Errorf("quantity %d reorder %d: expected %s, got %s", tt.quantity, tt.reorder, tt.want, got)
		}
	}
}

func TestEquipment_ComputeHealthStatus(t *testing.T) {
	tests := []struct {
		name string
		eq   Equipment
		want string
	}{
		{name: "none held", eq: Equipment{}, want: EquipmentStatusGood},
		{name: "all working", eq: Equipment{Quantity: 10, WorkingCondition: 10}, want: EquipmentStatusGood},
		{name: "at threshold", eq: Equipment{Quantity: 10, WorkingCondition: 8}, want: EquipmentStatusGood},
		{name: "below threshold", eq: Equipment{Quantity: 10, WorkingCondition: 7, UnderMaintenance: 3}, want: EquipmentStatusWarning},
		{name: "nothing works", eq: Equipment{Quantity: 4, OutOfService: 4}, want: EquipmentStatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eq.ComputeHealthStatus(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEquipment_CountsValid(t *testing.T) {
	if !(&Equipment{Quantity: 5, WorkingCondition: 3, UnderMaintenance: 1, OutOfService: 1}).CountsValid() {
		t.Error("expected buckets summing to quantity to be valid")
	}
	if (&Equipment{Quantity: 5, WorkingCondition: 5, OutOfService: 1}).CountsValid() {
		t.Error("expected overflowing buckets to be invalid")
	}
}

func TestDiseaseOutbreak_Cases(t *testing.T) {
	o := DiseaseOutbreak{TotalCases: 20, ActiveCases: 5, RecoveredCases: 14, DeathCases: 1}
	if !o.CasesValid() {
		t.Error("expected valid case split")
	}
	if o.RecoveryRate() != 70 {
		t.Errorf("expected 70%% recovery, got %v", o.RecoveryRate())
	}
	o.ActiveCases = 6
	if o.CasesValid() {
		t.Error("expected buckets above total to be invalid")
	}
}

func TestDoctorProfile_WorksOn(t *testing.T) {
	monday := time.Date(2026, 7, 6, 10, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	d := DoctorProfile{AvailableDays: []string{" monday", "Thursday"}}
	if !d.WorksOn(monday) {
		t.Error("expected case-insensitive weekday match")
	}
	if d.WorksOn(tuesday) {
		t.Error("expected tuesday to be off")
	}
	if !(&DoctorProfile{}).WorksOn(tuesday) {
		t.Error("expected empty schedule to mean every day")
	}
}

func TestDoctorProfile_Available(t *testing.T) {
	no, yes := false, true
	tests := []struct {
		name string
		d    DoctorProfile
		want bool
	}{
		{name: "defaults", d: DoctorProfile{}, want: true},
		{name: "paused", d: DoctorProfile{IsAvailable: &no}, want: false},
		{name: "disabled account", d: DoctorProfile{IsAvailable: &yes, User: User{IsActive: &no}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Available(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPatientProfile_Age(t *testing.T) {
	p := PatientProfile{DateOfBirth: time.Date(1990, 8, 15, 0, 0, 0, 0, time.UTC)}
	if got := p.Age(time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)); got != 35 {
		t.Errorf("expected 35 the day before the birthday, got %d", got)
	}
	if got := p.Age(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)); got != 36 {
		t.Errorf("expected 36 on the birthday, got %d", got)
	}
	if got := p.Age(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("expected 0 before birth, got %d", got)
	}
}

func TestZoneMatching(t *testing.T) {
	alert := HealthAlert{Zones: []string{"Zone A", "zone b"}}
	if !alert.AppliesToZone("zone a") || !alert.AppliesToZone(" Zone B ") {
		t.Error("expected case and space insensitive match")
	}
	if alert.AppliesToZone("Zone C") {
		t.Error("expected other zones to be excluded")
	}
	if !alert.AppliesToZone("") {
		t.Error("expected an unknown zone to see every alert")
	}
	if !(&VaccinationCampaign{}).CoversZone("Zone C") {
		t.Error("expected campaign without zones to be city-wide")
	}
}

func TestHealthAlert_IsLive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Minute), now.Add(time.Minute)

	if !(&HealthAlert{IsActive: true}).IsLive(now) {
		t.Error("expected active alert without expiry to be live")
	}
	if !(&HealthAlert{IsActive: true, ExpiresAt: &future}).IsLive(now) {
		t.Error("expected unexpired alert to be live")
	}
	if (&HealthAlert{IsActive: true, ExpiresAt: &past}).IsLive(now) {
		t.Error("expected expired alert not to be live")
	}
	if (&HealthAlert{IsActive: false}).IsLive(now) {
		t.Error("expected inactive alert not to be live")
	}
}

func TestRoleIDByUserType(t *testing.T) {
	tests := map[string]int{"admin": RoleIDAdmin, "Doctor": RoleIDDoctor, "citizen": RoleIDPatient, "user": RoleIDPatient}
	for userType, want := range tests {
		if got, ok := RoleIDByUserType(userType); !ok || got != want {
			t.Errorf("%s: expected %d, got %d (%v)", userType, want, got, ok)
		}
	}
	if _, ok := RoleIDByUserType("nurse"); ok {
		t.Error("expected unknown user type to be rejected")
	}
}

func TestPage_Offset(t *testing.T) {
	if got := (Page{Page: 3, Limit: 20}).Offset(); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
	if got := (Page{Page: 0, Limit: 20}).Offset(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
