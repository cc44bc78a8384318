package domain

import "time"

// Specialist describes one bookable provider.
type Specialist struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// Appointment is a confirmed booking with a specialist.
type Appointment struct {
	ID             string     `json:"id"`
	PatientName    string     `json:"patient_name"`
	PatientEmail   string     `json:"patient_email,omitempty"`
	PatientPhone   string     `json:"patient_phone,omitempty"`
	Specialist     Specialist `json:"specialist"`
	SpecialistType string     `json:"specialist_type"`
	Datetime       string     `json:"datetime"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	BookedAt       string     `json:"booked_at"`
}

// Slot is an offered appointment time.
type Slot struct {
	Datetime  string `json:"datetime"`
	Display   string `json:"display"`
	Available bool   `json:"available"`
}

// SlotDisplayLayout renders slot times for patients ("Monday, January 02 at 03:04 PM").
const SlotDisplayLayout = "Monday, January 02 at 03:04 PM"

func FormatSlot(t time.Time) string {
	return t.Format(SlotDisplayLayout)
}
