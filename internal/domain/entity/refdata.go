package entity

// Location is an office site seats can be booked at
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
}

// Seat is a bookable desk at a location
type Seat struct {
	ID        string   `json:"id"`
	Number    string   `json:"number"`
	Floor     string   `json:"floor"`
	Area      string   `json:"area"`
	Amenities []string `json:"amenities"`
}

// AccessCode is a known token that may be attached to bookings and
// timesheets. Codes carry no lifecycle effect; they are validated at
// creation and stored verbatim.
type AccessCode struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Locations is the fixed set of office sites
var Locations = []Location{
	{ID: "del", Name: "Delhi", Code: "DEL", Timezone: "Asia/Kolkata"},
	{ID: "che", Name: "Chennai", Code: "CHE", Timezone: "Asia/Kolkata"},
	{ID: "coi", Name: "Coimbatore", Code: "COI", Timezone: "Asia/Kolkata"},
	{ID: "ban", Name: "Bangalore", Code: "BAN", Timezone: "Asia/Kolkata"},
}

// Seats is the fixed seat map, identical at every location
var Seats = []Seat{
	{ID: "A1", Number: "A1", Floor: "1st Floor", Area: "Open Space", Amenities: []string{"WiFi", "Power"}},
	{ID: "A2", Number: "A2", Floor: "1st Floor", Area: "Open Space", Amenities: []string{"WiFi", "Power"}},
	{ID: "B1", Number: "B1", Floor: "2nd Floor", Area: "Quiet Zone", Amenities: []string{"WiFi", "Power", "AC"}},
	{ID: "B2", Number: "B2", Floor: "2nd Floor", Area: "Quiet Zone", Amenities: []string{"WiFi", "Power", "AC"}},
	{ID: "C1", Number: "C1", Floor: "3rd Floor", Area: "Collaboration", Amenities: []string{"WiFi", "Power", "Whiteboard"}},
	{ID: "C2", Number: "C2", Floor: "3rd Floor", Area: "Collaboration", Amenities: []string{"WiFi", "Power", "Whiteboard"}},
}

// TimeSlots is the fixed set of bookable slots per day
var TimeSlots = []string{
	"09:00-12:00",
	"12:00-15:00",
	"15:00-18:00",
	"09:00-18:00",
}

// BookingAccessCodes are the codes accepted on seat bookings
var BookingAccessCodes = []AccessCode{
	{Code: "bm0123", Type: "casual", Description: "Casual dress code allowed"},
	{Code: "bm0111", Type: "fever", Description: "Health monitoring waived"},
	{Code: "bm0789", Type: "casual", Description: "Extended break time"},
	{Code: "bm0456", Type: "fever", Description: "Remote work option"},
}

// TimesheetAccessCodes are the codes accepted on timesheet check-ins
var TimesheetAccessCodes = []AccessCode{
	{Code: "ts2024", Description: "Backdated entry for 2024"},
	{Code: "flex01", Description: "Flexible timing mode"},
	{Code: "early9", Description: "Early bird - 9 AM start"},
	{Code: "night8", Description: "Night shift - 8 PM start"},
	{Code: "admin0", Description: "Admin override for any time"},
}

// KnownLocation reports whether id names one of the fixed locations
func KnownLocation(id string) bool {
	for _, l := range Locations {
		if l.ID == id {
			return true
		}
	}
	return false
}

// KnownSeat reports whether id names one of the fixed seats
func KnownSeat(id string) bool {
	for _, s := range Seats {
		if s.ID == id {
			return true
		}
	}
	return false
}

// KnownTimeSlot reports whether slot is one of the fixed time slots
func KnownTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// KnownBookingCode reports whether code is an accepted booking access code
func KnownBookingCode(code string) bool {
	for _, c := range BookingAccessCodes {
		if c.Code == code {
			return true
		}
	}
	return false
}

// KnownTimesheetCode reports whether code is an accepted timesheet access code
func KnownTimesheetCode(code string) bool {
	for _, c := range TimesheetAccessCodes {
		if c.Code == code {
			return true
		}
	}
	return false
}
