package scheduling

import (
	"fmt"
	"time"
)

const (
	longLayout  = "Monday, January 02 at 03:04 PM"
	dayLayout   = "Monday, January 02"
	clockLayout = "03:04 PM"
)

const (
	MsgCouldNotUnderstand = "Sorry, I couldn't understand your request. Please try something like 'Book a meeting tomorrow at 3 PM' or 'Do you have any free time this Friday?'"
	MsgCouldNotParse      = "❌ Could not parse your request. Please try again with a specific date and time."
	MsgNothingToConfirm   = "You haven't been offered a time to confirm. How can I help you schedule an appointment?"
	MsgClarifyFallback    = "Could you please provide more specific details about when you'd like to schedule?"
	MsgUnrecognized       = "I'm not sure how to handle that. Can you please rephrase your request?"
	MsgConfirmFailed      = "❌ There was an error confirming your booking. Please try again."
)

func msgBooked(start time.Time) string {
	return fmt.Sprintf("✅ Your appointment is booked for %s", start.Format(longLayout))
}

func msgConfirmed(start time.Time) string {
	return fmt.Sprintf("✅ Confirmed! Your appointment is booked for %s", start.Format(longLayout))
}

func msgBookingFailed(start time.Time) string {
	return fmt.Sprintf("❌ Sorry, I couldn't book %s because the calendar is not responding. Reply 'yes' to try again.", start.Format(longLayout))
}

func msgNoSlots(horizonDays int) string {
	return fmt.Sprintf("❌ No available slots found in the next %d days. Please try another time.", horizonDays)
}

func msgFullyBooked(horizonDays int) string {
	return fmt.Sprintf("❌ Sorry, you are fully booked in the next %d days.", horizonDays)
}

func msgNextToday(requested, next time.Time) string {
	return fmt.Sprintf("❌ %s is unavailable. Next available today: %s. Reply 'yes' to confirm.",
		requested.Format(clockLayout), next.Format(clockLayout))
}

func msgNoMoreToday(next time.Time) string {
	return fmt.Sprintf("❌ No more slots available today. Next available: %s. Reply 'yes' to confirm.", next.Format(longLayout))
}

func msgNextSameDay(requested, next time.Time) string {
	return fmt.Sprintf("❌ %s is unavailable. Next available on %s: %s. Reply 'yes' to confirm.",
		requested.Format(clockLayout), requested.Format(dayLayout), next.Format(clockLayout))
}

func msgNextOtherDay(requested, next time.Time) string {
	return fmt.Sprintf("❌ No slots available on %s. Next available: %s. Reply 'yes' to confirm.",
		requested.Format(dayLayout), next.Format(longLayout))
}

func msgPassed(requested, next time.Time) string {
	return fmt.Sprintf("❌ %s has already passed. Next available: %s. Reply 'yes' to confirm.",
		requested.Format(longLayout), next.Format(longLayout))
}

func msgWindowAvailable(start time.Time) string {
	return fmt.Sprintf("✅ Available: %s. Reply 'yes' to confirm.", start.Format(longLayout))
}

func msgWindowTaken(next time.Time) string {
	return fmt.Sprintf("❌ No available slots in that window. Next available: %s. Reply 'yes' to confirm.", next.Format(longLayout))
}

func msgNoLongerAvailable(next time.Time) string {
	return fmt.Sprintf("❌ That slot is no longer available. Next available: %s. Reply 'yes' to confirm.", next.Format(longLayout))
}

func msgFreeTime(start time.Time) string {
	return fmt.Sprintf("✅ Yes, you have free time. Earliest available: %s. Reply 'yes' to book this slot.", start.Format(longLayout))
}

func msgNoFreeTime(next time.Time) string {
	return fmt.Sprintf("❌ No free time in that window. Next available: %s. Reply 'yes' to book this slot.", next.Format(longLayout))
}

func msgSlotFree(start time.Time) string {
	return fmt.Sprintf("✅ Yes, %s is free. Reply 'yes' to book this slot.", start.Format(longLayout))
}

func msgSlotTaken(requested, next time.Time) string {
	return fmt.Sprintf("❌ %s is taken. Next available: %s. Reply 'yes' to book this slot.",
		requested.Format(longLayout), next.Format(longLayout))
}
