package notifications

import (
	"fmt"
	"time"

	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
)

// dueLayout is the timestamp form shown to users in notification texts.
const dueLayout = "2006-01-02 15:04:05"

// NewBookingText is the push body offered to eligible translators.
func NewBookingText(language string, duration int, due time.Time, immediate bool) string {
	if immediate {
		return fmt.Sprintf("Ny akutbokning för %stolk %dmin", language, duration)
	}
	return fmt.Sprintf("Ny bokning för %stolk %dmin %s", language, duration, due.Format(dueLayout))
}

// BookingAcceptedText tells the customer a translator took the booking.
func BookingAcceptedText(language string, duration int, due time.Time) string {
	return fmt.Sprintf(
		"Din bokning för %s translators, %dmin, %s har accepterats av en tolk. Vänligen öppna appen för att se detaljer om tolken.",
		language, duration, due.Format(dueLayout))
}

// AcceptSuccessText confirms the acceptance to the winning translator.
func AcceptSuccessText(language string, duration int, due time.Time) string {
	return fmt.Sprintf("Du har nu accepterat och fått bokningen för %stolk %dmin %s",
		language, duration, due.Format(dueLayout))
}

// AcceptAlreadyTakenText is the losing side of an accept race.
func AcceptAlreadyTakenText(language string, duration int, due time.Time) string {
	return fmt.Sprintf(
		"Denna %stolkning %dmin %s har redan accepterats av annan tolk. Du har inte fått denna tolkning",
		language, duration, due.Format(dueLayout))
}

// AcceptDoubleBookedText rejects an accept that overlaps another assignment.
func AcceptDoubleBookedText(due time.Time) string {
	return fmt.Sprintf("Du har redan en bokning den tiden %s. Du har inte fått denna tolkning",
		due.Format(dueLayout))
}

// CustomerCancelledText tells the translator the customer withdrew.
func CustomerCancelledText(language string, duration int, due time.Time) string {
	return fmt.Sprintf(
		"Kunden har avbokat bokningen för %stolk, %dmin, %s. Var god och kolla dina tidigare bokningar för detaljer.",
		language, duration, due.Format(dueLayout))
}

// TranslatorCancelledText tells the customer the translator withdrew.
func TranslatorCancelledText(language string, duration int, due time.Time) string {
	return fmt.Sprintf(
		"Er %stolk, %dmin %s, har avbokat tolkningen. Vi letar nu efter en ny tolk som kan ersätta denne. Tack.",
		language, duration, due.Format(dueLayout))
}

// TranslatorCancelRejectedText directs a translator inside the cancellation
// window to support.
func TranslatorCancelRejectedText() string {
	return "Du kan inte avboka en bokning som sker inom 24 timmar genom DigitalTolk. Vänligen ring på +46 73 75 86 865 och gör din avbokning over telefon. Tack!"
}

// NotYourBookingText rejects a session action from a translator who does
// not hold the booking.
func NotYourBookingText() string {
	return "Du är inte tolk för denna bokning."
}

// SessionReminderText reminds a party of an upcoming session.
func SessionReminderText(language string, due time.Time, duration int, physical bool, town string) string {
	where := "telefon"
	if physical {
		where = "på plats i " + town
	}
	return fmt.Sprintf(
		"Detta är en påminnelse om att du har en %stolkning (%s) kl %s på %s som vara i %d min. Lycka till och kom ihåg att ge feedback efter utförd tolkning!",
		language, where, due.Format("15:04:05"), due.Format("2006-01-02"), duration)
}

// PhoneJobSMSText is the text offer for bookings served over the phone.
// Bookings that allow both phone and physical default to the phone form.
func PhoneJobSMSText(due time.Time, duration int, jobID kernel.UUID) string {
	return fmt.Sprintf(
		"Du har fått ett telefontolkuppdrag den %s kl %s på %s. Vänligen acceptera uppdraget via appen! Uppdragsnr: %s",
		due.Format("02.01.2006"), due.Format("15:04"), ConvertToHoursMins(duration), jobID)
}

// PhysicalJobSMSText is the text offer for on-site bookings.
func PhysicalJobSMSText(due time.Time, duration int, town string, jobID kernel.UUID) string {
	return fmt.Sprintf(
		"Du har fått ett platstolkuppdrag i %s den %s kl %s på %s. Vänligen acceptera uppdraget via appen! Uppdragsnr: %s",
		town, due.Format("02.01.2006"), due.Format("15:04"), ConvertToHoursMins(duration), jobID)
}

// ConvertToHoursMins renders a duration in minutes the way booking texts
// show it: "30min", "1h", "02h 30min".
func ConvertToHoursMins(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	if minutes == 60 {
		return "1h"
	}
	return fmt.Sprintf("%02dh %02dmin", minutes/60, minutes%60)
}

// Email subjects and template ids, one per booking event.

func JobCreatedSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Vi har mottagit er tolkbokning. Bokningsnr: #%s", jobID)
}

func JobAcceptedSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Bekräftelse - tolk har accepterat er bokning (bokning # %s)", jobID)
}

func JobReopenedSubject(language string, jobID kernel.UUID) string {
	return fmt.Sprintf("Vi har nu återöppnat er bokning av %stolk för bokning #%s", language, jobID)
}

func JobCancellationSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Avbokning av bokningsnr: #%s", jobID)
}

func SessionEndedSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Information om avslutad tolkning för bokningsnummer #%s", jobID)
}

func TranslatorChangedSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Meddelande om tilldelning av tolkuppdrag för uppdrag # %s", jobID)
}

func BookingChangedSubject(jobID kernel.UUID) string {
	return fmt.Sprintf("Meddelande om ändring av tolkbokning för uppdrag # %s", jobID)
}

const (
	TemplateJobCreated                = "emails.job-created"
	TemplateJobAccepted               = "emails.job-accepted"
	TemplateStatusChangedToCustomer   = "emails.job-change-status-to-customer"
	TemplatePendingCancellation       = "emails.status-changed-from-pending-or-assigned-customer"
	TemplateCancelTranslator          = "emails.job-cancel-translator"
	TemplateSessionEnded              = "emails.session-ended"
	TemplateChangedTranslatorCustomer = "emails.job-changed-translator-customer"
	TemplateChangedTranslatorOld      = "emails.job-changed-translator-old-translator"
	TemplateChangedTranslatorNew      = "emails.job-changed-translator-new-translator"
	TemplateChangedDate               = "emails.job-changed-date"
	TemplateChangedLanguage           = "emails.job-changed-lang"
)

// SessionLabelFromJob renders the invoice/payroll session label for a
// completed booking.
func SessionLabelFromJob(j *job.Job) string {
	return job.SessionLabel(j.SessionTime())
}
