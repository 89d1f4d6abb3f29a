package job

import (
	"fmt"

	"tolkbook/internal/pkg/errs"
)

// Gender is the interpreter gender a customer may request for a booking.
// The empty value means no preference.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

// Validate accepts the closed set of gender values including "no preference".
func (g Gender) Validate() error {
	switch g {
	case GenderUnspecified, GenderMale, GenderFemale:
		return nil
	default:
		return errs.NewValidationErrorWithCause("gender",
			fmt.Errorf("%q is not a valid gender", string(g)))
	}
}

// Type classifies who pays for a booking, which in turn decides the
// translator cohort it is offered to.
type Type string

const (
	// TypePaid bookings are offered to professional translators.
	TypePaid Type = "paid"
	// TypeRWS bookings are offered to RWS translators only.
	TypeRWS Type = "rws"
	// TypeUnpaid bookings are offered to volunteers.
	TypeUnpaid Type = "unpaid"
)

// TypeForConsumer derives the booking type from the customer's consumer
// classification: RWS consumers book rws jobs, NGOs book unpaid jobs,
// everyone else books paid jobs.
func TypeForConsumer(consumerType string) Type {
	switch consumerType {
	case "rwsconsumer":
		return TypeRWS
	case "ngo":
		return TypeUnpaid
	default:
		return TypePaid
	}
}

// Validate accepts the closed set of booking types.
func (t Type) Validate() error {
	switch t {
	case TypePaid, TypeRWS, TypeUnpaid:
		return nil
	default:
		return errs.NewValidationErrorWithCause("job_type",
			fmt.Errorf("%q is not a valid job type", string(t)))
	}
}

// Certification is the qualification requirement a customer places on a
// booking. The empty value means any qualification is acceptable.
//
// Values mirror the booking form: "normal" asks for a layman interpreter,
// "yes" for a certified one, "law"/"health" for a specialisation, and the
// n_-prefixed and "both" values are the combinations of normal with a
// certified tier.
type Certification string

const (
	CertificationNone    Certification = ""
	CertificationNormal  Certification = "normal"
	CertificationYes     Certification = "yes"
	CertificationLaw     Certification = "law"
	CertificationHealth  Certification = "health"
	CertificationNLaw    Certification = "n_law"
	CertificationNHealth Certification = "n_health"
	CertificationBoth    Certification = "both"
)

// Validate accepts the closed set of certification requirements.
func (c Certification) Validate() error {
	switch c {
	case CertificationNone, CertificationNormal, CertificationYes, CertificationLaw,
		CertificationHealth, CertificationNLaw, CertificationNHealth, CertificationBoth:
		return nil
	default:
		return errs.NewValidationErrorWithCause("certified",
			fmt.Errorf("%q is not a valid certification requirement", string(c)))
	}
}
