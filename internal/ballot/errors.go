package ballot

import (
	"errors"
	"fmt"

	"github.com/hard-gainer/buurtstemming/internal/model"
)

// rejection reasons, checked by Validate in this order
var (
	ErrMissingHouseNumber    = errors.New("house number not supplied")
	ErrIneligibleHouseNumber = errors.New("house number is not on the voter roll")
	ErrDuplicateVote         = errors.New("house number has already voted")
	ErrMissingOption         = errors.New("no option selected")
)

// IsRejection reports whether err is a validation rejection
func IsRejection(err error) bool {
	return Reason(err) != ""
}

// Reason returns a stable identifier for a rejection, empty for other errors
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingHouseNumber):
		return "missing_house_number"
	case errors.Is(err, ErrIneligibleHouseNumber):
		return "ineligible_house_number"
	case errors.Is(err, ErrDuplicateVote):
		return "duplicate_vote"
	case errors.Is(err, ErrMissingOption):
		return "missing_option"
	}
	return ""
}

// Message returns the message shown to the voter for a rejection
func Message(err error, roll model.VoterRoll) string {
	switch {
	case errors.Is(err, ErrMissingHouseNumber):
		return "Voer je huisnummer in"
	case errors.Is(err, ErrIneligibleHouseNumber):
		return fmt.Sprintf("Dit huisnummer mag niet stemmen (alleen: %s)", roll)
	case errors.Is(err, ErrDuplicateVote):
		return "Dit huisnummer heeft al gestemd!"
	case errors.Is(err, ErrMissingOption):
		return "Kies een optie om op te stemmen"
	}
	return "Er ging iets mis, probeer het opnieuw"
}

// SuccessMessage is shown after an accepted vote
const SuccessMessage = "Je stem is succesvol uitgebracht! 🎉"
