package patient

import "github.com/sanvicente/frontdesk/internal/domain/person"

// Patient is a registered hospital patient.
type Patient struct {
	person.Person
}
