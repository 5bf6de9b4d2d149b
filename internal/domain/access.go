package domain

import "github.com/google/uuid"

// CreateRole records which side of a new consultation the principal is on.
type CreateRole int

const (
	CreateAsStudent CreateRole = iota + 1
	// CreateAsTutor requires the caller to confirm a Tutor row exists for
	// the principal before inserting.
	CreateAsTutor
)

func requirePrincipal(p *Principal) error {
	if p == nil {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeView allows only the consultation's tutor or student.
func AuthorizeView(p *Principal, c *Consultation) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	if !c.IsParticipant(p.ID) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeStatusUpdate uses the view rule; both transition directions are
// allowed to either participant.
func AuthorizeStatusUpdate(p *Principal, c *Consultation) error {
	return AuthorizeView(p, c)
}

// AuthorizeCreate decides whether p may book a consultation between tutorID
// and studentID. The tutor branch wins when both ids are the principal.
func AuthorizeCreate(p *Principal, tutorID, studentID uuid.UUID) (CreateRole, error) {
	if err := requirePrincipal(p); err != nil {
		return 0, err
	}
	switch p.ID {
	case tutorID:
		return CreateAsTutor, nil
	case studentID:
		return CreateAsStudent, nil
	}
	return 0, ErrCannotCreateConsultation
}

// AuthorizeStudentProfile lets a student read their own profile. Anyone
// else must be a registered tutor, which the caller confirms when
// needsTutorCheck is true.
func AuthorizeStudentProfile(p *Principal, studentID uuid.UUID) (needsTutorCheck bool, err error) {
	if err := requirePrincipal(p); err != nil {
		return false, err
	}
	return p.ID != studentID, nil
}
