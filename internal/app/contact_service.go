package app

import (
	"context"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/core/validate"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ContactServiceImpl implements the ContactService interface.
type ContactServiceImpl struct {
	contactRepo secondary.ContactRepository
}

// NewContactService creates a new ContactService with injected dependencies.
func NewContactService(contactRepo secondary.ContactRepository) *ContactServiceImpl {
	return &ContactServiceImpl{contactRepo: contactRepo}
}

func validateContactFields(nom, prenom, telephone, email string) error {
	if v := validate.Required(nom, "nom"); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Required(prenom, "prenom"); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Telephone(telephone); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	if v := validate.Email(email); !v.OK {
		return fault.New(fault.KindValidation, "%s", v.Reason)
	}
	return nil
}

// CreateContact creates a new contact attached to a client.
func (s *ContactServiceImpl) CreateContact(ctx context.Context, req primary.CreateContactRequest) (*primary.Contact, error) {
	if err := validateContactFields(req.Nom, req.Prenom, req.Telephone, req.Email); err != nil {
		return nil, err
	}

	exists, err := s.contactRepo.ClientExists(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fault.New(fault.KindNotFound, "Client %d introuvable", req.ClientID)
	}

	id, err := s.contactRepo.Create(ctx, &secondary.ContactRecord{
		ClientID:  req.ClientID,
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Fonction:  req.Fonction,
		Telephone: req.Telephone,
		Email:     req.Email,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return s.GetContact(ctx, id)
}

// GetContact retrieves a contact by id.
func (s *ContactServiceImpl) GetContact(ctx context.Context, id int64) (*primary.Contact, error) {
	record, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToContact(record), nil
}

// ListContactsByClient lists a client's contacts.
func (s *ContactServiceImpl) ListContactsByClient(ctx context.Context, clientID int64) ([]*primary.Contact, error) {
	records, err := s.contactRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	contacts := make([]*primary.Contact, len(records))
	for i, r := range records {
		contacts[i] = recordToContact(r)
	}
	return contacts, nil
}

// UpdateContact updates an existing contact.
func (s *ContactServiceImpl) UpdateContact(ctx context.Context, req primary.UpdateContactRequest) (*primary.Contact, error) {
	record, err := s.contactRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Nom != nil {
		record.Nom = *req.Nom
	}
	if req.Prenom != nil {
		record.Prenom = *req.Prenom
	}
	if req.Fonction != nil {
		record.Fonction = *req.Fonction
	}
	if req.Telephone != nil {
		record.Telephone = *req.Telephone
	}
	if req.Email != nil {
		record.Email = *req.Email
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := validateContactFields(record.Nom, record.Prenom, record.Telephone, record.Email); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return s.GetContact(ctx, req.ID)
}

// DeleteContact deletes a contact. Contracts referencing it keep
// existing with the reference cleared by the store.
func (s *ContactServiceImpl) DeleteContact(ctx context.Context, id int64) error {
	return s.contactRepo.Delete(ctx, id)
}

// recordToContact converts a storage record to the primary port type.
func recordToContact(r *secondary.ContactRecord) *primary.Contact {
	return &primary.Contact{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Nom:       r.Nom,
		Prenom:    r.Prenom,
		Fonction:  r.Fonction,
		Telephone: r.Telephone,
		Email:     r.Email,
		Notes:     r.Notes,
	}
}
