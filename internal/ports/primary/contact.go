package primary

import "context"

// ContactService defines the primary port for contact operations.
type ContactService interface {
	// CreateContact creates a new contact attached to a client.
	CreateContact(ctx context.Context, req CreateContactRequest) (*Contact, error)

	// GetContact retrieves a contact by id.
	GetContact(ctx context.Context, id int64) (*Contact, error)

	// ListContactsByClient lists a client's contacts.
	ListContactsByClient(ctx context.Context, clientID int64) ([]*Contact, error)

	// UpdateContact updates an existing contact.
	UpdateContact(ctx context.Context, req UpdateContactRequest) (*Contact, error)

	// DeleteContact deletes a contact. Contracts referencing it keep
	// existing with the reference cleared.
	DeleteContact(ctx context.Context, id int64) error
}

// Contact represents a named person at a client in the primary port layer.
type Contact struct {
	ID        int64
	ClientID  int64
	Nom       string
	Prenom    string
	Fonction  string
	Telephone string
	Email     string
	Notes     string
}

// CreateContactRequest contains the data needed to create a contact.
type CreateContactRequest struct {
	ClientID  int64
	Nom       string
	Prenom    string
	Fonction  string
	Telephone string
	Email     string
	Notes     string
}

// UpdateContactRequest contains the data to update on a contact. Nil
// fields keep their current value.
type UpdateContactRequest struct {
	ID        int64
	Nom       *string
	Prenom    *string
	Fonction  *string
	Telephone *string
	Email     *string
	Notes     *string
}
