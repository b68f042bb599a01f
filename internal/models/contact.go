package models

import "strings"

// Contact is a single record in the remote contacts collection. The ID is
// assigned by the remote store and stays stable for the record's lifetime;
// every other field is free text owned by the user. Age and Phone stay
// strings on purpose: the remote documents carry them as strings and the
// length rules operate on the textual form.
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
}

// ContactFields is the mutation payload sent to the remote collection.
// It never carries an ID: on create the store assigns one, on update the
// target ID travels separately.
type ContactFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
}

// NewContactFields trims surrounding whitespace from every field, matching
// what the form submits after a successful validation pass.
func NewContactFields(firstName, lastName, email, phone, age string) ContactFields {
	return ContactFields{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Age:       strings.TrimSpace(age),
	}
}

func (f ContactFields) WithID(id string) Contact {
	return Contact{
		ID:        id,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Age:       f.Age,
	}
}

func (c Contact) Fields() ContactFields {
	return ContactFields{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Age:       c.Age,
	}
}

func (c Contact) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "(unnamed)"
	}
	return name
}
