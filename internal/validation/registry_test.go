package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldOverwritesInPlace(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldPhone, "Phone is required")
	r.SetField(FieldAge, "Age is required")
	r.SetField(FieldPhone, "Phone must be 10 characters")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, FieldPhone, entries[0].Field)
	assert.Equal(t, "Phone must be 10 characters", entries[0].Message)
	assert.Equal(t, FieldAge, entries[1].Field)
}

func TestClearFieldRemovesOnlyThatField(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldPhone, "Phone is required")
	r.SetField(FieldAge, "Age is required")

	r.ClearField(FieldPhone)

	require.Equal(t, 1, r.Len())
	_, ok := r.FieldMessage(FieldPhone)
	assert.False(t, ok)
	_, ok = r.FieldMessage(FieldAge)
	assert.True(t, ok)

	// Clearing an absent field is a no-op.
	r.ClearField(FieldEmail)
	assert.Equal(t, 1, r.Len())
}

func TestOperationEntryIsSingular(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldEmail, "Email is not valid")
	r.SetOperation("Error adding document: connection refused")
	r.SetOperation("Error adding document: timeout")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, KindOperation, entries[1].Kind)
	assert.Equal(t, "Error adding document: timeout", entries[1].Message)

	r.ClearOperation()
	assert.Equal(t, 1, r.Len())
}

func TestClearFieldsKeepsOperationEntry(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldFirstName, "First name is required")
	r.SetField(FieldEmail, "Email is not valid")
	r.SetOperation("Error adding document: timeout")

	r.ClearFields()

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, KindOperation, entries[0].Kind)

	// With no operation entry the registry empties completely.
	r.Reset()
	r.SetField(FieldAge, "Age is required")
	r.ClearFields()
	assert.True(t, r.Empty())
}

func TestResetEmptiesEverything(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldEmail, "Email is not valid")
	r.SetOperation("boom")

	r.Reset()

	assert.True(t, r.Empty())
	assert.Empty(t, r.Messages())
}

func TestMessagesKeepEntryOrder(t *testing.T) {
	r := NewRegistry()
	r.SetField(FieldFirstName, "First name is required")
	r.SetField(FieldLastName, "Last name is required")
	r.SetOperation("remote failed")

	assert.Equal(t, []string{
		"First name is required",
		"Last name is required",
		"remote failed",
	}, r.Messages())
}
