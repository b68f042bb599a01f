package validation

// Field identifies a form field in the canonical schema.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldAge       Field = "age"
)

// AllFields lists the form fields in presentation order.
var AllFields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldAge}

// Label returns the human-readable field name used in error messages.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First name"
	case FieldLastName:
		return "Last name"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldAge:
		return "Age"
	default:
		return string(f)
	}
}

// EntryKind distinguishes field-level validation failures from failures of a
// whole remote operation.
type EntryKind int

const (
	KindField EntryKind = iota
	KindOperation
)

// Entry is a single registry record: either FieldError(field, message) or
// OperationError(message).
type Entry struct {
	Kind    EntryKind
	Field   Field
	Message string
}

// Mark is the visual state a check assigns to an input.
type Mark int

const (
	MarkNone Mark = iota
	MarkValid
	MarkInvalid
)

// Marks accumulates the per-field visual state of the latest pass.
type Marks map[Field]Mark

func (m Marks) Mark(f Field) Mark {
	return m[f]
}

// Values carries the raw field values of a submission.
type Values map[Field]string
