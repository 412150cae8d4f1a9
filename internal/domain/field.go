package domain

// Field identifies one input of the registration form.
// The set is closed; String returns the snake_case name used on the wire.
type Field uint8

const (
	FieldParentFirstName Field = iota
	FieldParentLastName
	FieldEmail
	FieldStudentFirstName
	FieldStudentLastName
	FieldCardNumber
	FieldExpiryDate
	FieldCVV
	FieldSchoolID
	FieldFieldTripID

	numFields
)

var fieldNames = [numFields]string{
	FieldParentFirstName:  "parent_first_name",
	FieldParentLastName:   "parent_last_name",
	FieldEmail:            "email",
	FieldStudentFirstName: "student_first_name",
	FieldStudentLastName:  "student_last_name",
	FieldCardNumber:       "card_number",
	FieldExpiryDate:       "expiry_date",
	FieldCVV:              "cvv",
	FieldSchoolID:         "school_id",
	FieldFieldTripID:      "field_trip_id",
}

// ValidatedFields lists the fields that have a validator, in form order.
// school_id and field_trip_id are selections, not free text, and are absent.
var ValidatedFields = []Field{
	FieldParentFirstName,
	FieldParentLastName,
	FieldEmail,
	FieldStudentFirstName,
	FieldStudentLastName,
	FieldCardNumber,
	FieldExpiryDate,
	FieldCVV,
}

func (f Field) String() string {
	if f >= numFields {
		return ""
	}
	return fieldNames[f]
}

// ParseField maps a wire name to its Field. ok is false for unknown names.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}
