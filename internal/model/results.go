package model

// MethodResult is the uniform result shape returned by get_property,
// set_property, and invoke_method. Exactly one of Value or
// ErrorText is meaningful, selected by Status: StatusOk (and the two
// deprecated variants) may carry Value, anything else carries ErrorText.
type MethodResult struct {
	Status    Status
	ErrorText string
	Value     interface{}
}

// Ok builds a successful result, optionally carrying a value.
func Ok(value interface{}) MethodResult {
	return MethodResult{Status: StatusOk, Value: value}
}

// Err builds a failed result with the given status and message.
func Err(status Status, message string) MethodResult {
	return MethodResult{Status: status, ErrorText: message}
}

// IsError reports whether the result represents anything other than a
// fully successful (possibly deprecated) outcome.
func (r MethodResult) IsError() bool {
	return r.Status != StatusOk && r.Status != StatusPropertyDeprecated && r.Status != StatusMethodDeprecated
}

// Touchpoint is an opaque out-of-band reference linking an object to a
// resource in another namespace (e.g. an NMOS resource UUID).
type Touchpoint struct {
	ResourceType string `json:"resourceType"`
	Id           string `json:"id"`
}

// PropertyConstraint narrows the legal values of one property beyond what
// its datatype alone implies (a minimum/maximum, a max character length,
// an enumerated set of allowed values). Only the fields relevant to the
// constraint kind are populated; the rest are left at their zero value.
type PropertyConstraint struct {
	PropertyId   ElementId     `json:"propertyId"`
	MaximumLen   *int          `json:"maximumLength,omitempty"`
	MinimumValue interface{}   `json:"minimumValue,omitempty"`
	MaximumValue interface{}   `json:"maximumValue,omitempty"`
	StepValue    interface{}   `json:"stepValue,omitempty"`
	EnumValues   []interface{} `json:"enumValues,omitempty"`
}

// BlockMemberDescriptor describes one child of a block, as returned by
// Block.members and GetMemberDescriptors.
type BlockMemberDescriptor struct {
	Role        string  `json:"role"`
	Oid         Oid     `json:"oid"`
	ConstantOid bool    `json:"constantOid"`
	ClassId     ClassId `json:"classId"`
	UserLabel   string  `json:"userLabel"`
	Owner       Oid     `json:"owner"`
}

// EventData is the payload of a PropertyChangedEvent.
type EventData struct {
	PropertyId        ElementId   `json:"propertyId"`
	ChangeType        ChangeType  `json:"changeType"`
	Value             interface{} `json:"value"`
	SequenceItemIndex *int        `json:"sequenceItemIndex"`
}

// PropertyChangedEvent is the sole event kind this runtime emits. EventId
// is always (1,1); Oid identifies the emitting object.
type PropertyChangedEvent struct {
	Oid     Oid       `json:"oid"`
	EventId ElementId `json:"eventId"`
	Data    EventData `json:"eventData"`
}

// NewPropertyChangedEvent builds a PropertyChangedEvent for oid with the
// fixed (1,1) event id, the only event this runtime raises.
func NewPropertyChangedEvent(oid Oid, propertyId ElementId, changeType ChangeType, value interface{}, seqIndex *int) PropertyChangedEvent {
	return PropertyChangedEvent{
		Oid:     oid,
		EventId: ElementId{Level: 1, Index: 1},
		Data: EventData{
			PropertyId:        propertyId,
			ChangeType:        changeType,
			Value:             value,
			SequenceItemIndex: seqIndex,
		},
	}
}

// Manufacturer describes the legal entity that produced the device
// (DeviceManager property 3,2).
type Manufacturer struct {
	Name           string  `json:"name"`
	OrganizationId *int32  `json:"organizationId,omitempty"`
	Website        *string `json:"website,omitempty"`
}

// Product describes the product model (DeviceManager property 3,3).
type Product struct {
	Name          string  `json:"name"`
	Key           string  `json:"key"`
	RevisionLevel string  `json:"revisionLevel"`
	Brand         *string `json:"brand,omitempty"`
	Uuid          *string `json:"uuid,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// OperationalState describes current device health (DeviceManager property
// 3,8).
type OperationalState struct {
	GenericState          GenericState `json:"generalState"`
	DeviceSpecificDetails *string      `json:"deviceSpecificDetails,omitempty"`
}
