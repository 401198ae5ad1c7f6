package request

import (
	"fmt"
	"strings"
)

// Schema declares the intake requirements for one service type. Fields must
// be present and non-empty; ListFields must be present with at least one
// element. Keeping this declarative means every service is validated by the
// same code path instead of one hand-written check per endpoint.
type Schema struct {
	Fields     []string
	ListFields []string
}

// schemas is the per-service required-field registry
var schemas = map[ServiceType]Schema{
	ServiceNINValidation: {
		Fields: []string{"fullName", "nin", "phone"},
	},
	ServiceBVNRetrieval: {
		Fields: []string{"fullName", "dob", "phone"},
	},
	ServiceTINRegistration: {
		Fields: []string{"applicantType", "name", "email"},
	},
	ServiceCACRegistration: {
		Fields:     []string{"companyName", "companyEmail", "category"},
		ListFields: []string{"proprietors"},
	},
	ServicePersonalization: {
		Fields: []string{"details"},
	},
}

// SchemaFor returns the intake schema for the given service type
func SchemaFor(serviceType ServiceType) (Schema, error) {
	schema, ok := schemas[serviceType]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownServiceType, serviceType)
	}
	return schema, nil
}

// ErrMissingFields indicates a submission payload missing required fields or
// agent consent
type ErrMissingFields struct {
	ServiceType ServiceType
	Fields      []string
}

func (e ErrMissingFields) Error() string {
	return fmt.Sprintf("missing required fields for %s: %s", e.ServiceType, strings.Join(e.Fields, ", "))
}

// ValidateSubmission checks a payload against the service's schema and the
// consent flag. It returns ErrMissingFields naming every offending field so
// the agent can fix the whole form in one round trip.
func ValidateSubmission(serviceType ServiceType, payload map[string]any, consent bool) error {
	schema, err := SchemaFor(serviceType)
	if err != nil {
		return err
	}

	var missing []string
	for _, field := range schema.Fields {
		if !hasValue(payload[field]) {
			missing = append(missing, field)
		}
	}
	for _, field := range schema.ListFields {
		if !hasListValue(payload[field]) {
			missing = append(missing, field)
		}
	}
	if !consent {
		missing = append(missing, "consent")
	}

	if len(missing) > 0 {
		return ErrMissingFields{ServiceType: serviceType, Fields: missing}
	}
	return nil
}

func hasValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	default:
		return true
	}
}

func hasListValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	default:
		return false
	}
}
