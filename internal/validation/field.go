package validation

// presence определяет поведение правила при отсутствии поля
type presence int

const (
	presenceOptional presence = iota
	presenceRequired
	presenceDefault
)

// FieldRule правило для одного поля payload: присутствие + упорядоченные шаги
type FieldRule struct {
	name     string
	presence presence
	def      any
	steps    []Step
}

// Field starts an optional rule for the named field
func Field(name string) *FieldRule {
	return &FieldRule{name: name}
}

func (r *FieldRule) Name() string {
	return r.name
}

// Required makes absence (missing key or null) a REQUIRED error
func (r *FieldRule) Required() *FieldRule {
	r.presence = presenceRequired
	r.def = nil
	return r
}

// Optional makes absence skip the field entirely
func (r *FieldRule) Optional() *FieldRule {
	r.presence = presenceOptional
	r.def = nil
	return r
}

// Default substitutes v when the field is absent; v still goes through the steps
func (r *FieldRule) Default(v any) *FieldRule {
	r.presence = presenceDefault
	r.def = v
	return r
}

// Then appends steps to the rule
func (r *FieldRule) Then(steps ...Step) *FieldRule {
	r.steps = append(r.steps, steps...)
	return r
}

// apply evaluates the rule against the raw payload.
// ok=false with nil error means the field is absent and optional.
func (r *FieldRule) apply(raw map[string]any) (value any, ok bool, fieldErr *FieldError) {
	rawValue, present := raw[r.name]
	if present && rawValue == nil {
		present = false
	}

	if !present {
		switch r.presence {
		case presenceRequired:
			return nil, false, &FieldError{
				Field:   r.name,
				Message: "is required",
				Code:    CodeRequired,
			}
		case presenceDefault:
			rawValue = r.def
		default:
			return nil, false, nil
		}
	}

	current := rawValue
	for _, step := range r.steps {
		next, err := step(current)
		if err != nil {
			code := CodeInvalidFormat
			if v, isViolation := err.(*violation); isViolation {
				code = v.code
			}
			return nil, false, &FieldError{
				Field:   r.name,
				Message: err.Error(),
				Code:    code,
				Value:   rawValue,
			}
		}
		current = next
	}

	return current, true, nil
}
